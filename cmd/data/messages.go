package main

import (
	"github.com/MohanLi/tickbench/internal/store"
	"github.com/MohanLi/tickbench/internal/types"
)

// RunsLoadedMsg carries the run summaries loaded from the result store.
type RunsLoadedMsg struct {
	Runs []store.RunSummary
}

// ResultsLoadedMsg carries the results of one benchmark run.
type ResultsLoadedMsg struct {
	RunID   string
	Results []types.BenchmarkResult
}

// QueryErrorMsg indicates a result store query failed.
type QueryErrorMsg struct {
	Err error
}

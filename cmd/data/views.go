package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/MohanLi/tickbench/internal/store"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// runItem implements list.Item for the run selection list.
type runItem struct {
	runID     string
	startedAt time.Time
	cells     int
}

func (i runItem) Title() string { return ShortRunID(i.runID) }
func (i runItem) Description() string {
	return fmt.Sprintf("started %s | %d cells", i.startedAt.Format("2006-01-02 15:04:05"), i.cells)
}
func (i runItem) FilterValue() string { return i.runID }

// ShortRunID truncates a run ID to a display-friendly prefix.
func ShortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}

	return runID
}

// NewRunList creates the list for benchmark run selection. Items arrive later
// via RunsLoadedMsg.
func NewRunList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Select Benchmark Run"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// RunListItems converts run summaries into list items, preserving the store's
// most-recent-first order.
func RunListItems(runs []store.RunSummary) []list.Item {
	items := make([]list.Item, 0, len(runs))

	for _, run := range runs {
		items = append(items, runItem{
			runID:     run.RunID,
			startedAt: run.StartedAt,
			cells:     run.Cells,
		})
	}

	return items
}

// NewResultsTable creates a new table for displaying benchmark results.
func NewResultsTable() table.Model {
	columns := []table.Column{
		{Title: "Strategy", Width: 26},
		{Title: "Ticks", Width: 10},
		{Title: "Runtime", Width: 16},
		{Title: "Heap Growth", Width: 14},
		{Title: "Signals", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTableRows fills the table with run results, fastest strategy first
// within each input size.
func UpdateTableRows(t table.Model, results []types.BenchmarkResult) table.Model {
	sorted := make([]types.BenchmarkResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size < sorted[j].Size
		}

		return sorted[i].BestRuntime < sorted[j].BestRuntime
	})

	fastest := make(map[int]time.Duration)
	for _, result := range sorted {
		if best, ok := fastest[result.Size]; !ok || result.BestRuntime < best {
			fastest[result.Size] = result.BestRuntime
		}
	}

	rows := make([]table.Row, 0, len(sorted))

	for _, result := range sorted {
		rows = append(rows, table.Row{
			result.Strategy,
			fmt.Sprintf("%d", result.Size),
			FormatRuntimeWithMarker(result.BestRuntime, fastest[result.Size]),
			FormatBytes(result.HeapGrowthBytes),
			fmt.Sprintf("%d", result.SignalCount),
		})
	}

	t.SetRows(rows)

	return t
}

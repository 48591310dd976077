package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/store"
	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.ResultStore {
	t.Helper()

	resultStore, err := store.NewResultStore(":memory:", logger.NewSilentLogger())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = resultStore.Close()
	})

	return resultStore
}

func seedRun(t *testing.T, resultStore *store.ResultStore, runID string, createdAt time.Time) {
	t.Helper()

	results := []types.BenchmarkResult{
		{
			RunID:           runID,
			Strategy:        strategy.NaiveStrategyName,
			Size:            1000,
			Repeats:         3,
			BestRuntime:     40 * time.Millisecond,
			HeapGrowthBytes: 1 << 20,
			SignalCount:     1000,
			CreatedAt:       createdAt,
		},
		{
			RunID:           runID,
			Strategy:        strategy.CumulativeStrategyName,
			Size:            1000,
			Repeats:         3,
			BestRuntime:     2 * time.Millisecond,
			HeapGrowthBytes: 256,
			SignalCount:     1000,
			CreatedAt:       createdAt,
		},
	}

	require.NoError(t, resultStore.SaveResults(results))
}

func TestNewModel(t *testing.T) {
	m := NewModel(nil)

	assert.Equal(t, StateRunSelect, m.state)
	assert.Empty(t, m.runID)
	assert.Empty(t, m.results)
	assert.NoError(t, m.err)
}

func TestShortRunID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "uuid is truncated",
			input:    "1f1a9c52-8a50-4d8e-9e65-0d1a2b3c4d5e",
			expected: "1f1a9c52",
		},
		{
			name:     "short id kept as is",
			input:    "run-1",
			expected: "run-1",
		},
		{
			name:     "empty id",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShortRunID(tt.input))
		})
	}
}

func TestRunSelection(t *testing.T) {
	resultStore := newTestStore(t)
	seedRun(t, resultStore, "run-2026-08-22-aaaa", time.Date(2026, 8, 22, 10, 0, 0, 0, time.UTC))

	m := NewModel(resultStore)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

	// Wait for the run list to render
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("run-2026"))
	}, teatest.WithDuration(2*time.Second))

	// Send Enter to open the run
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	// Verify the results table is shown
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("cumulative_average")) &&
			bytes.Contains(bts, []byte("naive_moving_average"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestEmptyStore(t *testing.T) {
	resultStore := newTestStore(t)

	m := NewModel(resultStore)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("No benchmark runs recorded yet"))
	}, teatest.WithDuration(2*time.Second))

	err := tm.Quit()
	assert.NoError(t, err)
}

func TestStateTransitions(t *testing.T) {
	t.Run("Esc from results display goes back to run select", func(t *testing.T) {
		resultStore := newTestStore(t)
		seedRun(t, resultStore, "run-2026-08-22-bbbb", time.Date(2026, 8, 22, 11, 0, 0, 0, time.UTC))

		m := NewModel(resultStore)
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 30))

		teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
			return bytes.Contains(bts, []byte("run-2026"))
		}, teatest.WithDuration(2*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
			return bytes.Contains(bts, []byte("cumulative_average"))
		}, teatest.WithDuration(2*time.Second))

		// Press Esc
		tm.Send(tea.KeyMsg{Type: tea.KeyEsc})

		teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Select Benchmark Run"))
		}, teatest.WithDuration(2*time.Second))

		err := tm.Quit()
		assert.NoError(t, err)
	})

	t.Run("Esc clears the loaded run", func(t *testing.T) {
		m := NewModel(nil)
		m.state = StateResultsDisplay
		m.runID = "run-1"
		m.results = []types.BenchmarkResult{
			{RunID: "run-1", Strategy: strategy.NaiveStrategyName, Size: 1000},
		}
		m.err = assert.AnError

		newModel, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		updatedModel := newModel.(Model)

		assert.Equal(t, StateRunSelect, updatedModel.state)
		assert.Empty(t, updatedModel.runID)
		assert.Empty(t, updatedModel.results)
		assert.NoError(t, updatedModel.err)
	})
}

func TestQuitBehavior(t *testing.T) {
	t.Run("ctrl+c quits", func(t *testing.T) {
		m := NewModel(newTestStore(t))
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	})

	t.Run("q quits from run select", func(t *testing.T) {
		m := NewModel(newTestStore(t))
		tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

		teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
			return bytes.Contains(bts, []byte("Benchmark Runs"))
		}, teatest.WithDuration(2*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

		tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))
	})
}

func TestResultsLoadedMessage(t *testing.T) {
	m := NewModel(nil)

	msg := ResultsLoadedMsg{
		RunID: "run-1",
		Results: []types.BenchmarkResult{
			{
				RunID:       "run-1",
				Strategy:    strategy.NaiveStrategyName,
				Size:        1000,
				BestRuntime: time.Millisecond,
			},
		},
	}

	newModel, _ := m.Update(msg)
	updatedModel := newModel.(Model)

	assert.Equal(t, StateResultsDisplay, updatedModel.state)
	assert.Equal(t, "run-1", updatedModel.runID)
	assert.Len(t, updatedModel.results, 1)
}

func TestQueryErrorMessage(t *testing.T) {
	m := NewModel(nil)

	newModel, _ := m.Update(QueryErrorMsg{Err: assert.AnError})
	updatedModel := newModel.(Model)

	assert.Equal(t, StateRunSelect, updatedModel.state)
	assert.Error(t, updatedModel.err)
}

func TestRuntimeMarkerFormatting(t *testing.T) {
	tests := []struct {
		name        string
		runtime     time.Duration
		fastest     time.Duration
		contains    string
		notContains string
	}{
		{
			name:     "fastest cell gets marker",
			runtime:  2 * time.Millisecond,
			fastest:  2 * time.Millisecond,
			contains: "▲",
		},
		{
			name:        "slower cell has no marker",
			runtime:     40 * time.Millisecond,
			fastest:     2 * time.Millisecond,
			contains:    "40ms",
			notContains: "▲",
		},
		{
			name:        "zero fastest has no marker",
			runtime:     2 * time.Millisecond,
			fastest:     0,
			contains:    "2ms",
			notContains: "▲",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatRuntimeWithMarker(tt.runtime, tt.fastest)
			assert.Contains(t, result, tt.contains)

			if tt.notContains != "" {
				assert.NotContains(t, result, tt.notContains)
			}
		})
	}
}

func TestWindowResize(t *testing.T) {
	m := NewModel(nil)

	msg := tea.WindowSizeMsg{Width: 120, Height: 40}
	newModel, _ := m.Update(msg)
	updatedModel := newModel.(Model)

	assert.Equal(t, 120, updatedModel.width)
	assert.Equal(t, 40, updatedModel.height)
}

package main

import (
	"fmt"
	"strings"

	"github.com/MohanLi/tickbench/internal/store"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Application states.
const (
	StateRunSelect = iota
	StateResultsDisplay
)

// Model is the main Bubble Tea model for the benchmark run browser.
type Model struct {
	state        int
	store        *store.ResultStore
	runList      list.Model
	resultsTable table.Model
	runID        string
	results      []types.BenchmarkResult
	err          error
	width        int
	height       int
}

// NewModel creates a new Model over the given result store.
func NewModel(resultStore *store.ResultStore) Model {
	return Model{
		state:        StateRunSelect,
		store:        resultStore,
		runList:      NewRunList(),
		resultsTable: NewResultsTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadRuns
}

// loadRuns queries the store for run summaries.
func (m Model) loadRuns() tea.Msg {
	runs, err := m.store.ListRuns()
	if err != nil {
		return QueryErrorMsg{Err: err}
	}

	return RunsLoadedMsg{Runs: runs}
}

// loadResults returns a command that loads the results of one run.
func (m Model) loadResults(runID string) tea.Cmd {
	return func() tea.Msg {
		results, err := m.store.GetRunResults(runID)
		if err != nil {
			return QueryErrorMsg{Err: err}
		}

		return ResultsLoadedMsg{RunID: runID, Results: results}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			return m.handleEsc()
		case "r":
			if m.state == StateRunSelect {
				return m, m.loadRuns
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.runList.SetSize(msg.Width, msg.Height-4)
		m.resultsTable.SetWidth(msg.Width)
		m.resultsTable.SetHeight(msg.Height - 6)
		return m, nil

	case RunsLoadedMsg:
		cmd := m.runList.SetItems(RunListItems(msg.Runs))
		return m, cmd

	case ResultsLoadedMsg:
		m.runID = msg.RunID
		m.results = msg.Results
		m.resultsTable = UpdateTableRows(m.resultsTable, msg.Results)
		m.err = nil
		m.state = StateResultsDisplay
		return m, nil

	case QueryErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Delegate to state-specific update
	switch m.state {
	case StateRunSelect:
		return m.updateRunSelect(msg)
	case StateResultsDisplay:
		return m.updateResultsDisplay(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == StateResultsDisplay {
		m.runID = ""
		m.results = nil
		m.err = nil
		m.state = StateRunSelect
	}

	return m, nil
}

func (m Model) updateRunSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if item, ok := m.runList.SelectedItem().(runItem); ok {
				return m, m.loadResults(item.runID)
			}
		}
	}

	var cmd tea.Cmd
	m.runList, cmd = m.runList.Update(msg)
	return m, cmd
}

func (m Model) updateResultsDisplay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.resultsTable, cmd = m.resultsTable.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateRunSelect:
		s.WriteString(TitleStyle.Render("Tickbench - Benchmark Runs"))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.runList.Items()) == 0 {
			s.WriteString("No benchmark runs recorded yet.\n")
		} else {
			s.WriteString(m.runList.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Enter: open run | r: reload | q: quit"))

	case StateResultsDisplay:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("Run %s (%d cells)", ShortRunID(m.runID), len(m.results))))
		s.WriteString("\n\n")

		if m.err != nil {
			s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			s.WriteString("\n\n")
		}

		if len(m.results) == 0 {
			s.WriteString("No results in this run.\n")
		} else {
			s.WriteString(m.resultsTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("q: quit | Esc: back to runs"))
	}

	return s.String()
}

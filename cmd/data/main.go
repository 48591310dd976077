package main

import (
	"context"
	"log"
	"os"

	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/store"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

func dataAction(ctx context.Context, cmd *cli.Command) error {
	// The TUI owns the terminal, so the store logs silently.
	resultStore, err := store.NewResultStore(cmd.String("db"), logger.NewSilentLogger())
	if err != nil {
		return err
	}
	defer func() {
		_ = resultStore.Close()
	}()

	program := tea.NewProgram(NewModel(resultStore), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "data",
		Usage: "Browse stored benchmark runs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "db",
				Usage: "Path to the results database",
				Value: "results/bench.db",
			},
		},
		Action: dataAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/MohanLi/tickbench/internal/datagen"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/urfave/cli/v3"
)

// generateAction is the core logic executed by the CLI command.
// It builds the generator configuration from flags and writes the tick CSV.
func generateAction(ctx context.Context, cmd *cli.Command) error {
	output := cmd.String("output")

	config := datagen.Config{
		Symbol:     cmd.String("symbol"),
		StartTime:  cmd.Timestamp("start"),
		Interval:   cmd.Duration("interval"),
		Count:      int(cmd.Int("count")),
		StartPrice: cmd.Float("start-price"),
		Drift:      cmd.Float("drift"),
		Volatility: cmd.Float("volatility"),
	}

	var ticks []types.Tick

	if cmd.Bool("cycling") {
		ticks = datagen.GenerateCycling(config)
	} else {
		generator := datagen.NewGenerator(cmd.Int("seed"))
		ticks = generator.Generate(config)
	}

	log.Printf("Generating %d ticks for %s starting at %s...",
		config.Count, config.Symbol, config.StartTime.Format("2006-01-02"))

	if err := datagen.WriteCSV(output, ticks); err != nil {
		return fmt.Errorf("failed to write ticks: %w", err)
	}

	log.Printf("Wrote %d ticks to %s", len(ticks), output)

	return nil
}

func main() {
	defaults := datagen.DefaultConfig()

	// Define the CLI application
	cmd := &cli.Command{
		Name:  "market",
		Usage: "Generate a synthetic market tick CSV",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Path of the CSV file to write",
				Value:    "data/ticks.csv",
				Required: false,
			},
			&cli.StringFlag{
				Name:     "symbol",
				Aliases:  []string{"s"},
				Usage:    "Symbol stamped on every tick",
				Value:    defaults.Symbol,
				Required: false,
			},
			&cli.IntFlag{
				Name:     "count",
				Aliases:  []string{"n"},
				Usage:    "Number of ticks to generate",
				Value:    int64(defaults.Count),
				Required: false,
			},
			&cli.TimestampFlag{
				Name:  "start",
				Usage: "Timestamp of the first tick in `YYYY-MM-DD` format (or other RFC3339 compatible)",
				Value: defaults.StartTime,
				Config: cli.TimestampConfig{
					Layouts: []string{"2006-01-02"},
				},
				Required: false,
			},
			&cli.DurationFlag{
				Name:     "interval",
				Usage:    "Spacing between consecutive ticks",
				Value:    defaults.Interval,
				Required: false,
			},
			&cli.FloatFlag{
				Name:     "start-price",
				Usage:    "Price of the first tick",
				Value:    defaults.StartPrice,
				Required: false,
			},
			&cli.FloatFlag{
				Name:     "drift",
				Usage:    "Per-tick drift of the random walk",
				Value:    defaults.Drift,
				Required: false,
			},
			&cli.FloatFlag{
				Name:     "volatility",
				Usage:    "Per-tick volatility of the random walk",
				Value:    defaults.Volatility,
				Required: false,
			},
			&cli.IntFlag{
				Name:     "seed",
				Usage:    "Seed for the random walk",
				Value:    datagen.DefaultSeed,
				Required: false,
			},
			&cli.BoolFlag{
				Name:     "cycling",
				Usage:    "Generate the deterministic cycling series instead of a random walk",
				Required: false,
			},
		},
		Action: generateAction,
	}

	// Run the CLI application
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/MohanLi/tickbench/internal/bench"
	"github.com/MohanLi/tickbench/internal/config"
	"github.com/MohanLi/tickbench/internal/datasource"
	"github.com/MohanLi/tickbench/internal/logger"
	"github.com/MohanLi/tickbench/internal/report"
	"github.com/MohanLi/tickbench/internal/store"
	"github.com/MohanLi/tickbench/internal/strategy"
	"github.com/MohanLi/tickbench/internal/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/moznion/go-optional"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// HeaderStyle for the summary table header.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func benchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer func() {
		_ = log.Sync()
	}()

	source := datasource.NewCSVSource(cfg.DataPath, log)
	defer func() {
		_ = source.Close()
	}()

	ticks, err := source.Load(ctx)
	if err != nil {
		return err
	}

	log.Info("Loaded tick dataset",
		zap.String("path", cfg.DataPath),
		zap.Int("ticks", len(ticks)),
		zap.String("approx_footprint", FormatBytes(DatasetFootprint(ticks))),
	)

	strategies, err := selectStrategies(cfg)
	if err != nil {
		return err
	}

	opts := bench.Options{
		Sizes:        cfg.Sizes,
		Repeats:      cfg.Repeats,
		ProfileDir:   filepath.Join(cfg.OutputDir, "profiles"),
		ShowProgress: !cmd.Bool("no-progress"),
	}
	if cfg.ProfileSize > 0 {
		opts.ProfileOnSize = optional.Some(cfg.ProfileSize)
	}

	runner := bench.NewRunner(strategies, ticks, opts, log)

	results, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	if cfg.ResultsDB != "" {
		if err := persistResults(cfg.ResultsDB, results, log); err != nil {
			return err
		}
	}

	reporter := report.NewReporter(log)

	reportPath, err := reporter.WriteReport(results, cfg.OutputDir)
	if err != nil {
		return err
	}

	fmt.Println(renderSummary(results, reportPath))

	return nil
}

// loadConfig builds the effective config: the file named by --config (or the
// defaults when omitted), with --data and --output applied on top.
func loadConfig(cmd *cli.Command) (*config.BenchConfig, error) {
	var cfg *config.BenchConfig

	if path := cmd.String("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	} else {
		defaults := config.DefaultConfig()
		cfg = &defaults
	}

	if data := cmd.String("data"); data != "" {
		cfg.DataPath = data
	}

	if output := cmd.String("output"); output != "" {
		cfg.OutputDir = output
	}

	return cfg, nil
}

// selectStrategies resolves the configured strategy names against the default
// registry. An empty list runs every registered strategy.
func selectStrategies(cfg *config.BenchConfig) ([]strategy.Strategy, error) {
	registry, err := strategy.NewDefaultRegistry(cfg.WindowSize)
	if err != nil {
		return nil, err
	}

	names := cfg.Strategies
	if len(names) == 0 {
		names = registry.List()
	}

	strategies := make([]strategy.Strategy, 0, len(names))

	for _, name := range names {
		s, err := registry.Get(name)
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, s)
	}

	return strategies, nil
}

func persistResults(dbPath string, results []types.BenchmarkResult, log *logger.Logger) error {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	resultStore, err := store.NewResultStore(dbPath, log)
	if err != nil {
		return err
	}
	defer func() {
		_ = resultStore.Close()
	}()

	return resultStore.SaveResults(results)
}

// renderSummary renders the run as a terminal table, fastest strategy first
// within each input size.
func renderSummary(results []types.BenchmarkResult, reportPath string) string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Benchmark Summary"))
	s.WriteString("\n\n")

	rows := make([]types.BenchmarkResult, len(results))
	copy(rows, results)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Size != rows[j].Size {
			return rows[i].Size < rows[j].Size
		}

		return rows[i].BestRuntime < rows[j].BestRuntime
	})

	fastest := make(map[int]time.Duration)
	for _, row := range rows {
		if current, ok := fastest[row.Size]; !ok || row.BestRuntime < current {
			fastest[row.Size] = row.BestRuntime
		}
	}

	s.WriteString(HeaderStyle.Render(fmt.Sprintf("%-26s %10s %22s %14s", "Strategy", "Ticks", "Runtime", "Heap Growth")))
	s.WriteString("\n")

	for _, row := range rows {
		s.WriteString(fmt.Sprintf("%-26s %10d %22s %14s\n",
			row.Strategy,
			row.Size,
			FormatRuntimeWithFactor(row.BestRuntime, fastest[row.Size]),
			FormatBytes(row.HeapGrowthBytes),
		))
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Report written to " + reportPath))

	return s.String()
}

// FormatRuntimeWithFactor formats a runtime together with its slowdown factor
// relative to the fastest strategy at the same input size.
func FormatRuntimeWithFactor(runtime, fastest time.Duration) string {
	formatted := runtime.Round(time.Microsecond).String()

	if fastest <= 0 || runtime <= fastest {
		return formatted
	}

	return fmt.Sprintf("%s (x%.1f)", formatted, float64(runtime)/float64(fastest))
}

// FormatBytes formats a byte count using binary units.
func FormatBytes(n uint64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
	)

	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// DatasetFootprint estimates the heap held by a loaded tick slice. The whole
// dataset stays in memory for the run, so the footprint grows linearly with
// the tick count. Symbol string backing arrays are not counted.
func DatasetFootprint(ticks []types.Tick) uint64 {
	return uint64(len(ticks)) * uint64(reflect.TypeOf(types.Tick{}).Size())
}

func main() {
	cmd := &cli.Command{
		Name:  "bench",
		Usage: "Benchmark signal strategies across input sizes and write a complexity report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file; built-in defaults apply when omitted",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Override the tick CSV path from the config",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Override the output directory from the config",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the progress bar",
			},
		},
		Action: benchAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

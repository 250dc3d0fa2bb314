package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/google/goterm/term"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/raykavin/chartkit"
	"github.com/raykavin/chartkit/pkg/core"
	"github.com/raykavin/chartkit/pkg/feed"
	"github.com/raykavin/chartkit/pkg/geometry"
	"github.com/raykavin/chartkit/pkg/logger/logrus"
	"github.com/raykavin/chartkit/pkg/plot"
	"github.com/raykavin/chartkit/pkg/sampling"
	"github.com/raykavin/chartkit/pkg/storage"
)

// Command line flags
var (
	inputFile  string
	chartName  string
	chartKind  string
	port       int
	dbFile     string
	simulate   string
	isCandles  bool
	maxPoints  int
	outputFile string
	logBackend string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "chartkit",
		Short:   "Utilities for chart dataset serving and inspection",
		Version: "1.0.0",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&logBackend, "log-backend", "zerolog", "Logging backend (zerolog or logrus)")

	rootCmd.AddCommand(buildServeCmd())
	rootCmd.AddCommand(buildSummaryCmd())
	rootCmd.AddCommand(buildSampleCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogger() error {
	if logBackend != "logrus" {
		return nil
	}

	log, err := logrus.New("debug")
	if err != nil {
		return err
	}

	chartkit.DefaultLog = log
	return nil
}

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a CSV dataset as a live chart",
		RunE:  runServe,
	}

	serveCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (time,value or OHLCV)")
	serveCmd.Flags().StringVarP(&chartName, "name", "n", "dataset", "Chart name")
	serveCmd.Flags().StringVarP(&chartKind, "kind", "k", "line", "Chart kind (line, area, bar, pie, donut, scatter, bubble, candlestick)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port")
	serveCmd.Flags().StringVar(&dbFile, "db", "", "BuntDB file to persist dataset snapshots")
	serveCmd.Flags().StringVar(&simulate, "simulate", "", "Enable random-walk simulation at the given interval (e.g. 500ms)")
	serveCmd.Flags().BoolVar(&isCandles, "candles", false, "Treat the input as an OHLCV candle file")

	serveCmd.MarkFlagRequired("input")

	return serveCmd
}

func runServe(cmd *cobra.Command, args []string) error {
	set, err := loadDataset()
	if err != nil {
		return err
	}

	options := []plot.Option{plot.WithPort(port)}

	if dbFile != "" {
		store, err := storage.FromFile(dbFile)
		if err != nil {
			return err
		}
		options = append(options, plot.WithStorage(store))
	}

	if simulate != "" {
		interval, err := time.ParseDuration(simulate)
		if err != nil {
			return err
		}
		options = append(options, plot.WithSimulation(interval))
	}

	kind := geometry.Kind(chartKind)
	if isCandles {
		kind = geometry.KindCandlestick
	}

	return chartkit.Serve(chartName, kind, set, options...)
}

func buildSummaryCmd() *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Print dataset statistics and a value histogram",
		RunE:  runSummary,
	}

	summaryCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (time,value)")
	summaryCmd.MarkFlagRequired("input")

	return summaryCmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	set, err := feed.LoadPoints(feed.CSVFile{Name: chartName, File: inputFile, Progress: true})
	if err != nil {
		return err
	}

	summary := core.Summarize(set.Points)

	fmt.Println(term.Greenf("Dataset %s", inputFile))

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Count", "Total", "Min", "Max", "Mean"})
	table.Append([]string{
		fmt.Sprintf("%d", summary.Count),
		fmt.Sprintf("%.4f", summary.Total),
		fmt.Sprintf("%.4f", summary.Min),
		fmt.Sprintf("%.4f", summary.Max),
		fmt.Sprintf("%.4f", summary.Mean),
	})
	table.Render()

	values := make([]float64, len(set.Points))
	for i, p := range set.Points {
		values[i] = p.Y
	}

	fmt.Println(term.Greenf("Value distribution"))
	hist := histogram.Hist(10, values)
	return histogram.Fprint(os.Stdout, hist, histogram.Linear(40))
}

func buildSampleCmd() *cobra.Command {
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "Downsample a CSV dataset to a point budget",
		RunE:  runSample,
	}

	sampleCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input CSV file (time,value)")
	sampleCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output CSV file")
	sampleCmd.Flags().IntVarP(&maxPoints, "max", "m", sampling.DefaultMaxPoints, "Maximum number of points to keep")

	sampleCmd.MarkFlagRequired("input")
	sampleCmd.MarkFlagRequired("output")

	return sampleCmd
}

func runSample(cmd *cobra.Command, args []string) error {
	set, err := feed.LoadPoints(feed.CSVFile{Name: "sample", File: inputFile, Progress: true})
	if err != nil {
		return err
	}

	sampled, err := sampling.Downsample(set.Points, maxPoints)
	if err != nil {
		return err
	}

	out := &core.Dataset{Name: set.Name, Points: sampled, UpdatedAt: time.Now()}
	if err := feed.WritePoints(outputFile, out); err != nil {
		return err
	}

	chartkit.DefaultLog.Infof("wrote %d of %d points to %s", len(sampled), len(set.Points), outputFile)
	return nil
}

func loadDataset() (*core.Dataset, error) {
	file := feed.CSVFile{Name: chartName, File: inputFile, Progress: true}
	if isCandles {
		return feed.LoadCandles(file)
	}
	return feed.LoadPoints(file)
}

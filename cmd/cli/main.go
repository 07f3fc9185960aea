package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	"github.com/rhyrak/go-timetable/pkg/config"
	"github.com/rhyrak/go-timetable/pkg/logger"
)

const (
	exitOK = iota
	exitFailed
	exitInvalidSchedule
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := config.Flags("cli")
	printSchedule := flags.Bool("print", false, "print the weekly schedule grouped by day")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitFailed
	}

	cfg, err := config.Load(flags)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return exitFailed
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Printf("failed to init logger: %v", err)
		return exitFailed
	}
	defer logr.Sync() //nolint:errcheck

	opts := scheduler.FromConfig(cfg)

	// Parse the raw course offerings table
	table, err := csvio.LoadTable(opts.CoursesFile, opts.Delimiter)
	if err != nil {
		logr.Error("failed to load dataset", zap.String("path", opts.CoursesFile), zap.Error(err))
		return exitFailed
	}

	res, err := scheduler.NewFromConfiguration(opts, logr).Run(table)
	if err != nil {
		logr.Error("optimizer run failed", zap.Error(err))
		return exitFailed
	}

	// Export failures are reported but do not discard the in-memory result
	if err := csvio.ExportSchedule(res.Entries, opts.ExportFile); err != nil {
		logr.Error("schedule export failed", zap.Error(err))
	} else {
		logr.Info("exported schedule", zap.String("path", opts.ExportFile), zap.Int("rows", len(res.Entries)))
	}
	if opts.PDFFile != "" {
		if err := csvio.ExportPDF(res.Entries, opts.PDFFile, "Weekly timetable"); err != nil {
			logr.Error("pdf export failed", zap.Error(err))
		} else {
			logr.Info("exported pdf", zap.String("path", opts.PDFFile))
		}
	}

	if *printSchedule {
		csvio.PrintSchedule(os.Stdout, res.Entries)
	}

	if !res.Report.Valid {
		fmt.Println("Invalid schedule:")
	} else {
		fmt.Println("Passed all tests")
	}
	fmt.Print(scheduler.Summary(res.Report))

	if len(opts.Ignore) != 0 {
		fmt.Println("Ignored courses are as below:")
		for _, g := range opts.Ignore {
			fmt.Println(g + " is ignored.")
		}
		fmt.Println()
	}

	fmt.Printf("Rows: %d (kept %d, skipped %d, duplicates %d, filtered %d)\n",
		res.Stats.Rows, res.Stats.Kept, res.Stats.Skipped, res.Stats.Duplicates, res.Stats.Filtered)
	fmt.Printf("Graph: %d sections, %d conflicts\n", res.Stats.Vertices, res.Stats.Edges)
	fmt.Printf("Colors: %d in %d room group(s)\n", res.Stats.Colors, res.Stats.RoomGroups)
	fmt.Printf("Timer: %f ms\n", float64(res.Stats.Elapsed.Microseconds())/1000.0)

	if !res.Report.Valid {
		return exitInvalidSchedule
	}
	return exitOK
}

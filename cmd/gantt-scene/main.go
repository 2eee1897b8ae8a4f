// Command gantt-scene loads a schedule workbook and prints the Gantt scene
// as indented JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Kirankkt/Complex-gannt/internal/config"
	"github.com/Kirankkt/Complex-gannt/internal/gantt"
	"github.com/Kirankkt/Complex-gannt/internal/infrastructure"
	"github.com/Kirankkt/Complex-gannt/internal/schedule"
	"github.com/Kirankkt/Complex-gannt/pkg/contracts"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gantt-scene", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", config.DefaultDataFile, "schedule workbook (.xlsx)")
	sheet := fs.String("sheet", "", "sheet name (defaults to the first sheet)")
	title := fs.String("title", gantt.DefaultTitle, "chart title")
	height := fs.Int("height", gantt.DefaultHeight, "chart height in pixels")
	level := fs.String("log-level", "warn", "log level written to stderr")
	version := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	logger := infrastructure.NewLoggerWithWriter(stderr, &slog.HandlerOptions{
		Level: infrastructure.ParseLogLevel(*level),
	})

	loader := schedule.NewLoader(schedule.ExcelSource{Sheet: *sheet}, logger)
	table, err := loader.Load(context.Background(), *file)
	if err != nil {
		if errors.Is(err, schedule.ErrSourceNotFound) {
			fmt.Fprintf(stderr, "File %s not found!\n", *file)
		} else {
			fmt.Fprintf(stderr, "Failed to load %s: %v\n", *file, err)
		}
		logger.Error("Schedule load failed",
			slog.String("file", *file),
			slog.String("error", err.Error()))
		return 1
	}

	scene := gantt.NewBuilder(gantt.WithTitle(*title), gantt.WithHeight(*height)).Build(table)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(scene); err != nil {
		fmt.Fprintf(stderr, "Failed to write scene: %v\n", err)
		return 1
	}
	return 0
}

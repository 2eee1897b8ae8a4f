// Command gantt-web serves the Gantt dashboard.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/Kirankkt/Complex-gannt/internal/app"
)

//go:embed all:frontend
var frontendFiles embed.FS

func main() {
	var frontendFS fs.FS
	if sub, err := fs.Sub(frontendFiles, "frontend"); err == nil {
		frontendFS = sub
	} else {
		slog.Warn("Frontend embedding failed", slog.String("error", err.Error()))
	}

	application, err := app.NewApplication(frontendFS)
	if err != nil {
		if path, ok := app.MissingSource(err); ok {
			fmt.Fprintf(os.Stderr, "File %s not found!\n", path)
		}
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

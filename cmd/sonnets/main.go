// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/sonnets"
	"github.com/poiesic/sonnets/search"
	"github.com/poiesic/sonnets/shell"
	"github.com/urfave/cli/v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sonnets",
		Usage: "Search Shakespeare's sonnets for words",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
			&cli.StringFlag{
				Name:    "corpus",
				Aliases: []string{"c"},
				Usage:   "Path to a TOML corpus file (default: built-in sonnets)",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Highlight style (ansi, html, plain)",
				Value: "ansi",
			},
			&cli.BoolFlag{
				Name:  "no-highlight",
				Usage: "Start with highlighting turned off",
			},
		},
		Before: setupLogger,
		Action: shellCommand,
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Run a single query and print the results",
				ArgsUsage: "<words...>",
				Action:    searchCommand,
			},
			{
				Name:   "list",
				Usage:  "List the titles of all sonnets",
				Action: listCommand,
			},
		},
	}
}

func shellCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	session, err := lib.NewSession(c.Context, c.App.Writer, shellConfig(c))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return session.Run(c.Context, c.App.Reader)
}

func searchCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search needs at least one word")
	}

	cfg := shellConfig(c)
	if err := cfg.Validate(); err != nil {
		return err
	}
	style, err := search.StyleByName(cfg.Style)
	if err != nil {
		return err
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	searcher, err := lib.NewSearcher(c.Context, search.WithMonitor(search.NewLogMonitor(slog.Default())))
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results, err := searcher.Search(c.Context, query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return shell.WriteResults(c.App.Writer, results, cfg.Highlight, style)
}

func listCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	for _, doc := range lib.Documents() {
		fmt.Fprintf(c.App.Writer, "[%d] %s\n", doc.Number, doc.Title)
	}
	return nil
}

func openLibrary(c *cli.Context) (*sonnets.Library, error) {
	opts := []sonnets.Option{sonnets.WithLogger(slog.Default())}
	if path := c.String("corpus"); path != "" {
		opts = append(opts, sonnets.WithCorpusFile(path))
	}

	lib, err := sonnets.Open(c.Context, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	return lib, nil
}

func shellConfig(c *cli.Context) *shell.Config {
	return shell.NewConfig(
		shell.WithHighlight(!c.Bool("no-highlight")),
		shell.WithStyle(c.String("style")),
	)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Logs go to stderr so they never mix with results
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/poiesic/sonnets/core"
	"github.com/poiesic/sonnets/search"
)

// Session is one interactive search loop.
// The highlighting flag lives here and is read each time results are rendered.
type Session struct {
	searcher  *search.Searcher
	out       io.Writer
	style     search.Style
	prompt    string
	highlight bool
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSession creates a session writing to out. A nil cfg means DefaultConfig().
func NewSession(searcher *search.Searcher, out io.Writer, cfg *Config, opts ...Option) (*Session, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if out == nil {
		return nil, ErrOutputRequired
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	style, err := search.StyleByName(cfg.Style)
	if err != nil {
		return nil, err
	}

	s := &Session{
		searcher:  searcher,
		out:       out,
		style:     style,
		prompt:    cfg.Prompt,
		highlight: cfg.Highlight,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Highlight reports whether matches are currently highlighted.
func (s *Session) Highlight() bool {
	return s.highlight
}

// Run prints the banner and processes lines from in until ":quit",
// end of input or cancellation of ctx. The last two print a farewell
// and are not errors.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, Banner)
	fmt.Fprintln(s.out)

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	// Reading blocks; it runs apart from the loop so an interrupt can end the session.
	// Lines have no length limit.
	go func() {
		defer close(lines)
		reader := bufio.NewReader(in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lines <- line:
				case <-done:
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				readErr <- err
				return
			}
		}
	}()

	for {
		fmt.Fprint(s.out, s.prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out, "\n"+farewell)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out, "\n"+farewell)
				if err := <-readErr; err != nil {
					s.logger.Error("error reading input", "err", err)
					return err
				}
				return nil
			}

			quit, err := s.Execute(ctx, line)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					fmt.Fprintln(s.out, "\n"+farewell)
					return nil
				}
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute handles one input line: a command, a query, or nothing for blank lines.
// It reports whether the session should end.
func (s *Session) Execute(ctx context.Context, raw string) (quit bool, err error) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return false, nil
	}

	if strings.HasPrefix(line, ":") {
		return s.command(line), nil
	}

	return false, s.query(ctx, line)
}

func (s *Session) command(line string) (quit bool) {
	switch {
	case line == ":quit":
		fmt.Fprintln(s.out, farewell)
		return true
	case line == ":help":
		fmt.Fprintln(s.out, Help)
	case strings.HasPrefix(line, ":highlight"):
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Fprintln(s.out, highlightUsage)
			return false
		}
		switch strings.ToLower(parts[1]) {
		case "on":
			s.highlight = true
		case "off":
			s.highlight = false
		default:
			fmt.Fprintln(s.out, highlightUsage)
			return false
		}
		state := "OFF"
		if s.highlight {
			state = "ON"
		}
		fmt.Fprintln(s.out, "Highlighting", state)
		s.logger.Debug("highlighting toggled", "enabled", s.highlight)
	default:
		fmt.Fprintln(s.out, unknownCommand)
	}
	return false
}

func (s *Session) query(ctx context.Context, line string) error {
	results, err := s.searcher.Search(ctx, line)
	if err != nil {
		return err
	}
	return WriteResults(s.out, results, s.highlight, s.style)
}

// WriteResults prints the summary line and every matched sonnet with its matched lines.
// All text goes through style, so HTML output is escaped even where nothing is marked.
func WriteResults(w io.Writer, results *search.Results, highlight bool, style search.Style) error {
	if style == nil {
		style = search.ANSIStyle{}
	}
	matched := results.Matched()
	total := results.Total()

	if _, err := fmt.Fprintf(w, "%d out of %d sonnets contain \"%s\".\n", len(matched), total, style.Plain(results.Query)); err != nil {
		return err
	}

	for i, record := range matched {
		title := renderText(record.Title, record.TitleSpans, highlight, style)
		if _, err := fmt.Fprintf(w, "\n[%d/%d] %s\n", i+1, total, title); err != nil {
			return err
		}
		for _, lm := range record.LineMatches {
			line := renderText(lm.Text, lm.Spans, highlight, style)
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderText is Render for output: unmarked text still gets the style's plain form.
func renderText(text string, spans []core.Span, highlight bool, style search.Style) string {
	if !highlight || len(spans) == 0 {
		return style.Plain(text)
	}
	return search.Render(text, spans, true, style)
}

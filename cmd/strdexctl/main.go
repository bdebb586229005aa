package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strdex/internal/domain"
	"github.com/kailas-cloud/strdex/internal/domain/analysis"
	"github.com/kailas-cloud/strdex/internal/domain/filter"
	"github.com/kailas-cloud/strdex/internal/domain/interpret"
	"github.com/kailas-cloud/strdex/internal/domain/optional"
	"github.com/kailas-cloud/strdex/internal/domain/record"
	logpkg "github.com/kailas-cloud/strdex/internal/logger"
	"github.com/kailas-cloud/strdex/internal/version"
)

// Exit codes.
const (
	exitUnparseable = 2
	exitInvalid     = 3
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ec cli.ExitCoder
		if errors.As(err, &ec) {
			os.Exit(ec.ExitCode())
		}
		os.Exit(1)
	}
}

func newApp(in io.Reader, out io.Writer) *cli.App {
	return &cli.App{
		Name:           "strdexctl",
		Usage:          "Inspect how strdex analyzes strings and interprets queries",
		Version:        version.String(),
		Reader:         in,
		Writer:         out,
		ExitErrHandler: func(*cli.Context, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "interpret",
				Usage:     "Print the filter set a free-text query is interpreted as",
				ArgsUsage: "<query>",
				Action:    interpretCommand,
			},
			{
				Name:      "analyze",
				Usage:     "Print the computed properties of a string",
				ArgsUsage: "<value>",
				Action:    analyzeCommand,
			},
			{
				Name:   "filter",
				Usage:  "Filter newline-separated values read from stdin",
				Action: filterCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Free-text query"},
					&cli.BoolFlag{Name: "palindrome", Usage: "Require (or with =false, exclude) palindromes"},
					&cli.IntFlag{Name: "min-length", Usage: "Minimum length in characters"},
					&cli.IntFlag{Name: "max-length", Usage: "Maximum length in characters"},
					&cli.IntFlag{Name: "word-count", Usage: "Exact number of words"},
					&cli.StringFlag{Name: "contains", Usage: "Single character that must appear (case-insensitive)"},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	logger, err := logpkg.NewLogger("local", c.String("log-level"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	c.Context = logpkg.ContextWithLogger(c.Context, logger)
	return nil
}

type interpretOutput struct {
	Original      string         `json:"original"`
	ParsedFilters map[string]any `json:"parsed_filters"`
	Rules         []string       `json:"rules"`
}

func interpretCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")

	fields, fired, err := interpret.Trace(text)
	if err != nil {
		return exitFor(err)
	}
	set, err := filter.New(fields)
	if err != nil {
		return exitFor(err)
	}
	logpkg.FromContext(c.Context).Debug("interpreted", zap.String("query", text), zap.Strings("rules", fired))

	return writeJSON(c.App.Writer, interpretOutput{
		Original:      text,
		ParsedFilters: filterMap(set),
		Rules:         fired,
	})
}

func analyzeCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("analyze takes exactly one argument", 1)
	}
	p := analysis.Analyze(c.Args().First())
	return writeJSON(c.App.Writer, map[string]any{
		"length":                  p.Length,
		"is_palindrome":           p.IsPalindrome,
		"unique_characters":       p.UniqueCharacters,
		"word_count":              p.WordCount,
		"sha256_hash":             p.SHA256,
		"character_frequency_map": p.CharacterFrequency,
	})
}

func filterCommand(c *cli.Context) error {
	fields, err := filterFields(c)
	if err != nil {
		return exitFor(err)
	}
	set, err := filter.New(fields)
	if err != nil {
		return exitFor(err)
	}

	var recs []record.Record
	now := time.Now()
	sc := bufio.NewScanner(c.App.Reader)
	for sc.Scan() {
		recs = append(recs, record.New(sc.Text(), now))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	for _, rec := range filter.Evaluate(set, recs) {
		if _, err := fmt.Fprintln(c.App.Writer, rec.Value()); err != nil {
			return err
		}
	}
	return nil
}

// filterFields builds fields from --query or from the individual flags.
func filterFields(c *cli.Context) (filter.Fields, error) {
	if c.IsSet("query") {
		return interpret.Extract(c.String("query"))
	}

	var f filter.Fields
	if c.IsSet("palindrome") {
		f.IsPalindrome = optional.Of(c.Bool("palindrome"))
	}
	if c.IsSet("min-length") {
		f.MinLength = optional.Of(c.Int("min-length"))
	}
	if c.IsSet("max-length") {
		f.MaxLength = optional.Of(c.Int("max-length"))
	}
	if c.IsSet("word-count") {
		f.WordCount = optional.Of(c.Int("word-count"))
	}
	if c.IsSet("contains") {
		f.ContainsCharacter = optional.Of(c.String("contains"))
	}
	return f, nil
}

func filterMap(s filter.Set) map[string]any {
	m := make(map[string]any)
	if v, ok := s.IsPalindrome().Get(); ok {
		m[filter.FieldIsPalindrome] = v
	}
	if v, ok := s.MinLength().Get(); ok {
		m[filter.FieldMinLength] = v
	}
	if v, ok := s.MaxLength().Get(); ok {
		m[filter.FieldMaxLength] = v
	}
	if v, ok := s.WordCount().Get(); ok {
		m[filter.FieldWordCount] = v
	}
	if v, ok := s.ContainsCharacter().Get(); ok {
		m[filter.FieldContainsCharacter] = v
	}
	return m
}

func exitFor(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnparseableQuery):
		return cli.Exit(err.Error(), exitUnparseable)
	case errors.Is(err, domain.ErrInvalidFilter), errors.Is(err, domain.ErrConflictingFilters):
		return cli.Exit(err.Error(), exitInvalid)
	default:
		return err
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

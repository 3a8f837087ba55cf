package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/augur/internal/fileproc"
	"github.com/panbanda/augur/internal/output"
	"github.com/panbanda/augur/internal/web"
	"github.com/panbanda/augur/pkg/config"
	"github.com/panbanda/augur/pkg/parser"
	"github.com/panbanda/augur/pkg/preproc"
	"github.com/panbanda/augur/pkg/spaces"
	"github.com/panbanda/augur/pkg/tools"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func getPaths(c *cli.Context) []string {
	paths := c.StringSlice("paths")
	paths = append(paths, c.Args().Slice()...)
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return paths
}

func main() {
	app := &cli.App{
		Name:    "augur",
		Usage:   "Per-function source metrics over tree-sitter",
		Version: version,
		Description: `Augur parses source trees with tree-sitter grammars and reports
per-function-space metrics: cyclomatic, cognitive, Halstead, LOC, NOM,
NExits, NArgs, MI, ABC, WMC, NPA and NPM.

Supports: Python, Rust, C, C++, Java, JavaScript, TypeScript, Go`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "paths",
				Usage: "Input files or directories",
			},
			&cli.StringSliceFlag{
				Name:    "include",
				Aliases: []string{"I"},
				Usage:   "Include glob patterns",
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"X"},
				Usage:   "Exclude glob patterns",
			},
			&cli.IntFlag{
				Name:    "jobs",
				Aliases: []string{"j"},
				Usage:   "Worker count (default: cores - 1)",
			},
			&cli.StringFlag{
				Name:    "language",
				Aliases: []string{"l"},
				Usage:   "Force the language instead of guessing",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"AUGUR_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Emit per-space metrics",
			},
			&cli.StringFlag{
				Name:  "output-format",
				Value: "json",
				Usage: "Serialization format: json, toml, yaml, cbor",
			},
			&cli.StringFlag{
				Name:  "output",
				Usage: "Write one file per input under this directory",
			},
			&cli.BoolFlag{
				Name:  "pr",
				Usage: "Pretty console rendering instead of serialization",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "Emit the colored syntax tree",
			},
			&cli.BoolFlag{
				Name:    "function",
				Aliases: []string{"F"},
				Usage:   "Emit function spans",
			},
			&cli.StringSliceFlag{
				Name:    "count",
				Aliases: []string{"C"},
				Usage:   "Count nodes of the given kinds",
			},
			&cli.StringSliceFlag{
				Name:    "find",
				Aliases: []string{"f"},
				Usage:   "Find nodes of the given kinds",
			},
			&cli.BoolFlag{
				Name:    "comments",
				Aliases: []string{"c"},
				Usage:   "Strip comments",
			},
			&cli.BoolFlag{
				Name:  "in-place",
				Usage: "With -c, overwrite the input file",
			},
			&cli.BoolFlag{
				Name:  "ops",
				Usage: "Emit the operand and operator report",
			},
			&cli.StringFlag{
				Name:  "preproc",
				Usage: "Preprocessor cache file (read, or built and written when missing)",
			},
			&cli.IntFlag{
				Name:  "ls",
				Usage: "First line of the span filter for dump and find",
			},
			&cli.IntFlag{
				Name:  "le",
				Usage: "Last line of the span filter for dump and find",
			},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Expose the analyses over HTTP",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "host",
						Value: "127.0.0.1",
						Usage: "Bind address",
					},
					&cli.IntFlag{
						Name:  "port",
						Value: 8081,
						Usage: "Bind port",
					},
				},
				Action: func(c *cli.Context) error {
					addr := fmt.Sprintf("%s:%d", c.String("host"), c.Int("port"))
					return web.New().ListenAndServe(addr)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// runContext carries everything one run needs across modes.
type runContext struct {
	cfg      *config.Config
	cli      *cli.Context
	format   output.Format
	outDir   string
	language parser.Language
	preproc  *preproc.PreprocResults
	lines    tools.LineFilter
	stdout   sync.Mutex
}

// parseInput reads and parses a file, honoring the forced language and the
// preprocessor macro sets.
func (rc *runContext) parseInput(psr *parser.Parser, path string) (*parser.ParseResult, error) {
	source, err := parser.ReadSource(path)
	if err != nil {
		return nil, err
	}
	language := rc.language
	if language == parser.LangUnknown {
		language, _ = parser.GuessLanguage(source, path)
	}
	if language == parser.LangUnknown {
		return nil, nil
	}
	var macros map[string]struct{}
	if language == parser.LangC || language == parser.LangCPP {
		macros = preproc.Macros(path, rc.preproc)
	}
	return psr.Parse(source, language, path, macros)
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.Int("jobs") > 0 {
		cfg.Analysis.Jobs = c.Int("jobs")
	}
	if c.String("language") != "" {
		cfg.Analysis.Language = c.String("language")
	}

	formatName := c.String("output-format")
	if !c.IsSet("output-format") && cfg.Output.Format != "" {
		formatName = cfg.Output.Format
	}
	format, err := output.ParseFormat(formatName)
	if err != nil {
		return err
	}
	outDir := c.String("output")
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	if cfg.Output.Pretty && !c.IsSet("pr") {
		if err := c.Set("pr", "true"); err != nil {
			return err
		}
	}

	rc := &runContext{
		cfg:    cfg,
		cli:    c,
		format: format,
		outDir: outDir,
		lines:  tools.LineFilter{Start: c.Int("ls"), End: c.Int("le")},
	}
	if cfg.Analysis.Language != "" {
		rc.language = parser.DetectLanguage("." + cfg.Analysis.Language)
		if rc.language == parser.LangUnknown {
			rc.language = parser.Language(cfg.Analysis.Language)
			if _, err := parser.TreeSitterLanguage(rc.language); err != nil {
				return err
			}
		}
	}

	paths := getPaths(c)

	if err := rc.loadOrBuildPreproc(paths); err != nil {
		return err
	}

	switch {
	case c.Bool("dump"):
		return rc.forEach(paths, rc.dumpMode)
	case c.Bool("function"):
		return rc.forEach(paths, rc.functionMode)
	case len(c.StringSlice("count")) > 0:
		return rc.countMode(paths)
	case len(c.StringSlice("find")) > 0:
		return rc.forEach(paths, rc.findMode)
	case c.Bool("comments"):
		return rc.forEach(paths, rc.commentMode)
	case c.Bool("ops"):
		return rc.forEach(paths, rc.opsMode)
	default:
		// Metrics is the default mode.
		return rc.forEach(paths, rc.metricsMode)
	}
}

// loadOrBuildPreproc reads the cached preprocessor results when the
// --preproc file exists, or collects them from the inputs when the run
// spans multiple files or names a --preproc file that does not exist yet.
func (rc *runContext) loadOrBuildPreproc(paths []string) error {
	cache := rc.cli.String("preproc")
	if cache != "" {
		if _, err := os.Stat(cache); err == nil {
			results, err := preproc.Load(cache)
			if err != nil {
				return err
			}
			rc.preproc = results
			return nil
		}
	}
	if len(paths) < 2 && cache == "" {
		return nil
	}

	results := preproc.NewResults()
	allFiles, _, err := fileproc.Run(fileproc.Options{
		Cfg:     rc.cfg,
		Paths:   paths,
		Include: rc.cli.StringSlice("include"),
		Exclude: rc.cli.StringSlice("exclude"),
		Quiet:   true,
	}, func(psr *parser.Parser, path string) error {
		language := parser.DetectLanguage(path)
		if language != parser.LangC && language != parser.LangCPP {
			return nil
		}
		source, err := parser.ReadSource(path)
		if err != nil {
			return err
		}
		result, err := psr.Parse(source, language, path, nil)
		if err != nil {
			return err
		}
		preproc.Preprocess(result, path, results)
		return nil
	})
	if err != nil {
		return err
	}
	if len(results.Files) == 0 {
		return nil
	}

	preproc.FixIncludes(results, allFiles)
	rc.preproc = results

	if cache != "" {
		if err := preproc.Save(cache, results); err != nil {
			return err
		}
	}
	return nil
}

type fileMode func(psr *parser.Parser, path string) error

// forEach runs one mode over every selected file.
func (rc *runContext) forEach(paths []string, mode fileMode) error {
	_, _, err := fileproc.Run(fileproc.Options{
		Cfg:     rc.cfg,
		Paths:   paths,
		Include: rc.cli.StringSlice("include"),
		Exclude: rc.cli.StringSlice("exclude"),
		Quiet:   rc.outDir == "",
	}, fileproc.ProcessFunc(mode))
	return err
}

func (rc *runContext) metricsMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	space := spaces.Metrics(result)
	if space == nil {
		return nil
	}

	if rc.outDir != "" {
		return rc.format.WriteFile(rc.outDir, path, space)
	}

	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	if rc.cli.Bool("pr") {
		output.DumpSpaces(os.Stdout, space)
		return nil
	}
	return rc.format.Write(os.Stdout, space)
}

func (rc *runContext) opsMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	ops := spaces.GetOps(result)
	if ops == nil {
		return nil
	}

	if rc.outDir != "" {
		return rc.format.WriteFile(rc.outDir, path, ops)
	}

	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	if rc.cli.Bool("pr") {
		output.DumpOps(os.Stdout, ops)
		return nil
	}
	return rc.format.Write(os.Stdout, ops)
}

func (rc *runContext) dumpMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	tools.DumpAst(os.Stdout, result, rc.lines)
	return nil
}

func (rc *runContext) functionMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	spans := tools.FunctionSpans(result)
	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	if rc.outDir != "" {
		return rc.format.WriteFile(rc.outDir, path, spans)
	}
	tools.DumpFunctionSpans(os.Stdout, path, spans)
	return nil
}

func (rc *runContext) findMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	filters := make([]tools.Filter, 0)
	for _, raw := range rc.cli.StringSlice("find") {
		filters = append(filters, tools.ParseFilter(raw))
	}
	found := tools.Find(result, filters, rc.lines)
	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	tools.DumpFind(os.Stdout, result, found)
	return nil
}

// countMode aggregates across files; the counters are the only shared
// state and contention is negligible.
func (rc *runContext) countMode(paths []string) error {
	var mu sync.Mutex
	var matched, total int

	filters := make([]tools.Filter, 0)
	for _, raw := range rc.cli.StringSlice("count") {
		filters = append(filters, tools.ParseFilter(raw))
	}

	err := rc.forEach(paths, func(psr *parser.Parser, path string) error {
		result, err := rc.parseInput(psr, path)
		if err != nil || result == nil {
			return err
		}
		m, t := tools.Count(result, filters)
		mu.Lock()
		matched += m
		total += t
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("%d/%d\n", matched, total)
	return nil
}

func (rc *runContext) commentMode(psr *parser.Parser, path string) error {
	result, err := rc.parseInput(psr, path)
	if err != nil || result == nil {
		return err
	}
	stripped := tools.RmComments(result)
	if stripped == nil {
		return nil
	}
	if rc.cli.Bool("in-place") {
		return os.WriteFile(path, stripped, 0o644)
	}
	rc.stdout.Lock()
	defer rc.stdout.Unlock()
	_, err = os.Stdout.Write(stripped)
	return err
}

/*
Command typecontrol generates a typographic scale and a letter-spacing for
every size of it.

Usage:

    typecontrol [flags] list|table|graph|preview|css|fonts|settings|shell

Sizes are derived either from a base size and a ratio (a geometric
progression) or from a custom list, clipped at a maximum letter size.
The letter-spacing of each size follows a non-linear curve around a
selected reference size.

Settings are read from a profile (--config, TOML, YAML or JSON), then
overridden by flags. Size flags accept CSS dimensions like 12px, 9pt or
1.5rem.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/locate/resources"
	"github.com/npillmayer/typecontrol/core/settings"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// tracer traces with key 'typecontrol.cli'.
func tracer() tracing.Trace {
	return tracing.Select("typecontrol.cli")
}

// traceKeys are the tracers configured by the command.
var traceKeys = []string{
	"typecontrol.cli",
	"typecontrol.settings",
	"typecontrol.scale",
	"typecontrol.spacing",
	"typecontrol.graph",
	"typecontrol.table",
	"typecontrol.preview",
	"typecontrol.font",
	"typecontrol.resources",
}

func main() {
	initDisplay()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// setupTracing is replaced in tests, which configure tracing themselves.
var setupTracing = configureTracing

// newResolver creates the font resolver of an invocation.
var newResolver = resources.DefaultResolver

// configureTracing routes all tracers to stderr, at a common level.
func configureTracing(level string, stderr io.Writer) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
		"trace.root":      level,
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	for _, key := range traceKeys {
		t := tracing.Select(key)
		t.SetOutput(stderr)
		t.SetTraceLevel(tracing.TraceLevelFromString(level))
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// options holds the flags which are not settings parameters.
type options struct {
	config  string
	format  string
	lang    string
	out     string
	prefix  string
	search  string
	save    string
	width   int
	height  int
	verbose bool
	version bool
	help    bool
}

// app is a single invocation of the command.
type app struct {
	opts     options
	settings settings.Settings
	resolver *resources.Resolver
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

func newFlagSet(opts *options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("typecontrol", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringVarP(&opts.config, "config", "c", "", "Settings profile to load (.toml, .yaml or .json)")
	fs.String("base", "", "Base font size of the scale, e.g. 12px or 9pt")
	fs.Float64("ratio", 0, "Ratio between consecutive sizes")
	fs.String("custom", "", "Comma-separated list of sizes, replacing the progression")
	fs.String("max", "", "Maximum letter size; larger sizes are dropped")
	fs.String("spacing", "", "Letter-spacing at the selected size, e.g. 0.5px or 2%")
	fs.Bool("percent", false, "Interpret the letter-spacing as a percentage of the size")
	fs.Float64("strength", 0, "Strength of the spacing curve, in percent")
	fs.Float64("power", 0, "Exponent of the spacing curve")
	fs.String("selected", "", "Reference size, snapped to the nearest size of the scale")
	fs.String("font", "", "Font family for previews")
	fs.String("text", "", "Sample text for previews")
	fs.Int("weight", 0, "CSS font weight for previews (100…900)")
	fs.StringVarP(&opts.format, "format", "f", "", "Output format: text|csv|html|css, or toml|yaml|json for settings")
	fs.StringVar(&opts.lang, "lang", "en", "Language for number formatting of text tables")
	fs.StringVarP(&opts.out, "out", "o", "", "Write output to a file instead of stdout")
	fs.StringVar(&opts.prefix, "prefix", "fs-", "Class name prefix of CSS rules")
	fs.IntVar(&opts.width, "width", 0, "Width of graph or preview, in pixels")
	fs.IntVar(&opts.height, "height", 0, "Height of the graph, in pixels")
	fs.StringVarP(&opts.search, "search", "s", "", "Pattern to search font names for")
	fs.StringVar(&opts.save, "save", "", "Save the effective settings to a profile")
	fs.BoolVar(&opts.verbose, "verbose", false, "Trace at debug level")
	fs.BoolVarP(&opts.version, "version", "v", false, "Show version information")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show help message")
	return fs
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	fs := newFlagSet(&a.opts)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		a.errorf("%v", err)
		return 2
	}
	if a.opts.help {
		printHelp(stdout, fs)
		return 0
	}
	if a.opts.version {
		fmt.Fprintf(stdout, "typecontrol version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}
	if setupTracing != nil {
		level := "Error"
		if a.opts.verbose {
			level = "Debug"
		}
		if err := setupTracing(level, stderr); err != nil {
			fmt.Fprintln(stderr, "error configuring tracing")
			return 1
		}
	}
	if fs.NArg() == 0 {
		a.errorf("no command given")
		printHelp(stderr, fs)
		return 2
	}
	if fs.NArg() > 1 {
		a.errorf("too many arguments: %s", strings.Join(fs.Args()[1:], " "))
		return 2
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		a.errorf("unknown command %q", fs.Arg(0))
		return 2
	}
	if err := a.loadSettings(fs); err != nil {
		a.fail(err)
		return 2
	}
	a.resolver = newResolver()
	if err := cmd.run(context.Background(), a); err != nil {
		a.fail(err)
		return 1
	}
	if a.opts.save != "" {
		if err := settings.Save(a.opts.save, a.settings); err != nil {
			a.fail(err)
			return 1
		}
	}
	return 0
}

// loadSettings assembles the effective settings: defaults, overlaid by a
// profile, overlaid by flags. Problems which do not prevent a result are
// reported as warnings.
func (a *app) loadSettings(fs *pflag.FlagSet) error {
	a.settings = settings.Defaults()
	if a.opts.config != "" {
		s, err := settings.Load(a.opts.config)
		if err != nil {
			return err
		}
		a.settings = s
	}
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil || !isParameter(f.Name) {
			return
		}
		err = setParameter(&a.settings, f.Name, f.Value.String())
	})
	if err != nil {
		return err
	}
	for _, problem := range a.settings.Validate() {
		a.warnf("%v", problem)
	}
	a.settings = a.snapSelected(a.settings)
	return nil
}

// output returns the writer for command results and a function to close it.
func (a *app) output() (io.Writer, func() error, error) {
	if a.opts.out == "" {
		return a.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(a.opts.out)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EINVALID, "cannot create output file %s", a.opts.out)
	}
	return f, f.Close, nil
}

func (a *app) warnf(format string, args ...interface{}) {
	pterm.Warning.WithWriter(a.stderr).Printfln(format, args...)
}

func (a *app) errorf(format string, args ...interface{}) {
	pterm.Error.WithWriter(a.stderr).Printfln(format, args...)
}

func (a *app) fail(err error) {
	tracer().Debugf("%v", err)
	a.errorf("%s", core.UserMessage(err))
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "typecontrol - type scales with letter-spacing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: typecontrol [flags] <command>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commandNames() {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintf(w, "  %-24s directory for downloaded fonts\n", resources.CacheEnv)
	fmt.Fprintf(w, "  %-24s enables the Google Fonts directory\n", resources.GoogleAPIKeyEnv)
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/typecontrol/core"
	"github.com/npillmayer/typecontrol/core/scale"
	"github.com/npillmayer/typecontrol/core/settings"
	"github.com/pterm/pterm"
)

// Intp is our interpreter object. It holds the settings of a shell session
// in a store; every change is echoed by a subscriber.
type Intp struct {
	app   *app
	store *settings.Store
	out   io.Writer
	ctx   context.Context
}

func newIntp(ctx context.Context, a *app, out io.Writer) *Intp {
	return &Intp{app: a, store: settings.NewStore(a.settings), out: out, ctx: ctx}
}

func shellCmd(ctx context.Context, a *app) error {
	intp := newIntp(ctx, a, a.stdout)
	cancel := intp.store.Subscribe(intp.echo)
	defer cancel()
	stdin, ok := a.stdin.(io.ReadCloser)
	if !ok {
		stdin = io.NopCloser(a.stdin)
	}
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "tc > ",
		AutoComplete: completer(),
		Stdin:        stdin,
		Stdout:       a.stdout,
		Stderr:       a.stderr,
	})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot start interactive mode")
	}
	defer repl.Close()
	pterm.Info.WithWriter(a.stdout).Println("Welcome to typeControl. Quit with <ctrl>D or 'quit'")
	intp.echo(intp.store.Get())
	intp.REPL(repl)
	a.settings = intp.store.Get()
	return nil
}

func completer() *readline.PrefixCompleter {
	params := make([]readline.PrefixCompleterInterface, 0, len(parameters))
	for _, name := range parameterNames() {
		params = append(params, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("set", params...),
		readline.PcItem("show"),
		readline.PcItem("list"),
		readline.PcItem("table", readline.PcItem("text"), readline.PcItem("csv"),
			readline.PcItem("html"), readline.PcItem("css")),
		readline.PcItem("css"),
		readline.PcItem("preview"),
		readline.PcItem("reset"),
		readline.PcItem("load"),
		readline.PcItem("save"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// REPL starts interactive mode.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		quit, err := intp.execute(line)
		if err != nil {
			pterm.Error.WithWriter(intp.out).Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.WithWriter(intp.out).Println("Good bye!")
}

// echo prints the scale after a settings change.
func (intp *Intp) echo(s settings.Settings) {
	sizes := scale.GenerateSizes(s.SizeParams())
	fmt.Fprintf(intp.out, "scale: %s (selected %gpx)\n", scale.Join(sizes), s.SelectedSize)
}

// execute interprets a single line of input.
func (intp *Intp) execute(line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	cmd, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i > 0 {
		cmd, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	tracer().Debugf("shell command %q, argument %q", cmd, arg)
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true, nil
	case "help":
		intp.help(arg)
	case "set":
		return false, intp.set(arg)
	case "reset":
		intp.store.Reset()
	case "show":
		return false, intp.runCommand("settings", arg)
	case "list", "css", "preview":
		return false, intp.runCommand(cmd, "")
	case "table":
		return false, intp.runCommand("table", arg)
	case "load":
		if arg == "" {
			return false, core.Error(core.EINVALID, "load needs a profile name")
		}
		s, err := settings.Load(arg)
		if err != nil {
			return false, err
		}
		intp.store.Set(intp.app.snapSelected(s))
	case "save":
		if arg == "" {
			return false, core.Error(core.EINVALID, "save needs a profile name")
		}
		return false, settings.Save(arg, intp.store.Get())
	default:
		return false, core.Error(core.EINVALID, "unknown command %q, try 'help'", cmd)
	}
	return false, nil
}

// set changes a parameter, e.g. "set base 14px" or "set text Hamburgefonts".
func (intp *Intp) set(arg string) error {
	name, value := arg, ""
	if i := strings.IndexAny(arg, " \t"); i > 0 {
		name, value = arg[:i], strings.TrimSpace(arg[i+1:])
	}
	if name == "" {
		return core.Error(core.EINVALID, "set needs a parameter, one of %s",
			strings.Join(parameterNames(), ", "))
	}
	s := intp.store.Get()
	if err := setParameter(&s, strings.ToLower(name), value); err != nil {
		return err
	}
	for _, problem := range s.Validate() {
		pterm.Warning.WithWriter(intp.out).Println(problem.Error())
	}
	intp.store.Set(intp.app.snapSelected(s))
	return nil
}

// runCommand runs one of the command line commands on the current settings,
// printing to the shell's output.
func (intp *Intp) runCommand(name, format string) error {
	a := *intp.app
	a.settings = intp.store.Get()
	a.stdout = intp.out
	a.opts.out = ""
	a.opts.format = format
	return commands[name].run(intp.ctx, &a)
}

func (intp *Intp) help(topic string) {
	switch strings.ToLower(topic) {
	case "set":
		pterm.Info.WithWriter(intp.out).Println("set <parameter> <value>")
		fmt.Fprintf(intp.out, "parameters: %s\n", strings.Join(parameterNames(), ", "))
		fmt.Fprintln(intp.out, "sizes accept CSS dimensions (12px, 9pt, 1.5rem), spacing accepts percentages (2%)")
	default:
		pterm.Info.WithWriter(intp.out).Println("commands")
		fmt.Fprintln(intp.out, `
	set <parameter> <value>   change a parameter (see 'help set')
	show [toml|yaml|json]     print the current settings
	list                      print the sizes of the scale
	table [text|csv|html|css] print sizes with letter-spacing
	css                       print a stylesheet
	preview                   print the sample text at every size
	reset                     restore the default settings
	load <profile>            load settings from a profile
	save <profile>            save settings to a profile
	quit                      leave the shell`)
	}
}

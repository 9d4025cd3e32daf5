// cstn reads CSTN documents and prints them back.
//
// Usage:
//
//	cstn [flags] fmt [file]        Parse and print CSTN (indented unless --compact)
//	cstn [flags] yaml [file]       Parse and pretty-print as YAML
//	cstn [flags] from-json [file]  Convert JSON or JSONC to CSTN
//	cstn [flags] check [file]      Parse only and report errors
//	cstn [flags] hash [file]       Print the structural BLAKE3 hash
//	cstn version                   Print version info
//
// If no file is given, or the file is "-", input is read from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/alttpo/cstn"
	"github.com/alttpo/cstn/bridge"
	"github.com/alttpo/cstn/internal/config"
)

const version = "0.1.0"

// usageError is reported with exit code 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }
func (e *usageError) ExitCode() int { return 2 }

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

type command struct {
	cfg    *config.Config
	logger *slog.Logger
	parser cstn.Parser
	stdin  io.Reader
	stdout io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var (
		configPath string
		indent     string
		maxDepth   int
		logLevel   string
		compact    bool
		strict     bool
	)

	flagSet := pflag.NewFlagSet("cstn", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&configPath, "config", "", "path to YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVar(&indent, "indent", "", "indentation per nesting level for pretty output")
	flagSet.IntVar(&maxDepth, "max-depth", 0, "maximum container nesting accepted by the parser")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.BoolVar(&compact, "compact", false, "print compact single-line CSTN")
	flagSet.BoolVar(&strict, "strict", false, "reject trailing data after the document's value")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return nil
		}
		return usagef("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printHelp(stderr, flagSet)
		return usagef("missing command")
	}
	name, rest := rest[0], rest[1:]

	if name == "version" {
		fmt.Fprintf(stdout, "cstn %s\n", version)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("indent") {
		cfg.Indent = indent
	}
	if flagSet.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if flagSet.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if compact {
		cfg.Output = config.OutputCompact
	}
	if strict {
		cfg.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return usagef("%v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	parser := cstn.NewParser(cfg.MaxDepth)
	if cfg.Strict {
		parser = cstn.NewStrictParser(cfg.MaxDepth)
	}

	c := &command{
		cfg:    cfg,
		logger: logger,
		parser: parser,
		stdin:  stdin,
		stdout: stdout,
	}

	if len(rest) > 1 {
		return usagef("%s: unexpected argument: %s", name, rest[1])
	}
	file := "-"
	if len(rest) == 1 {
		file = rest[0]
	}

	switch name {
	case "fmt":
		return c.cmdFmt(file)
	case "yaml":
		return c.cmdYAML(file)
	case "from-json":
		return c.cmdFromJSON(file)
	case "check":
		return c.cmdCheck(file)
	case "hash":
		return c.cmdHash(file)
	}

	return usagef("unknown command: %s", name)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `cstn reads CSTN documents and prints them back.

Usage:
  cstn [flags] <command> [file]

Commands:
  fmt         parse and print CSTN (indented unless --compact)
  yaml        parse and pretty-print as YAML
  from-json   convert JSON or JSONC to CSTN
  check       parse only and report errors
  hash        print the structural BLAKE3 hash
  version     print version info

Flags:
%s`, flagSet.FlagUsages())
}

func (c *command) read(file string) ([]byte, error) {
	if file == "-" {
		data, err := io.ReadAll(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", file, err)
	}
	return data, nil
}

func (c *command) parse(file string) (*cstn.Value, error) {
	data, err := c.read(file)
	if err != nil {
		return nil, err
	}

	v, err := c.parser.ParseBytes(data)
	if err != nil {
		c.logger.Debug("parse failed", "file", file, "bytes", len(data), "error", err)
		return nil, fmt.Errorf("parsing %s: %w", file, err)
	}

	c.logger.Debug("parsed", "file", file, "bytes", len(data), "kind", v.Kind)
	return v, nil
}

func (c *command) write(v *cstn.Value) error {
	var (
		text string
		err  error
	)
	if c.cfg.Output == config.OutputCompact {
		text, err = cstn.Serialize(v)
	} else {
		text, err = cstn.SerializeIndent(v, c.cfg.Indent)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.stdout, text)
	return err
}

func (c *command) cmdFmt(file string) error {
	v, err := c.parse(file)
	if err != nil {
		return err
	}
	return c.write(v)
}

func (c *command) cmdYAML(file string) error {
	v, err := c.parse(file)
	if err != nil {
		return err
	}

	indent := len(c.cfg.Indent)
	if indent < 2 {
		indent = 2
	}
	out, err := bridge.MarshalYAML(v, indent)
	if err != nil {
		return err
	}

	_, err = c.stdout.Write(out)
	return err
}

func (c *command) cmdFromJSON(file string) error {
	data, err := c.read(file)
	if err != nil {
		return err
	}

	v, err := bridge.FromJSON(data)
	if err != nil {
		return fmt.Errorf("converting %s: %w", file, err)
	}
	c.logger.Debug("converted json", "file", file, "bytes", len(data), "kind", v.Kind)

	return c.write(v)
}

func (c *command) cmdCheck(file string) error {
	v, err := c.parse(file)
	if err != nil {
		var se *cstn.SyntaxError
		if errors.As(err, &se) {
			c.logger.Info("syntax error", "file", file, "offset", se.Offset, "char", string(se.Char))
		}
		return err
	}

	fmt.Fprintf(c.stdout, "%s: ok (%s)\n", file, v.Kind)
	return nil
}

func (c *command) cmdHash(file string) error {
	v, err := c.parse(file)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.stdout, v.Hash())
	return err
}

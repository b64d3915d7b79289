package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/vk/subgrid/internal/app"
	"github.com/vk/subgrid/internal/iterate"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

const usageText = `subgrid - ordered, resumable operations across a monorepo of subprojects.

Usage:
  subgrid [options] <command> [command options]

Commands:
  iterate   Run a task across subprojects in dependency order.
  lint      Report dependency version conflicts across descriptors.
  graph     Write the dependency graph as Graphviz DOT source.
  checkout  Create or remove a local checkout link.
  list      Print all subprojects in topological order.

Options:
`

// Parse processes command-line arguments into the application config and a
// resolved command. It returns a boolean indicating whether the program
// should exit cleanly (help requested), or an ExitError on invalid input.
// Command strings are resolved into the closed app.Command enum here, once;
// nothing below this boundary sees them.
func Parse(args []string, output io.Writer) (*app.Config, *app.Command, bool, error) {
	flagSet := flag.NewFlagSet("subgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "workspace.hcl", "Path to the workspace configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		flagSet.Usage()
		return nil, nil, true, nil
	}

	command, shouldExit, err := parseCommand(rest[0], rest[1:], output)
	if err != nil || shouldExit {
		return nil, nil, shouldExit, err
	}

	config, err := app.NewConfig(app.Config{
		ConfigPath: *configFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, command, false, nil
}

// parseCommand resolves the subcommand name and its own flags.
func parseCommand(name string, args []string, output io.Writer) (*app.Command, bool, error) {
	switch name {
	case "iterate":
		return parseIterate(args, output)
	case "lint":
		return &app.Command{Kind: app.CommandLint}, false, nil
	case "graph":
		return parseGraph(args, output)
	case "checkout":
		return parseCheckout(args, output)
	case "list":
		return &app.Command{Kind: app.CommandList}, false, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q", name)}
	}
}

func parseIterate(args []string, output io.Writer) (*app.Command, bool, error) {
	flagSet := flag.NewFlagSet("subgrid iterate", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Usage:
  subgrid iterate [options] <task> [task args...]

Runs <task> inside each subproject's root directory, one subproject at a
time, in dependency order. On failure the exact resume command is printed.

Options:
`)
		flagSet.PrintDefaults()
	}

	subtreeFlag := flagSet.Bool("subtree", false, "Restrict the iteration to a subproject and its dependencies.")
	projectFlag := flagSet.String("project", "", "The subtree root. Required with -subtree.")
	selectFlag := flagSet.String("select", "", "Retain only subprojects matching this configured selector.")
	startFlag := flagSet.String("start", "", "Drop all ordered subprojects before this one.")
	var skipFlag stringList
	flagSet.Var(&skipFlag, "skip", "Skip the named subproject. May be repeated.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if *subtreeFlag && *projectFlag == "" {
		return nil, false, &ExitError{Code: 2, Message: "-subtree requires -project"}
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		return nil, false, &ExitError{Code: 2, Message: "iterate requires a task to run"}
	}

	return &app.Command{
		Kind: app.CommandIterate,
		Iterate: iterate.Options{
			Subtree:        *subtreeFlag,
			CurrentProject: *projectFlag,
			Select:         *selectFlag,
			Skip:           skipFlag,
			Start:          *startFlag,
			Task:           rest[0],
			TaskArgs:       rest[1:],
		},
	}, false, nil
}

func parseGraph(args []string, output io.Writer) (*app.Command, bool, error) {
	flagSet := flag.NewFlagSet("subgrid graph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	outFlag := flagSet.String("o", "", "Output file for the DOT source. Default is standard output.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return &app.Command{
		Kind:  app.CommandGraph,
		Graph: app.GraphOptions{Output: *outFlag},
	}, false, nil
}

func parseCheckout(args []string, output io.Writer) (*app.Command, bool, error) {
	flagSet := flag.NewFlagSet("subgrid checkout", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Usage:
  subgrid checkout [-remove] <project> <dependency> [source]

Links <dependency> inside <project> to a local working copy. Without a
source argument the path comes from the workspace configuration's checkout
blocks. With -remove the link is deleted instead.
`)
	}

	removeFlag := flagSet.Bool("remove", false, "Remove the checkout link instead of creating it.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	rest := flagSet.Args()
	if len(rest) < 2 {
		return nil, false, &ExitError{Code: 2, Message: "checkout requires a project and a dependency name"}
	}

	opts := app.CheckoutOptions{
		Remove:     *removeFlag,
		Project:    rest[0],
		Dependency: rest[1],
	}
	if len(rest) > 2 {
		opts.Source = rest[2]
	}

	return &app.Command{Kind: app.CommandCheckout, Checkout: opts}, false, nil
}

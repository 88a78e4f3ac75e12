package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aromatt/xcopr/pkg/coproc"
	"github.com/aromatt/xcopr/pkg/logging"
	"github.com/aromatt/xcopr/pkg/processing"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

var version = "dev"

const (
	exitSuccess = 0
	exitFailure = 1
)

type options struct {
	coprocs     []string
	stream      uint8
	fileGlob    string
	contextFile string
	envFile     string
	loggingType string
	logLevel    string
	showVersion bool
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("xcopr", pflag.ContinueOnError)
	flagSet.StringArrayVarP(
		&opts.coprocs,
		"coproc",
		"c",
		nil,
		"a command to run in a coprocess (repeat in pipeline order)")
	flagSet.Uint8VarP(
		&opts.stream,
		"stream",
		"s",
		1,
		"number of streams (reserved, currently has no effect)")
	flagSet.StringVarP(
		&opts.fileGlob,
		"file",
		"f",
		"",
		"glob of YAML pipeline definition files to run, e.g. 'pipelines/**/*.xcopr.yaml'")
	flagSet.StringVar(
		&opts.contextFile,
		"context-file",
		"",
		"global template context YAML file for pipeline definition files")
	flagSet.StringVar(
		&opts.envFile,
		"env-file",
		"",
		"dotenv file whose variables are added to the environment of every stage")
	flagSet.StringVar(
		&opts.loggingType,
		"logging-type",
		logging.Tint,
		"logging type: json, text or tint")
	flagSet.StringVar(
		&opts.logLevel,
		"log-level",
		"warn",
		"logging level: debug, info, warn, error")
	flagSet.BoolVar(
		&opts.showVersion,
		"version",
		false,
		"print version and exit")
	return flagSet
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes xcopr with args and returns the process exit code. Any
// failure is reported as a single "xcopr: ..." line on stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flagSet := newFlagSet(&opts)
	flagSet.SetOutput(stderr)

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitSuccess
		}
		return fail(stderr, err)
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version)
		return exitSuccess
	}

	runner := &coproc.Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	if err := execute(&opts, runner, stderr); err != nil {
		return fail(stderr, err)
	}
	return exitSuccess
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "xcopr: %v\n", err)
	return exitFailure
}

func execute(opts *options, runner *coproc.Runner, logOutput io.Writer) error {
	if err := logging.Initialize(logOutput, opts.loggingType, opts.logLevel); err != nil {
		return err
	}

	if err := includeEnv(opts.envFile); err != nil {
		return err
	}

	if opts.fileGlob != "" {
		if len(opts.coprocs) > 0 {
			return errors.New("--coproc and --file cannot be used together")
		}
		globalContext, err := loadGlobalContext(opts.contextFile)
		if err != nil {
			return err
		}
		return processing.RunAll(runner, opts.fileGlob, globalContext)
	}

	if opts.contextFile != "" {
		return errors.New("--context-file requires --file")
	}
	if opts.stream == 0 {
		return errors.New("--stream must be at least 1")
	}

	slog.Debug("running coprocesses", "count", len(opts.coprocs), "stream", opts.stream)
	return runner.Run(opts.coprocs)
}

func loadGlobalContext(contextFile string) (map[string]any, error) {
	if contextFile == "" {
		return nil, nil
	}
	return processing.LoadContextFile(contextFile)
}

func includeEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	slog.Info("using env file", "filename", envFile)
	return nil
}

// Package cli implements the schema-generator command line.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"

	"schema-generator/internal/config"
	"schema-generator/internal/gen"
	"schema-generator/internal/pipeline"
	"schema-generator/internal/resource"
	"schema-generator/internal/scrape"
	"schema-generator/internal/source"
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Exit codes.
const (
	codeFailure = 1
	codeUsage   = 2
)

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: codeUsage, Message: fmt.Sprintf(format, args...)}
}

const usage = `schema-generator - turns documented API resources into schema declarations.

Usage:
  schema-generator <command> [options] [INPUT]

Commands:
  gen      Generate Go types (or a declaration document) from a resource document
  check    Report every problem in a resource document
  scrape   Convert the HTML reference page into a resource document

INPUT is a resource document (YAML or JSON), or an HTML page with -html.
It defaults to stdin. Run 'schema-generator <command> -h' for options.
`

// IO bundles the streams a command uses.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the command line args (without the program name).
func Run(args []string, streams IO) error {
	if len(args) == 0 {
		fmt.Fprint(streams.Stdout, usage)

		return nil
	}

	var cmd command

	switch args[0] {
	case "gen":
		cmd = &genCommand{}
	case "check":
		cmd = &checkCommand{}
	case "scrape":
		cmd = &scrapeCommand{}
	case "-h", "-help", "--help", "help":
		fmt.Fprint(streams.Stdout, usage)

		return nil
	default:
		return usageError("unknown command %q", args[0])
	}

	env, shouldExit, err := setup(args[0], args[1:], cmd, streams)
	if err != nil || shouldExit {
		return err
	}

	return cmd.run(env)
}

// command is one subcommand.
type command interface {
	// register adds the command's own flags. Commands that can override a
	// common setting bind it in common.
	register(fs *flag.FlagSet, common *commonFlags)
	run(env *environment) error
}

// environment is what a command runs with after flags and settings are
// resolved.
type environment struct {
	IO
	log    logr.Logger
	config *config.Config
	input  string
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configPath string
	logLevel   string
	pkg        string
	format     string
}

func setup(name string, args []string, cmd command, streams IO) (*environment, bool, error) {
	fs := flag.NewFlagSet("schema-generator "+name, flag.ContinueOnError)
	fs.SetOutput(streams.Stdout)

	fs.Usage = func() {
		fmt.Fprintf(streams.Stdout, "Usage:\n  schema-generator %s [options] [INPUT]\n\nOptions:\n", name)
		fs.PrintDefaults()
	}

	var common commonFlags

	fs.StringVar(&common.configPath, "config", "", "Path to a YAML config file.")
	fs.StringVar(&common.logLevel, "log-level", "", "Logging level: 'debug', 'info', 'warn', 'error', 'critical' or 'fatal'. (default from config, else info)")
	fs.StringVar(&common.pkg, "package", "", "Go package name of generated code. (default from config, else api)")
	cmd.register(fs, &common)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: codeUsage, Message: err.Error()}
	}

	if fs.NArg() > 1 {
		return nil, false, usageError("too many arguments: %v", fs.Args())
	}

	cfg, err := loadConfig(common)
	if err != nil {
		return nil, false, err
	}

	log, err := NewLogger(streams.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	env := &environment{IO: streams, log: log, config: cfg, input: fs.Arg(0)}

	return env, false, nil
}

// loadConfig resolves settings: defaults, the config file, the environment
// (and .env), then flags.
func loadConfig(flags commonFlags) (*config.Config, error) {
	cfg := config.Default()

	if flags.configPath != "" {
		loaded, err := config.LoadFile(flags.configPath)
		if err != nil {
			return nil, usageError("%v", err)
		}

		cfg = loaded
	}

	dotenv, err := config.ReadDotEnv(config.DotEnvFile)
	if err != nil {
		return nil, usageError("%v", err)
	}

	cfg.ApplyEnv(config.Env(dotenv))

	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}

	if flags.pkg != "" {
		cfg.Package = flags.pkg
	}

	if flags.format != "" {
		cfg.Format = flags.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, usageError("invalid configuration: %v", err)
	}

	return cfg, nil
}

// readResources loads the input resource set from the INPUT argument or stdin.
func (env *environment) readResources(html bool) (*resource.Set, error) {
	r := env.Stdin
	name := "stdin"

	if env.input != "" && env.input != "-" {
		f, err := os.Open(env.input)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		r = f
		name = env.input
	}

	var (
		set *resource.Set
		err error
	)

	if html {
		set, err = scrape.New(env.log.WithName("scrape")).Parse(r)
	} else {
		set, err = source.Read(r)
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	env.log.Info("resources loaded", "input", name, "resources", set.Len())

	return set, nil
}

// write sends content to path, or to stdout when path is empty.
func (env *environment) write(path string, content []byte) error {
	if path == "" {
		_, err := env.Stdout.Write(content)

		return err
	}

	file := &gen.GeneratedFile{Filename: filepath.Base(path), Content: content}
	if err := gen.WriteFile(file, filepath.Dir(path)); err != nil {
		return err
	}

	env.log.Info("output written", "path", path, "bytes", len(content))

	return nil
}

func (env *environment) pipeline(generator *gen.Generator) *pipeline.Pipeline {
	return pipeline.New(
		pipeline.WithLogger(env.log.WithName("pipeline")),
		pipeline.WithScalars(generator.IsKnownScalar),
	)
}

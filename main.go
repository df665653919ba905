package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mcncl/jsonenv/internal/config"
	"github.com/mcncl/jsonenv/internal/converter"
	"github.com/mcncl/jsonenv/internal/errors"
)

// CLI defines the command-line interface
var CLI struct {
	Input   string           `arg:"" name:"input" help:"Path to input JSON file."`
	Output  string           `help:"Optional output file path." short:"o"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Config *config.Config
	Logger *zap.Logger
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonenv"),
		kong.Description("Convert a JSON file into a single-quoted environment variable string"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := config.New(CLI.Input, CLI.Output, CLI.Debug)
	if err != nil {
		exitWithError(err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		exitWithError(err)
	}

	err = run(&Context{Config: cfg, Logger: logger, Stdout: os.Stdout})
	_ = logger.Sync()
	if err != nil {
		exitWithError(err)
	}
}

// run executes the conversion described by ctx.Config
func run(ctx *Context) error {
	logger := ctx.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	conv := converter.NewConverter(logger, ctx.Stdout)
	if _, err := conv.Convert(ctx.Config.Input, ctx.Config.Output); err != nil {
		logger.Debug("conversion failed", zap.String("input", ctx.Config.Input), zap.Error(err))
		return err
	}
	return nil
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
	fmt.Fprintf(os.Stderr, "\nFor help, run: jsonenv --help\n")
	os.Exit(1)
}

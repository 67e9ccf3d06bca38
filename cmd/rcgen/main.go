package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/loopcontext/rcscript"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 1
	}
	env, err := loadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "rcgen: %v\n", err)
		return 1
	}
	log, err := newLogger(env.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "rcgen: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	rcscript.SetLogger(log)
	defer rcscript.SetLogger(nil)

	sub := args[0]
	args = args[1:]
	switch sub {
	case "generate":
		cfg, e := parseGenerateFlags("generate", args, env, stderr)
		if e != nil {
			err = e
			break
		}
		err = runGenerate(cfg, stdout, stderr)
	case "check":
		cfg, e := parseCheckFlags(args, stderr)
		if e != nil {
			err = e
			break
		}
		err = runCheck(cfg, stdout)
	case "compile":
		cfg, e := parseCompileFlags(args, env, stderr)
		if e != nil {
			err = e
			break
		}
		err = runCompile(cfg, stdout, stderr)
	case "help", "-h", "--help":
		usage(stderr)
		return 0
	default:
		fmt.Fprintf(stderr, "rcgen: unknown subcommand %q\n", sub)
		usage(stderr)
		return 1
	}
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		log.Debug("command failed", zap.String("command", sub), zap.Error(err))
		for _, e := range multierr.Errors(err) {
			fmt.Fprintf(stderr, "rcgen: %v\n", e)
		}
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `rcgen - resource script generator

usage: rcgen <command> [options]

commands:
  generate   Write a .rc script from a YAML or TOML manifest.
  check      Validate a manifest and the files it references.
  compile    Generate the script and run the resource compiler on it.

environment:
  RCGEN_LOG_LEVEL      debug, info, warn or error (default warn)
  RCGEN_COMPILER       compiler executable for compile (default rc)
  RCGEN_COMPILER_ARGS  space separated argument template with {in} and {out}
  OUT_DIR              default output directory

Use 'rcgen <command> -h' for command-specific flags.
`)
}

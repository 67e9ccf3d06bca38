package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gookit/color"

	"github.com/loopcontext/rcscript"
)

// compileConfig holds flags for the compile command.
type compileConfig struct {
	generateConfig
	compiler string
	args     []string
	res      string
}

func parseCompileFlags(args []string, env envConfig, stderr io.Writer) (*compileConfig, error) {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := compileConfig{compiler: env.Compiler, args: env.CompilerArgs}
	cfg.bind(fs)
	fs.StringVar(&cfg.compiler, "compiler", cfg.compiler, "Resource compiler executable (default rc).")
	fs.StringVar(&cfg.res, "res", "", "Compiled output (default: script path with .res extension).")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if _, err := cfg.finish(env); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func runCompile(cfg *compileConfig, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m, b, err := loadBuild(cfg.manifest, cfg.dump, stdout)
	if err != nil {
		return err
	}
	c := rcscript.ExecCompiler{
		Command: cfg.compiler,
		Args:    cfg.args,
		Output:  cfg.res,
		Stderr:  stderr,
	}
	rcfg := rcscript.Config{
		Observer:    &consoleObserver{w: stderr},
		ResolvePath: m.ResolvePath,
		Parallel:    cfg.parallel,
	}
	if err := b.Compile(ctx, cfg.out, c, rcfg); err != nil {
		return err
	}
	printSummary(stdout, cfg.out, b)
	fmt.Fprintf(stdout, "%s %s\n", color.Green.Sprint("compiled"), cfg.out)
	return nil
}

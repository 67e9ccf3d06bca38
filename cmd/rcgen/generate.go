package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"

	"github.com/loopcontext/rcscript"
	"github.com/loopcontext/rcscript/manifest"
)

// generateConfig holds flags for the generate command.
type generateConfig struct {
	manifest string
	out      string
	parallel bool
	dump     bool
}

func parseGenerateFlags(name string, args []string, env envConfig, stderr io.Writer) (*generateConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg generateConfig
	cfg.bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg.finish(env)
}

func (cfg *generateConfig) bind(fs *flag.FlagSet) {
	fs.StringVar(&cfg.manifest, "manifest", "", "Manifest file (.yaml, .yml or .toml). Required.")
	fs.StringVar(&cfg.out, "out", "", "Script to write (default: <OUT_DIR or manifest dir>/<manifest name>.rc).")
	fs.BoolVar(&cfg.parallel, "parallel", false, "Render languages concurrently.")
	fs.BoolVar(&cfg.dump, "dump", false, "Print the decoded manifest before generating.")
}

func (cfg *generateConfig) finish(env envConfig) (*generateConfig, error) {
	if cfg.manifest == "" {
		return nil, fmt.Errorf("-manifest is required")
	}
	if cfg.out == "" {
		dir := env.OutDir
		if dir == "" {
			dir = filepath.Dir(cfg.manifest)
		}
		base := strings.TrimSuffix(filepath.Base(cfg.manifest), filepath.Ext(cfg.manifest))
		cfg.out = filepath.Join(dir, base+".rc")
	}
	return cfg, nil
}

// consoleObserver prints diagnostics as warnings.
type consoleObserver struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *consoleObserver) OnIgnoredIdentifier(lang rcscript.Lang, kind rcscript.Kind, id rcscript.IDOrName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, "%s %s %s: identifier is not written for this resource type (language %s)\n",
		color.Yellow.Sprint("warning"), kind, id, lang)
}

func (o *consoleObserver) OnResourceSkipped(lang rcscript.Lang, kind rcscript.Kind, id rcscript.IDOrName) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fmt.Fprintf(o.w, "%s %s %s has no content for language %s\n",
		color.Cyan.Sprint("skipped"), kind, id, lang)
}

func loadBuild(path string, dump bool, stdout io.Writer) (*manifest.Manifest, *rcscript.Build, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if dump {
		spew.Fdump(stdout, m)
	}
	b, err := m.Build()
	if err != nil {
		return nil, nil, err
	}
	return m, b, nil
}

func runGenerate(cfg *generateConfig, stdout, stderr io.Writer) error {
	m, b, err := loadBuild(cfg.manifest, cfg.dump, stdout)
	if err != nil {
		return err
	}
	rcfg := rcscript.Config{
		Observer:    &consoleObserver{w: stderr},
		ResolvePath: m.ResolvePath,
		Parallel:    cfg.parallel,
	}
	if err := b.GenerateFile(cfg.out, rcfg); err != nil {
		return err
	}
	printSummary(stdout, cfg.out, b)
	return nil
}

func printSummary(w io.Writer, out string, b *rcscript.Build) {
	stats := b.SnapshotStats()
	written := 0
	for _, n := range stats.WrittenResources {
		written += n
	}
	fmt.Fprintf(w, "%s %s (%d languages, %d resources)\n",
		color.Green.Sprint("wrote"), out, len(b.Languages()), written)
}

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/gookit/color"
	"go.uber.org/multierr"

	"github.com/loopcontext/rcscript/manifest"
)

// checkConfig holds flags for the check command.
type checkConfig struct {
	manifest string
	dump     bool
}

func parseCheckFlags(args []string, stderr io.Writer) (*checkConfig, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg checkConfig
	fs.StringVar(&cfg.manifest, "manifest", "", "Manifest file (.yaml, .yml or .toml). Required.")
	fs.BoolVar(&cfg.dump, "dump", false, "Print the decoded manifest.")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.manifest == "" {
		return nil, fmt.Errorf("-manifest is required")
	}
	return &cfg, nil
}

// runCheck reports manifest and asset problems together.
func runCheck(cfg *checkConfig, stdout io.Writer) error {
	m, err := manifest.Load(cfg.manifest)
	if err != nil {
		return err
	}
	if cfg.dump {
		spew.Fdump(stdout, m)
	}
	b, err := m.Build()
	if err = multierr.Append(err, m.CheckAssets()); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s %s (%d languages, %d resources)\n",
		color.Green.Sprint("ok"), cfg.manifest, len(b.Languages()), len(m.Resources))
	return nil
}

package rcscript

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const statsMaxKeys = 512

type entry struct {
	id  IDOrName
	res Resource
}

// Build is a resource document: for every declared language, the resources to
// write in declaration order.
type Build struct {
	langs     []Lang
	resources map[Lang][]entry
	err       error
	stats     *buildStats
}

// New returns a document for langs. Duplicates are ignored; languages are
// written in ascending order.
func New(langs ...Lang) *Build {
	b := &Build{
		resources: make(map[Lang][]entry, len(langs)),
		stats:     newBuildStats(statsMaxKeys),
	}
	for _, l := range langs {
		if _, ok := b.resources[l]; ok {
			continue
		}
		b.resources[l] = nil
		b.langs = append(b.langs, l)
	}
	slices.SortFunc(b.langs, Lang.Compare)
	return b
}

// WithOneLanguage returns a document for US English.
func WithOneLanguage() *Build {
	return New(PresetLang1...)
}

// WithOneOrTwoLanguages returns a document for US English and l.
func WithOneOrTwoLanguages(l Lang) *Build {
	return New(LangENU, l)
}

// WithNineLanguages returns a document for PresetLang9.
func WithNineLanguages() *Build {
	return New(PresetLang9...)
}

// Languages returns the declared languages in output order.
func (b *Build) Languages() []Lang {
	return slices.Clone(b.langs)
}

// Resource adds r under id to every declared language.
func (b *Build) Resource(id IDOrName, r Resource) *Build {
	for _, l := range b.langs {
		b.resources[l] = append(b.resources[l], entry{id: id, res: r})
	}
	return b
}

// LangResource adds r under id to lang only. An undeclared lang makes Generate
// fail with ErrUndeclaredLanguage.
func (b *Build) LangResource(lang Lang, id IDOrName, r Resource) *Build {
	if _, ok := b.resources[lang]; !ok {
		if b.err == nil {
			b.err = fmt.Errorf("resource %s for language %s: %w", id, lang, ErrUndeclaredLanguage)
		}
		return b
	}
	b.resources[lang] = append(b.resources[lang], entry{id: id, res: r})
	return b
}

// Err returns the first error recorded while the document was assembled.
func (b *Build) Err() error {
	return b.err
}

// SnapshotStats returns the counters accumulated by Generate calls.
func (b *Build) SnapshotStats() Stats {
	return b.stats.snapshot()
}

// ResetStats clears the counters.
func (b *Build) ResetStats() {
	b.stats.reset()
}

func (b *Build) renderLang(lang Lang, cfg Config) ([]byte, error) {
	sw := &scriptWriter{
		diag:        diagnostics{observer: cfg.Observer, log: cfg.Logger, stats: b.stats},
		resolvePath: cfg.ResolvePath,
	}
	for _, e := range b.resources[lang] {
		if err := sw.writeResource(lang, e.id, e.res); err != nil {
			return nil, fmt.Errorf("resource %s %s for language %s: %w", e.res.kind, e.id, lang, err)
		}
	}
	return sw.buf, nil
}

// Generate writes the script to w. Errors from w are returned unchanged.
func (b *Build) Generate(w io.Writer, cfg Config) error {
	if b.err != nil {
		return b.err
	}
	cfg = cfg.withDefaults()

	if _, err := io.WriteString(w, scriptHeader); err != nil {
		return err
	}

	if cfg.Parallel {
		chunks, err := b.renderParallel(cfg)
		if err != nil {
			return err
		}
		for _, chunk := range chunks {
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		}
	} else {
		for _, lang := range b.langs {
			chunk, err := b.renderLang(lang, cfg)
			if err != nil {
				return err
			}
			if _, err := w.Write(chunk); err != nil {
				return err
			}
		}
	}

	cfg.Logger.Debug("resource script generated",
		zap.Int("languages", len(b.langs)),
		zap.Bool("parallel", cfg.Parallel),
	)
	return nil
}

func (b *Build) renderParallel(cfg Config) ([][]byte, error) {
	chunks := make([][]byte, len(b.langs))
	var g errgroup.Group
	for i, lang := range b.langs {
		g.Go(func() error {
			chunk, err := b.renderLang(lang, cfg)
			if err != nil {
				return err
			}
			chunks[i] = chunk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chunks, nil
}

// GenerateFile writes the script to path. A partially written file is removed.
func (b *Build) GenerateFile(path string, cfg Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create script file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close script file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = b.Generate(bw, cfg); err != nil {
		return err
	}
	return bw.Flush()
}

// Compile writes the script to scriptPath and hands it to c.
func (b *Build) Compile(ctx context.Context, scriptPath string, c Compiler, cfg Config) error {
	if err := b.GenerateFile(scriptPath, cfg); err != nil {
		return err
	}
	if err := c.Compile(ctx, scriptPath); err != nil {
		return fmt.Errorf("compile %s: %w", scriptPath, err)
	}
	return nil
}

package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/akavel/rsrc/ico"
	"go.uber.org/multierr"
)

// ErrEmptyIcon is reported for an icon file without images.
var ErrEmptyIcon = errors.New("icon file has no images")

// CheckAssets verifies that every file the manifest references exists.
// Icon files must also carry a valid ICO header. All problems are returned
// together.
func (m *Manifest) CheckAssets() error {
	var errs error
	for i := range m.Resources {
		r := &m.Resources[i]
		where := fmt.Sprintf("resources[%d] (id %s)", i, r.ID)
		for _, p := range []string{r.Bitmap, r.Cursor, r.Font, r.HTML, r.MessageTable} {
			if p != "" {
				errs = multierr.Append(errs, m.checkFile(where, p))
			}
		}
		if r.User != nil && r.User.File != "" {
			errs = multierr.Append(errs, m.checkFile(where, r.User.File))
		}
		if r.Icon != "" {
			errs = multierr.Append(errs, m.checkIcon(where, r.Icon))
		}
	}
	return errs
}

func (m *Manifest) checkFile(where, p string) error {
	path, err := m.ResolvePath(p)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	return nil
}

func (m *Manifest) checkIcon(where, p string) error {
	path, err := m.ResolvePath(p)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	defer f.Close()

	entries, err := ico.DecodeHeaders(f)
	if err != nil {
		return fmt.Errorf("%s: icon %s: %w", where, p, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%s: icon %s: %w", where, p, ErrEmptyIcon)
	}
	return nil
}

package rcscript

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

//go:generate mockgen -source=$GOFILE -package mock_rcscript -destination=test/mock/$GOFILE

// Compiler turns a resource script into a compiled resource file.
type Compiler interface {
	Compile(ctx context.Context, scriptPath string) error
}

const (
	argInput  = "{in}"
	argOutput = "{out}"
)

// ExecCompiler runs an external resource compiler.
type ExecCompiler struct {
	// Command is the executable, "rc" when empty.
	Command string
	// Args is the argument template. "{in}" and "{out}" are replaced by the
	// script and output paths. Empty selects the usual arguments for rc or
	// windres.
	Args []string
	// Output is the compiled file. Empty means the script path with a .res
	// extension.
	Output string
	// Stderr receives the tool's combined output when set.
	Stderr io.Writer
}

func (c ExecCompiler) command() string {
	if c.Command == "" {
		return "rc"
	}
	return c.Command
}

func (c ExecCompiler) output(scriptPath string) string {
	if c.Output != "" {
		return c.Output
	}
	return strings.TrimSuffix(scriptPath, filepath.Ext(scriptPath)) + ".res"
}

func (c ExecCompiler) args(scriptPath string) []string {
	tmpl := c.Args
	if len(tmpl) == 0 {
		if strings.Contains(strings.ToLower(filepath.Base(c.command())), "windres") {
			tmpl = []string{"-i", argInput, "-O", "coff", "-o", argOutput}
		} else {
			tmpl = []string{"/nologo", "/fo", argOutput, argInput}
		}
	}
	out := c.output(scriptPath)
	args := make([]string, len(tmpl))
	for i, a := range tmpl {
		a = strings.ReplaceAll(a, argInput, scriptPath)
		args[i] = strings.ReplaceAll(a, argOutput, out)
	}
	return args
}

// Compile runs the tool and reports its output on failure.
func (c ExecCompiler) Compile(ctx context.Context, scriptPath string) error {
	var combined bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command(), c.args(scriptPath)...)
	cmd.Stdout = &combined
	cmd.Stderr = &combined
	err := cmd.Run()
	if c.Stderr != nil && combined.Len() > 0 {
		_, _ = c.Stderr.Write(combined.Bytes())
	}
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.command(), err, strings.TrimSpace(combined.String()))
	}
	return nil
}

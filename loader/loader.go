// Package loader is the thin file-I/O boundary around the assembler: it
// reads assembly source from disk and writes the finished ROM image back
// out. Neither the lexer, parser, nor assembler packages touch the
// filesystem directly; this is the one place that does.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/lookbusy1344/c8asm/assembler"
	"github.com/lookbusy1344/c8asm/diag"
	"github.com/lookbusy1344/c8asm/parser"
)

// ReadSource reads the assembly source at path. I/O errors are wrapped with
// the path for context, matching how the rest of the pipeline reports
// failures with a location attached.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a user-supplied CLI argument
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return string(data), nil
}

// Assemble runs the full lex/parse/assemble pipeline over source, reporting
// diagnostics through d. It returns an error if parsing or assembly failed;
// d.HadError() will already be true in that case.
func Assemble(source string, d *diag.Diagnostic) (*assembler.Result, error) {
	prog, err := parser.Parse(source, d)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}

	asm := assembler.New(d)
	res, err := asm.Assemble(prog)
	if err != nil {
		return nil, fmt.Errorf("assembly failed: %w", err)
	}

	return res, nil
}

// WriteImage writes res's combined byte vector to path as a raw binary ROM
// image: no header, no padding, no trailer.
func WriteImage(path string, res *assembler.Result) error {
	f, err := os.Create(path) // #nosec G304 -- path is a user-supplied CLI argument
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	return writeAndClose(f, path, res.Image())
}

// writeAndClose writes data to f and closes it. A close failure after a
// successful write (e.g. a buffered writer's flush error, surfaced only at
// close time) is reported rather than dropped: the caller has no other way
// to learn the image may not have actually reached disk. The write error
// takes priority if both occur.
func writeAndClose(f io.WriteCloser, path string, data []byte) (err error) {
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %q: %w", path, closeErr)
		}
	}()

	if _, writeErr := f.Write(data); writeErr != nil {
		return fmt.Errorf("failed to write %q: %w", path, writeErr)
	}
	return nil
}

// AssembleFile is the end-to-end convenience entry point used by the CLI's
// assemble subcommand: read inputPath, assemble it, write the image to
// outputPath. Diagnostics are printed to diagOut as they're resolved
// against inputPath's own source text.
func AssembleFile(inputPath, outputPath string, diagOut io.Writer) error {
	source, err := ReadSource(inputPath)
	if err != nil {
		return err
	}

	d := diag.New(source, diagOut)

	res, err := Assemble(source, d)
	if err != nil {
		return err
	}

	return WriteImage(outputPath, res)
}

package gen

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// writeFile renders f, formats it with goimports and writes it under the
// output directory.
func (g *JenniferGenerator) writeFile(f *jen.File, name string) error {
	path := filepath.Join(g.outDir, name)
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", path, "", err)
	}
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output for debugging. Errors are ignored as
		// we're already in an error state.
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return NewGenerationError("format", path, "unformatted output written to "+debugPath, err)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("write", path, "", err)
	}
	g.mu.Lock()
	g.written = append(g.written, path)
	g.mu.Unlock()
	return nil
}

func mkdir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

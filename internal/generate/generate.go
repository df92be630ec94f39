// Package generate reads a tagged page and writes the C++ header and source
// that embed its section tree.
package generate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/itsmostafa/pagegen/internal/config"
	"github.com/itsmostafa/pagegen/internal/section"
)

// Result describes a completed generation.
type Result struct {
	Input      string
	InputBytes int
	Root       *section.Node
	HeaderPath string
	SourcePath string
}

// Generator runs the read, parse, render and write steps.
type Generator struct {
	cfg *config.Config
	log zerolog.Logger
}

// New returns a Generator for cfg.
func New(cfg *config.Config, log zerolog.Logger) *Generator {
	return &Generator{cfg: cfg, log: log}
}

// Parse reads the document at path and builds its section tree.
func (g *Generator) Parse(path string) (*section.Node, error) {
	doc, err := g.read(path)
	if err != nil {
		return nil, err
	}
	return g.parse(path, doc)
}

func (g *Generator) read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	g.log.Debug().Str("path", path).Int("bytes", len(data)).Msg("read input")
	return string(data), nil
}

func (g *Generator) parse(path, doc string) (*section.Node, error) {
	root, err := g.cfg.Builder().Parse(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	g.log.Debug().
		Int("nodes", root.Count()).
		Int("regions", root.Regions()).
		Int("leaves", len(root.Leaves())).
		Strs("markers", g.cfg.Markers).
		Msg("built section tree")

	return root, nil
}

// Generate parses the document at path and writes both artifacts into the
// configured output directory. Either both files are written or neither is.
func (g *Generator) Generate(path string) (*Result, error) {
	doc, err := g.read(path)
	if err != nil {
		return nil, err
	}
	root, err := g.parse(path, doc)
	if err != nil {
		return nil, err
	}

	arts, err := g.cfg.Serializer().Render(g.cfg.Declaration(), root.Subsections)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Input:      path,
		InputBytes: len(doc),
		Root:       root,
		HeaderPath: filepath.Join(g.cfg.OutputDir, g.cfg.HeaderFile),
		SourcePath: filepath.Join(g.cfg.OutputDir, g.cfg.SourceFile),
	}

	err = writeAll([]file{
		{path: res.HeaderPath, data: arts.Header},
		{path: res.SourcePath, data: arts.Source},
	})
	if err != nil {
		return nil, err
	}

	for _, p := range []string{res.HeaderPath, res.SourcePath} {
		g.log.Info().Str("file", p).Msg("wrote artifact")
	}
	return res, nil
}

type file struct {
	path string
	data []byte
}

// rename is replaced in tests to simulate a failing filesystem.
var rename = os.Rename

// writeAll stages every file next to its destination and renames them into
// place only after all of them were written. Existing destinations are moved
// aside first and put back if any rename fails, so a failed call leaves the
// output directory as it was.
func writeAll(files []file) (err error) {
	for _, f := range files {
		if info, err := os.Stat(f.path); err == nil && !info.Mode().IsRegular() {
			return fmt.Errorf("failed to write %s: destination is not a regular file", f.path)
		}
	}

	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}

	// backups[i] is where the previous content of files[i] was moved, empty
	// if it did not exist. placed counts destinations holding new content.
	backups := make([]string, len(files))
	placed := 0
	defer func() {
		if err != nil {
			for i := placed - 1; i >= 0; i-- {
				os.Remove(files[i].path)
			}
			for i, b := range backups {
				if b != "" {
					rename(b, files[i].path)
				}
			}
			return
		}
		for _, b := range backups {
			if b != "" {
				os.Remove(b)
			}
		}
	}()

	for i, f := range files {
		if _, err := os.Lstat(f.path); err == nil {
			backup := staged[i] + ".orig"
			if err := rename(f.path, backup); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.path, err)
			}
			backups[i] = backup
		}
		if err := rename(staged[i], f.path); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.path, err)
		}
		placed++
	}
	return nil
}

func stage(f file) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", f.path, err)
	}

	_, werr := tmp.Write(f.data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write %s: %w", f.path, err)
	}
	return tmp.Name(), nil
}

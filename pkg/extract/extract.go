// Package extract finds fenced diagram blocks in documentation files.
//
// It scans markdown for ```mermaid code fences and also accepts standalone
// .mmd files whose whole content is one diagram. Extraction records the
// 1-indexed line of the first diagram line so reported issues point into
// the original file.
package extract

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/errors"
)

// markdownExtensions are scanned for fenced blocks; diagramExtensions are
// treated as one whole-file diagram.
var (
	markdownExtensions = map[string]bool{".md": true, ".markdown": true, ".mdx": true}
	diagramExtensions  = map[string]bool{".mmd": true, ".mermaid": true}
)

// Source extracts every fenced diagram block from markdown content.
func Source(content, filePath string) []diagram.Diagram {
	var diagrams []diagram.Diagram

	var (
		inFence    bool
		fenceStart int // line of the opening fence
		buf        []string
	)

	lineNo := 0
	for line := range strings.Lines(content) {
		lineNo++
		line = strings.TrimSuffix(line, "\n")
		trimmed := strings.TrimSpace(line)

		if !inFence {
			if isDiagramFence(trimmed) {
				inFence = true
				fenceStart = lineNo
				buf = buf[:0]
			}
			continue
		}
		if strings.HasPrefix(trimmed, "```") {
			inFence = false
			diagrams = append(diagrams, diagram.New(strings.Join(buf, "\n"), filePath, fenceStart+1))
			continue
		}
		buf = append(buf, line)
	}
	// An unterminated fence at EOF still yields its collected lines.
	if inFence && len(buf) > 0 {
		diagrams = append(diagrams, diagram.New(strings.Join(buf, "\n"), filePath, fenceStart+1))
	}
	return diagrams
}

// isDiagramFence matches an opening fence tagged as a diagram, tolerating
// trailing fence attributes.
func isDiagramFence(line string) bool {
	rest, ok := strings.CutPrefix(line, "```")
	if !ok {
		return false
	}
	rest = strings.TrimSpace(rest)
	return rest == "mermaid" || strings.HasPrefix(rest, "mermaid ") || strings.HasPrefix(rest, "mermaid{")
}

// File extracts diagrams from one file. Markdown files are scanned for
// fences; .mmd files are taken whole.
func File(path string) ([]diagram.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such file: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to read %s", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case diagramExtensions[ext]:
		return []diagram.Diagram{diagram.New(string(data), path, 1)}, nil
	case markdownExtensions[ext]:
		return Source(string(data), path), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported file type: %s", path)
}

// Dir walks a directory tree and extracts diagrams from every supported
// file, in lexical walk order.
func Dir(root string) ([]diagram.Diagram, error) {
	var diagrams []diagram.Diagram
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip hidden directories and vendored trees.
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules" || name == "vendor") {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !markdownExtensions[ext] && !diagramExtensions[ext] {
			return nil
		}
		found, err := File(path)
		if err != nil {
			return err
		}
		diagrams = append(diagrams, found...)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "failed to scan %s", root)
	}
	return diagrams, nil
}

// Paths extracts diagrams from a mix of files and directories.
func Paths(paths []string) ([]diagram.Diagram, error) {
	var diagrams []diagram.Diagram
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "no such path: %s", path)
		}
		var found []diagram.Diagram
		if info.IsDir() {
			found, err = Dir(path)
		} else {
			found, err = File(path)
		}
		if err != nil {
			return nil, err
		}
		diagrams = append(diagrams, found...)
	}
	return diagrams, nil
}

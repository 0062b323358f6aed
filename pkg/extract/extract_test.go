package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/diaglens/pkg/diagram"
	"github.com/matzehuels/diaglens/pkg/errors"
)

func TestSourceFencedBlocks(t *testing.T) {
	content := `# Architecture

Some prose.

` + "```mermaid" + `
graph TD
  A --> B
` + "```" + `

More prose.

` + "```mermaid" + `
sequenceDiagram
  A->>B: hi
` + "```" + `
`
	diagrams := Source(content, "docs/arch.md")

	if len(diagrams) != 2 {
		t.Fatalf("diagrams = %d, want 2", len(diagrams))
	}
	// The start line is the first diagram line, not the fence line.
	if diagrams[0].StartLine != 6 {
		t.Errorf("diagrams[0].StartLine = %d, want 6", diagrams[0].StartLine)
	}
	if diagrams[0].Type != diagram.TypeFlowchart {
		t.Errorf("diagrams[0].Type = %v", diagrams[0].Type)
	}
	if diagrams[1].Type != diagram.TypeSequence {
		t.Errorf("diagrams[1].Type = %v", diagrams[1].Type)
	}
	if diagrams[0].FilePath != "docs/arch.md" {
		t.Errorf("FilePath = %q", diagrams[0].FilePath)
	}
}

func TestSourceIgnoresOtherFences(t *testing.T) {
	content := "```go\nfunc main() {}\n```\n```mermaid\ngraph TD\nA --> B\n```\n"
	diagrams := Source(content, "a.md")

	if len(diagrams) != 1 {
		t.Fatalf("diagrams = %d, want 1 (go fence ignored)", len(diagrams))
	}
}

func TestSourceFenceAttributes(t *testing.T) {
	content := "```mermaid {theme: dark}\ngraph TD\nA --> B\n```\n"
	diagrams := Source(content, "a.md")

	if len(diagrams) != 1 {
		t.Fatalf("fence with attributes should match, got %d", len(diagrams))
	}
}

func TestSourceUnterminatedFence(t *testing.T) {
	content := "# Doc\n\n```mermaid\ngraph TD\nA --> B"
	diagrams := Source(content, "a.md")

	if len(diagrams) != 1 {
		t.Fatalf("unterminated fence should still be extracted, got %d", len(diagrams))
	}
	if diagrams[0].StartLine != 4 {
		t.Errorf("StartLine = %d, want 4", diagrams[0].StartLine)
	}
}

func TestSourceEmpty(t *testing.T) {
	if diagrams := Source("no diagrams here", "a.md"); len(diagrams) != 0 {
		t.Errorf("diagrams = %d, want 0", len(diagrams))
	}
}

func TestFileWholeDiagram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flow.mmd")
	if err := os.WriteFile(path, []byte("graph TD\nA --> B"), 0644); err != nil {
		t.Fatal(err)
	}

	diagrams, err := File(path)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if len(diagrams) != 1 {
		t.Fatalf("diagrams = %d, want 1", len(diagrams))
	}
	if diagrams[0].StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", diagrams[0].StartLine)
	}
	if diagrams[0].Type != diagram.TypeFlowchart {
		t.Errorf("Type = %v", diagrams[0].Type)
	}
}

func TestFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	if err := os.WriteFile(path, []byte("package main"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := File(path)
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("code = %v, want UNSUPPORTED", errors.GetCode(err))
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "missing.md"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"readme.md":             "```mermaid\ngraph TD\nA --> B\n```\n",
		"docs/flow.mmd":         "graph LR\nX --> Y",
		"docs/notes.txt":        "not scanned",
		".hidden/secret.md":     "```mermaid\ngraph TD\nH --> I\n```\n",
		"node_modules/dep.md":   "```mermaid\ngraph TD\nN --> M\n```\n",
		"vendor/third/party.md": "```mermaid\ngraph TD\nV --> W\n```\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	diagrams, err := Dir(root)
	if err != nil {
		t.Fatalf("Dir error: %v", err)
	}
	// Hidden, node_modules, and vendor trees are skipped.
	if len(diagrams) != 2 {
		t.Fatalf("diagrams = %d, want 2: %+v", len(diagrams), diagrams)
	}
}

func TestPathsMixed(t *testing.T) {
	root := t.TempDir()
	md := filepath.Join(root, "a.md")
	if err := os.WriteFile(md, []byte("```mermaid\ngraph TD\nA --> B\n```\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.mmd"), []byte("graph TD\nC --> D"), 0644); err != nil {
		t.Fatal(err)
	}

	diagrams, err := Paths([]string{md, sub})
	if err != nil {
		t.Fatalf("Paths error: %v", err)
	}
	if len(diagrams) != 2 {
		t.Errorf("diagrams = %d, want 2", len(diagrams))
	}
}

func TestPathsMissing(t *testing.T) {
	_, err := Paths([]string{filepath.Join(t.TempDir(), "nope")})
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}

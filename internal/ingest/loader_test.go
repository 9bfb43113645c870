package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestProcessor_LoadDir(t *testing.T) {
	root := t.TempDir()

	writeFile := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	writeFile("acme.txt",
		"Q: What database does the platform use?\n"+
			"A: The platform runs on PostgreSQL with streaming replication.\n")
	writeFile("nested/faq.md",
		"Frage: Wie lange dauert die Implementierung?\n"+
			"Antwort: Die Implementierung dauert in der Regel sechs Wochen.\n")
	writeFile("ignored.pdf", "binary junk")
	writeFile(".hidden/secret.txt",
		"Q: Should hidden directories be scanned at all?\n"+
			"A: No, hidden directories are configuration, not knowledge.\n")
	writeFile("empty.txt", "no structured content here")

	p := NewProcessor()
	entries, err := p.LoadDir(context.Background(), root)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("LoadDir() returned %d entries, want 2", len(entries))
	}

	clients := map[string]bool{}
	for _, e := range entries {
		clients[e.Client] = true
	}
	if !clients["acme"] || !clients["faq"] {
		t.Errorf("LoadDir() clients = %v, want acme and faq", clients)
	}
}

func TestProcessor_LoadDir_MissingRoot(t *testing.T) {
	p := NewProcessor()
	if _, err := p.LoadDir(context.Background(), "/does/not/exist"); err == nil {
		t.Error("LoadDir() with missing root should return error")
	}
}

func TestProcessor_LoadDir_Cancelled(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor()
	if _, err := p.LoadDir(ctx, root); err == nil {
		t.Error("LoadDir() with cancelled context should return error")
	}
}

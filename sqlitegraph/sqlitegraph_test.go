package sqlitegraph

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/danieldk/embednet"
)

func testGraph(t *testing.T) *embednet.Graph {
	emb, err := embednet.ReadEmbeddings(strings.NewReader("a 1 0\nb 0 1\nc 1 0\n"))
	if err != nil {
		t.Fatal(err)
	}

	g, err := embednet.BuildGraph(context.Background(), emb, 0.5, embednet.GraphOptions{})
	if err != nil {
		t.Fatal(err)
	}

	return g
}

func TestWriteRead(t *testing.T) {
	ctx := context.Background()
	g := testGraph(t)
	path := filepath.Join(t.TempDir(), "graph.db")

	if err := Write(ctx, path, g, false); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	words, edges, err := Read(ctx, path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(words, want) {
		t.Errorf("words = %v, want %v", words, want)
	}

	if want := g.SortedEdges(); !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestWriteLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.db")

	if err := Write(context.Background(), path, testGraph(t), true); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	if len(entries) != 1 || entries[0].Name() != "graph.db" {
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory should only contain graph.db, has %v", names)
	}
}

func TestWriteCanceled(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.db")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Write(ctx, path, testGraph(t), false); err == nil {
		t.Fatal("Write() with canceled context should fail")
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("failed Write() should not create %s", path)
	}
}

func TestReadMissing(t *testing.T) {
	if _, _, err := Read(context.Background(), filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Read() of a missing database should fail")
	}
}

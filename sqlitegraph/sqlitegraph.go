// Package sqlitegraph stores similarity graphs in SQLite databases.
package sqlitegraph

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/danieldk/embednet"
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE words (
		id INTEGER PRIMARY KEY,
		word TEXT NOT NULL UNIQUE
	);

	CREATE TABLE edges (
		source INTEGER NOT NULL REFERENCES words(id),
		target INTEGER NOT NULL REFERENCES words(id),
		PRIMARY KEY (source, target)
	);

	CREATE INDEX idx_edges_target ON edges(target);
`

// Write stores the graph in a new database at path. The database is built
// in a temporary file and only replaces path when it is complete.
func Write(ctx context.Context, path string, g *embednet.Graph, sorted bool) error {
	out, err := embednet.CreateAtomic(path)
	if err != nil {
		return err
	}
	defer func() {
		out.Abort()
		os.Remove(out.Name() + "-journal")
	}()

	db, err := sql.Open("sqlite", out.Name())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := fill(ctx, db, g, sorted); err != nil {
		db.Close()
		return err
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	return out.Commit()
}

func fill(ctx context.Context, db *sql.DB, g *embednet.Graph, sorted bool) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (id, word) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing word insert: %w", err)
	}
	defer wordStmt.Close()

	for id, word := range g.Words() {
		if _, err := wordStmt.ExecContext(ctx, id, word); err != nil {
			return fmt.Errorf("inserting word %q: %w", word, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (source, target) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing edge insert: %w", err)
	}
	defer edgeStmt.Close()

	edges := g.Edges()
	if sorted {
		edges = g.SortedEdges()
	}

	for _, edge := range edges {
		if _, err := edgeStmt.ExecContext(ctx, edge.From, edge.To); err != nil {
			return fmt.Errorf("inserting edge (%d, %d): %w", edge.From, edge.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing graph: %w", err)
	}

	return nil
}

// Read loads the words and edges of a database written by Write. Edges are
// ordered by (source, target).
func Read(ctx context.Context, path string) ([]string, []embednet.Edge, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	words, err := readWords(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT source, target FROM edges ORDER BY source, target`)
	if err != nil {
		return nil, nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var edges []embednet.Edge
	for rows.Next() {
		var edge embednet.Edge
		if err := rows.Scan(&edge.From, &edge.To); err != nil {
			return nil, nil, fmt.Errorf("scanning edge: %w", err)
		}
		edges = append(edges, edge)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating edges: %w", err)
	}

	return words, edges, nil
}

func readWords(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

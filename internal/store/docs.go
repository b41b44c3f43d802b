package store

import (
	"context"
	"fmt"
	"strings"
)

// DocChunk is one snippet of application documentation.
type DocChunk struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// AddDocChunk stores a documentation snippet for retrieval.
func (db *DB) AddDocChunk(ctx context.Context, title, content string) (int64, error) {
	res, err := db.sql.ExecContext(ctx,
		`INSERT INTO docs_chunks (title, content) VALUES (?, ?)`, title, content)
	if err != nil {
		return 0, fmt.Errorf("add doc chunk: %w", err)
	}
	return res.LastInsertId()
}

// SearchDocs runs a full-text search over documentation chunks, best match
// first. The query is sanitized into individual FTS terms so user-supplied
// punctuation cannot break the MATCH expression.
func (db *DB) SearchDocs(ctx context.Context, query string, limit int) ([]DocChunk, error) {
	terms := ftsTerms(query)
	if terms == "" {
		return nil, nil
	}

	rows, err := db.sql.QueryContext(ctx, `
		SELECT d.id, d.title, d.content
		FROM docs_fts f
		JOIN docs_chunks d ON d.id = f.rowid
		WHERE docs_fts MATCH ?
		ORDER BY rank LIMIT ?`, terms, limit)
	if err != nil {
		return nil, fmt.Errorf("search docs: %w", err)
	}
	defer rows.Close()

	var out []DocChunk
	for rows.Next() {
		var d DocChunk
		if err := rows.Scan(&d.ID, &d.Title, &d.Content); err != nil {
			return nil, fmt.Errorf("scan doc chunk: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ftsTerms turns free text into a space-joined list of quoted OR terms.
func ftsTerms(query string) string {
	fields := strings.Fields(query)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `"'?!.,;:()`)
		if f == "" {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(f, `"`, ``)+`"`)
	}
	return strings.Join(terms, " OR ")
}

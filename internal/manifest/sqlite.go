package manifest

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const sqliteSchema = `
CREATE TABLE call_info (
	seq       INTEGER PRIMARY KEY,
	id        TEXT NOT NULL UNIQUE,
	level     TEXT NOT NULL,
	message   TEXT,
	file_path TEXT NOT NULL,
	line      INTEGER NOT NULL
)`

func writeSQLite(ctx context.Context, path string, doc *Document) (err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", doc.Schema)); err != nil {
		return fmt.Errorf("setting schema version: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO call_info (seq, id, level, message, file_path, line)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range doc.Calls {
		var msg sql.NullString
		if rec.Message != nil {
			msg = sql.NullString{String: *rec.Message, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, rec.ID, rec.Level, msg, rec.FilePath, rec.Line); err != nil {
			return fmt.Errorf("inserting %q: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true
	return nil
}

func readSQLite(ctx context.Context, path string) (doc *Document, err error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing database: %w", cerr)
		}
	}()

	doc = &Document{}
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&doc.Schema); err != nil {
		return nil, fmt.Errorf("reading schema version: %w", err)
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, level, message, file_path, line
		FROM call_info
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying call_info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rec Record
			msg sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Level, &msg, &rec.FilePath, &rec.Line); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if msg.Valid {
			s := msg.String
			rec.Message = &s
		}
		doc.Calls = append(doc.Calls, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return doc, nil
}

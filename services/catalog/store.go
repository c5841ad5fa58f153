package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("coursescout.services.catalog")

//go:embed schema.sql
var Schema string

// Store persists catalog records in sqlite.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{db: db}
}

const termsSeparator = ", "

// Put upserts records by course id in one transaction; either every record
// lands or none do.
func (s Store) Put(ctx context.Context, records []Record) error {
	ctx, span := tracer.Start(ctx, "Put")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(records)))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (id, title, credits, department, level, description, terms_offered)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			credits = excluded.credits,
			department = excluded.department,
			level = excluded.level,
			description = excluded.description,
			terms_offered = excluded.terms_offered
	`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.ExecContext(ctx,
			r.ID, r.Title, r.Credits, r.Department, r.Level,
			r.Description, strings.Join(r.TermsOffered, termsSeparator),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// List returns every record ordered by course id.
func (s Store) List(ctx context.Context) ([]Record, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, credits, department, level, description, terms_offered
		FROM courses
		ORDER BY id
	`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var terms string
		err := rows.Scan(&r.ID, &r.Title, &r.Credits, &r.Department, &r.Level, &r.Description, &terms)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if terms != "" {
			r.TermsOffered = strings.Split(terms, termsSeparator)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("records", len(records)))
	return records, nil
}

func (s Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count)
	return count, err
}

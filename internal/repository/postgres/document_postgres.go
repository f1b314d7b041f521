package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"docmanage/internal/model"
	"docmanage/internal/repository"
)

const documentColumns = "id, filename, storage_path, size, content_type, status, uploaded_by, created_at"

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, filename, storage_path, size, content_type, status, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Filename,
		doc.StoragePath,
		doc.Size,
		doc.ContentType,
		doc.Status,
		doc.UploadedBy,
		doc.CreatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// ListByOwner returns all documents uploaded by ownerID, newest first.
func (r *DocumentPostgres) ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error) {
	q := `SELECT ` + documentColumns + ` FROM documents WHERE uploaded_by = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// List returns documents matching the filter using LIMIT/OFFSET pagination.
// Filter clauses are conjunctive; the date clause only applies when both
// bounds are set (To is exclusive, callers pass end-of-range + 1 day).
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) ([]model.Document, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		where = append(where, "status = "+arg(f.Status))
	}
	if f.Search != "" {
		where = append(where, "filename ILIKE "+arg("%"+f.Search+"%"))
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		where = append(where, "created_at >= "+arg(f.From))
		where = append(where, "created_at < "+arg(f.To))
	}

	q := `SELECT ` + documentColumns + ` FROM documents`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY created_at DESC, id DESC"
	q += " LIMIT " + arg(f.Limit) + " OFFSET " + arg(f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

// ReviewStatus updates the document status and appends the status-history
// entry in one transaction so the two writes commit or fail together.
func (r *DocumentPostgres) ReviewStatus(ctx context.Context, id, newStatus string) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	q := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := scanDocument(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET status = $1 WHERE id = $2`,
		newStatus, id,
	); err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO document_status_history (document_id, old_status, new_status) VALUES ($1, $2, $3)`,
		id, doc.Status, newStatus,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	doc.Status = newStatus
	return doc, nil
}

// HistoryByDocument returns the audit trail of a document in changed_at order.
func (r *DocumentPostgres) HistoryByDocument(ctx context.Context, documentID string) ([]model.StatusHistoryEntry, error) {
	const q = `
		SELECT id, document_id, old_status, new_status, changed_at
		FROM document_status_history
		WHERE document_id = $1
		ORDER BY changed_at ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.StatusHistoryEntry, 0)
	for rows.Next() {
		var e model.StatusHistoryEntry
		if err := rows.Scan(&e.ID, &e.DocumentID, &e.OldStatus, &e.NewStatus, &e.ChangedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Filename,
		&d.StoragePath,
		&d.Size,
		&d.ContentType,
		&d.Status,
		&d.UploadedBy,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func collectDocuments(rows *sql.Rows) ([]model.Document, error) {
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

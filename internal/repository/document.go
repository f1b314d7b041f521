package repository

import (
	"context"
	"time"

	"docmanage/internal/model"
)

// DocumentRepository defines data access for documents and their status
// history using SQL queries only. No business logic here.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored document.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByOwner returns every document uploaded by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]model.Document, error)

	// List returns documents matching the conjunctive filter, newest first,
	// with limit/offset pagination.
	List(ctx context.Context, f DocumentFilter) ([]model.Document, error)

	// ReviewStatus updates the document's status and appends the matching
	// status-history entry in a single transaction. Returns the updated
	// document, or sql.ErrNoRows if the document does not exist.
	ReviewStatus(ctx context.Context, id, newStatus string) (*model.Document, error)

	// HistoryByDocument returns the status-history entries of a document in
	// changed_at order.
	HistoryByDocument(ctx context.Context, documentID string) ([]model.StatusHistoryEntry, error)
}

// DocumentFilter holds the conjunctive filter and pagination for List.
// Zero values mean "not filtered": empty Status/Search skip their clauses,
// and the date clause applies only when both From and To are set.
type DocumentFilter struct {
	Status string
	Search string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

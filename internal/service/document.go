package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docmanage/internal/model"
	"docmanage/internal/notify"
	"docmanage/internal/repository"
	"docmanage/internal/storage"
)

// MaxFileSize is the upload cap. The whole file is read into memory before
// this check, so the HTTP body limit is set slightly above it.
const MaxFileSize = 5 << 20 // 5 MiB

const (
	dateLayout     = "2006-01-02"
	presignExpiry  = 15 * time.Minute
	defaultLimit   = 5
	reviewMessage  = "Document %s successfully"
	storagePrefix  = "documents"
	metadataKeyOrg = "original-filename"
)

var allowedContentTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// ListQuery carries the admin listing parameters as received on the wire.
// StartDate/EndDate are raw YYYY-MM-DD strings; the date filter applies only
// when both are present, and a lone bound is silently ignored.
type ListQuery struct {
	Status    string
	Search    string
	StartDate string
	EndDate   string
	Page      int
	Limit     int
}

// ReviewResult confirms a review transition. The caller receives it before
// the notification task necessarily runs.
type ReviewResult struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
}

// DocumentService defines the document workflow use cases.
type DocumentService interface {
	// Upload validates content type and size, stores the bytes under a
	// UUID-derived key, and creates the pending document row. The stored
	// object is deleted again if the row insert fails.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, ownerID string) (*model.Document, error)

	// ListOwn returns every document uploaded by ownerID, without pagination.
	ListOwn(ctx context.Context, ownerID string) ([]model.Document, error)

	// ListAll returns documents matching the conjunctive filter with
	// page/limit pagination. Intended for admin callers; the route enforces
	// the role.
	ListAll(ctx context.Context, q ListQuery) ([]model.Document, error)

	// Review fails with ErrDocumentNotFound for an unknown id and
	// ErrInvalidStatus unless newStatus is approved or rejected. On success
	// the status change and its history entry commit atomically and a
	// detached notification is dispatched.
	Review(ctx context.Context, documentID, newStatus string) (*ReviewResult, error)

	// DownloadURL returns a presigned URL for the document's bytes. Only the
	// owner or an admin may fetch it.
	DownloadURL(ctx context.Context, documentID string, caller *model.User) (string, error)

	// History returns the status audit trail of a document.
	History(ctx context.Context, documentID string) ([]model.StatusHistoryEntry, error)
}

type documentService struct {
	store    storage.Storage
	repo     repository.DocumentRepository
	notifier notify.Notifier
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, notifier notify.Notifier) DocumentService {
	return &documentService{store: store, repo: repo, notifier: notifier}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, ownerID string) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if _, ok := allowedContentTypes[contentType]; !ok {
		return nil, ErrInvalidFileType
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	// Object key is UUID + original extension; the client's filename is kept
	// as metadata and on the document row only.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join(storagePrefix, uuid.New().String()+ext))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			metadataKeyOrg: originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	doc := &model.Document{
		ID:          uuid.New().String(),
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		Size:        objInfo.Size,
		ContentType: contentType,
		Status:      model.StatusPending,
		UploadedBy:  ownerID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) ListOwn(ctx context.Context, ownerID string) ([]model.Document, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *documentService) ListAll(ctx context.Context, q ListQuery) ([]model.Document, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}

	f := repository.DocumentFilter{
		Status: q.Status,
		Search: q.Search,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}

	// The date filter only applies when both bounds are present; a single
	// bound is skipped without error. With both present, either failing to
	// parse is an error.
	if q.StartDate != "" && q.EndDate != "" {
		start, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		end, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		f.From = start
		// Inclusive of the whole end day.
		f.To = end.AddDate(0, 0, 1)
	}

	return s.repo.List(ctx, f)
}

func (s *documentService) Review(ctx context.Context, documentID, newStatus string) (*ReviewResult, error) {
	if _, err := s.repo.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	if !model.ValidReviewStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	doc, err := s.repo.ReviewStatus(ctx, documentID, newStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}

	// Fire-and-forget: the notification runs detached from the request and
	// its failure is logged, never surfaced or retried.
	go func(id, status string) {
		if err := s.notifier.ReviewCompleted(context.Background(), id, status); err != nil {
			log.Printf("review notification failed for document %s: %v", id, err)
		}
	}(doc.ID, newStatus)

	return &ReviewResult{
		Message:    fmt.Sprintf(reviewMessage, newStatus),
		DocumentID: doc.ID,
	}, nil
}

func (s *documentService) DownloadURL(ctx context.Context, documentID string, caller *model.User) (string, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrDocumentNotFound
		}
		return "", err
	}
	if caller == nil || (!caller.IsAdmin() && doc.UploadedBy != caller.ID) {
		return "", ErrNotDocumentOwner
	}
	return s.store.PresignGet(ctx, doc.StoragePath, presignExpiry)
}

func (s *documentService) History(ctx context.Context, documentID string) ([]model.StatusHistoryEntry, error) {
	if _, err := s.repo.FindByID(ctx, documentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return s.repo.HistoryByDocument(ctx, documentID)
}

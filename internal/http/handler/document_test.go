package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docmanage/internal/http/middleware"
	"docmanage/internal/model"
	"docmanage/internal/service"
	"docmanage/internal/service/mocks"
)

// withUser injects an already resolved identity, standing in for the auth
// middleware.
func withUser(u *model.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.CurrentUserLocalKey, u)
		return c.Next()
	}
}

func multipartFile(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	owner := &model.User{ID: "u-1", Role: model.RoleUser}

	t.Run("stores file and returns 201", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("Upload", mock.Anything, mock.Anything, "report.pdf", "application/pdf", int64(9), "u-1").
			Return(&model.Document{ID: "d-1", Filename: "report.pdf", Status: model.StatusPending}, nil)

		app := newTestApp()
		app.Post("/documents/upload", withUser(owner), UploadDocument(svc))

		body, ct := multipartFile(t, "file", "report.pdf", "application/pdf", []byte("%PDF-1.4\n"))
		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var doc model.Document
		decodeBody(t, resp, &doc)
		assert.Equal(t, "pending", doc.Status)
		svc.AssertExpectations(t)
	})

	t.Run("missing file part returns 422", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)

		app := newTestApp()
		app.Post("/documents/upload", withUser(owner), UploadDocument(svc))

		body, ct := multipartFile(t, "attachment", "report.pdf", "application/pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var ve validationResponse
		decodeBody(t, resp, &ve)
		require.Len(t, ve.Details, 1)
		assert.Equal(t, "file", ve.Details[0].Field)
	})

	t.Run("rejected content type maps to 400", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("Upload", mock.Anything, mock.Anything, "notes.txt", "text/plain", mock.Anything, "u-1").
			Return(nil, service.ErrInvalidFileType)

		app := newTestApp()
		app.Post("/documents/upload", withUser(owner), UploadDocument(svc))

		body, ct := multipartFile(t, "file", "notes.txt", "text/plain", []byte("hello"))
		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var er errorResponse
		decodeBody(t, resp, &er)
		assert.Equal(t, "Invalid file type", er.Error)
	})

	t.Run("no identity returns 401", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)

		app := newTestApp()
		app.Post("/documents/upload", UploadDocument(svc))

		body, ct := multipartFile(t, "file", "report.pdf", "application/pdf", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/documents/upload", body)
		req.Header.Set("Content-Type", ct)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestMyDocuments(t *testing.T) {
	owner := &model.User{ID: "u-1", Role: model.RoleUser}

	svc := new(mocks.MockDocumentService)
	svc.On("ListOwn", mock.Anything, "u-1").Return([]model.Document{
		{ID: "d-2", Filename: "b.pdf"},
		{ID: "d-1", Filename: "a.pdf"},
	}, nil)

	app := newTestApp()
	app.Get("/documents/my", withUser(owner), MyDocuments(svc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/my", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var docs []model.Document
	decodeBody(t, resp, &docs)
	require.Len(t, docs, 2)
	assert.Equal(t, "d-2", docs[0].ID)
	svc.AssertExpectations(t)
}

func TestListAllDocuments(t *testing.T) {
	admin := &model.User{ID: "a-1", Role: model.RoleAdmin}

	t.Run("forwards filters and defaults pagination", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("ListAll", mock.Anything, service.ListQuery{
			Status: "approved",
			Search: "invoice",
			Page:   1,
			Limit:  5,
		}).Return([]model.Document{}, nil)

		app := newTestApp()
		app.Get("/documents/all", withUser(admin), ListAllDocuments(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/all?status=approved&search=invoice", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("passes explicit pagination and raw dates", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("ListAll", mock.Anything, service.ListQuery{
			StartDate: "2026-01-01",
			EndDate:   "2026-01-31",
			Page:      3,
			Limit:     20,
		}).Return([]model.Document{}, nil)

		app := newTestApp()
		app.Get("/documents/all", withUser(admin), ListAllDocuments(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/documents/all?page=3&limit=20&start_date=2026-01-01&end_date=2026-01-31", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("non-positive page and limit return 422", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)

		app := newTestApp()
		app.Get("/documents/all", withUser(admin), ListAllDocuments(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/all?page=0&limit=banana", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		var ve validationResponse
		decodeBody(t, resp, &ve)
		fields := make([]string, 0, len(ve.Details))
		for _, d := range ve.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"page", "limit"}, fields)
		svc.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything)
	})

	t.Run("bad date format maps to 400", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("ListAll", mock.Anything, mock.Anything).Return(nil, service.ErrInvalidDate)

		app := newTestApp()
		app.Get("/documents/all", withUser(admin), ListAllDocuments(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet,
			"/documents/all?start_date=01-01-2026&end_date=2026-01-31", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var er errorResponse
		decodeBody(t, resp, &er)
		assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", er.Error)
	})
}

func TestReviewDocument(t *testing.T) {
	docID := "2b43b89e-8f0e-4c07-9c3a-5a4de41c9c6f"

	t.Run("approves document", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("Review", mock.Anything, docID, "approved").
			Return(&service.ReviewResult{Message: "Document approved successfully", DocumentID: docID}, nil)

		app := newTestApp()
		app.Put("/documents/review/:id", ReviewDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodPut,
			"/documents/review/"+docID+"?new_status=approved", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var res service.ReviewResult
		decodeBody(t, resp, &res)
		assert.Equal(t, "Document approved successfully", res.Message)
		assert.Equal(t, docID, res.DocumentID)
		svc.AssertExpectations(t)
	})

	t.Run("non-uuid id returns 422", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)

		app := newTestApp()
		app.Put("/documents/review/:id", ReviewDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodPut,
			"/documents/review/not-a-uuid?new_status=approved", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		svc.AssertNotCalled(t, "Review", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing new_status returns 422", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)

		app := newTestApp()
		app.Put("/documents/review/:id", ReviewDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/documents/review/"+docID, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("unknown document maps to 404", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("Review", mock.Anything, docID, "approved").Return(nil, service.ErrDocumentNotFound)

		app := newTestApp()
		app.Put("/documents/review/:id", ReviewDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodPut,
			"/documents/review/"+docID+"?new_status=approved", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var er errorResponse
		decodeBody(t, resp, &er)
		assert.Equal(t, "Document not found", er.Error)
	})

	t.Run("unsupported status maps to 400", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("Review", mock.Anything, docID, "archived").Return(nil, service.ErrInvalidStatus)

		app := newTestApp()
		app.Put("/documents/review/:id", ReviewDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodPut,
			"/documents/review/"+docID+"?new_status=archived", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDownloadDocument(t *testing.T) {
	docID := "2b43b89e-8f0e-4c07-9c3a-5a4de41c9c6f"
	owner := &model.User{ID: "u-1", Role: model.RoleUser}

	t.Run("returns presigned url", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("DownloadURL", mock.Anything, docID, owner).Return("https://minio.local/presigned", nil)

		app := newTestApp()
		app.Get("/documents/:id/download", withUser(owner), DownloadDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+docID+"/download", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "https://minio.local/presigned", body["download_url"])
	})

	t.Run("foreign document maps to 403", func(t *testing.T) {
		svc := new(mocks.MockDocumentService)
		svc.On("DownloadURL", mock.Anything, docID, owner).Return("", service.ErrNotDocumentOwner)

		app := newTestApp()
		app.Get("/documents/:id/download", withUser(owner), DownloadDocument(svc))

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+docID+"/download", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestDocumentHistory(t *testing.T) {
	docID := "2b43b89e-8f0e-4c07-9c3a-5a4de41c9c6f"

	svc := new(mocks.MockDocumentService)
	svc.On("History", mock.Anything, docID).Return([]model.StatusHistoryEntry{
		{ID: "h-1", DocumentID: docID, OldStatus: "pending", NewStatus: "approved", ChangedAt: time.Now()},
	}, nil)

	app := newTestApp()
	app.Get("/documents/:id/history", DocumentHistory(svc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+docID+"/history", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []model.StatusHistoryEntry
	decodeBody(t, resp, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "approved", entries[0].NewStatus)
	svc.AssertExpectations(t)
}

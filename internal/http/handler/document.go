package handler

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docmanage/internal/http/middleware"
	"docmanage/internal/service"
)

// contentTypeOf returns the declared type of an uploaded part, defaulting to
// octet-stream so the service's allow-list rejects undeclared uploads.
func contentTypeOf(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// UploadDocument accepts a multipart "file" part and registers it as a
// pending document owned by the caller.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := middleware.CurrentUser(c)
		if caller == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeValidationError(c, []fieldError{{Field: "file", Message: "file is required"}})
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		defer f.Close()

		doc, err := svc.Upload(c.UserContext(), f, fh.Filename, contentTypeOf(fh), fh.Size, caller.ID)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// MyDocuments lists every document owned by the caller, newest first.
func MyDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := middleware.CurrentUser(c)
		if caller == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		docs, err := svc.ListOwn(c.UserContext(), caller.ID)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(docs)
	}
}

// positiveQueryInt parses an optional positive integer query parameter.
func positiveQueryInt(c *fiber.Ctx, name string, def int) (int, *fieldError) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &fieldError{Field: name, Message: name + " must be a positive integer"}
	}
	return n, nil
}

// ListAllDocuments is the admin listing with status, filename and date
// filters plus page/limit pagination.
func ListAllDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var details []fieldError
		page, fe := positiveQueryInt(c, "page", 1)
		if fe != nil {
			details = append(details, *fe)
		}
		limit, fe := positiveQueryInt(c, "limit", 5)
		if fe != nil {
			details = append(details, *fe)
		}
		if len(details) > 0 {
			return writeValidationError(c, details)
		}

		docs, err := svc.ListAll(c.UserContext(), service.ListQuery{
			Status:    c.Query("status"),
			Search:    c.Query("search"),
			StartDate: c.Query("start_date"),
			EndDate:   c.Query("end_date"),
			Page:      page,
			Limit:     limit,
		})
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(docs)
	}
}

// documentIDParam validates the :id path segment as a UUID.
func documentIDParam(c *fiber.Ctx) (string, *fieldError) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", &fieldError{Field: "document_id", Message: "document_id must be a valid UUID"}
	}
	return id, nil
}

// ReviewDocument transitions a document to approved or rejected and records
// the change in its history.
func ReviewDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var details []fieldError
		id, fe := documentIDParam(c)
		if fe != nil {
			details = append(details, *fe)
		}
		newStatus := strings.TrimSpace(c.Query("new_status"))
		if newStatus == "" {
			details = append(details, fieldError{Field: "new_status", Message: "new_status is required"})
		}
		if len(details) > 0 {
			return writeValidationError(c, details)
		}

		res, err := svc.Review(c.UserContext(), id, newStatus)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(res)
	}
}

// DownloadDocument returns a presigned URL for the document's bytes. Owners
// and admins only.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := middleware.CurrentUser(c)
		if caller == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		id, fe := documentIDParam(c)
		if fe != nil {
			return writeValidationError(c, []fieldError{*fe})
		}

		url, err := svc.DownloadURL(c.UserContext(), id, caller)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(fiber.Map{"download_url": url})
	}
}

// DocumentHistory returns the status audit trail of a document.
func DocumentHistory(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, fe := documentIDParam(c)
		if fe != nil {
			return writeValidationError(c, []fieldError{*fe})
		}

		entries, err := svc.History(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(entries)
	}
}

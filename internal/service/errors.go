package service

import "errors"

// Domain errors raised at the point of detection. The HTTP layer translates
// them into the uniform error envelope; nothing is retried automatically.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrInvalidStatus      = errors.New("invalid review status")
	ErrInvalidDate        = errors.New("invalid date format")
	ErrNotDocumentOwner   = errors.New("not allowed to access this document")
	ErrReaderNil          = errors.New("reader is nil")
)

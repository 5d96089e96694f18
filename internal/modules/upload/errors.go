package upload

import "skillbridge/internal/pkg/apperr"

var (
	ErrNoFile          = apperr.Validation("NO_FILE", "No file provided")
	ErrEmptyFile       = apperr.Validation("EMPTY_FILE", "File is empty")
	ErrFileTooLarge    = apperr.Validation("FILE_TOO_LARGE", "File exceeds maximum allowed size")
	ErrInvalidMimeType = apperr.Validation("INVALID_FILE_TYPE", "Only JPEG, PNG and WebP images are allowed")
	ErrStorageDisabled = apperr.New(apperr.KindUnavailable, "STORAGE_DISABLED", "File uploads are not available")
)

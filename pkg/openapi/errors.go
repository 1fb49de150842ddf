package openapi

import "errors"

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when the operation has no object request
	// body schema to map.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

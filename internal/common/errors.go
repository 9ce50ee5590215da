package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy of a batch run. Only ErrInvalidInput is fatal before the
// batch starts; the others are isolated to the unit that failed.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrDocumentRead = errors.New("document read failed")
	ErrReportWrite  = errors.New("report write failed")
	ErrRename       = errors.New("rename failed")
)

// Error codes carried by AppError.
const (
	CodeConfig       = "CONFIG_ERROR"
	CodeRules        = "RULES_ERROR"
	CodeDocumentRead = "DOCUMENT_READ"
	CodeReportWrite  = "REPORT_WRITE"
	CodeRename       = "RENAME"
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// ReportWriteError marks err as a report destination failure.
func ReportWriteError(path string, err error) error {
	if err == nil {
		return nil
	}
	return NewAppError(CodeReportWrite, path, errors.Join(ErrReportWrite, err))
}

// IsReportWrite reports whether err is a report destination failure.
func IsReportWrite(err error) bool {
	return errors.Is(err, ErrReportWrite)
}

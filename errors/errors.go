package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định nghĩa mã lỗi
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken   ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken   ErrorCode = "MISSING_TOKEN"
	ErrCodeRevokedToken   ErrorCode = "REVOKED_TOKEN"
	ErrCodeIdentityFailed ErrorCode = "IDENTITY_FAILED"

	// Document errors
	ErrCodeDBError      ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound   ErrorCode = "DB_NOT_FOUND"
	ErrCodeCacheError   ErrorCode = "CACHE_ERROR"
	ErrCodeLoadFailed   ErrorCode = "LOAD_FAILED"
	ErrCodeSaveFailed   ErrorCode = "SAVE_FAILED"
	ErrCodeUnknownItem  ErrorCode = "UNKNOWN_ITEM"
	ErrCodeUnknownPhase ErrorCode = "UNKNOWN_PHASE"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// AppError định nghĩa lỗi của ứng dụng
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError lấy AppError từ error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode kiểm tra err có phải AppError mang mã code không
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidInput     = errors.New("invalid input")
)

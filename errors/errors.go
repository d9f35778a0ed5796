package errors

import (
	"errors"
	"fmt"
)

// ErrorCode định danh loại lỗi phía client
type ErrorCode string

const (
	// Input errors
	ErrCodeValidation       ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeRequiredField    ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat    ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidPassword  ErrorCode = "INVALID_PASSWORD"
	ErrCodePasswordMismatch ErrorCode = "PASSWORD_MISMATCH"

	// Session errors
	ErrCodeAuthRequired ErrorCode = "AUTH_REQUIRED"
	ErrCodeAuthFailed   ErrorCode = "AUTH_FAILED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Booking errors
	ErrCodeNotAvailable     ErrorCode = "NOT_AVAILABLE"
	ErrCodeSubmissionFailed ErrorCode = "SUBMISSION_FAILED"

	// Remote errors
	ErrCodeNetwork  ErrorCode = "NETWORK_ERROR"
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeRemote   ErrorCode = "REMOTE_ERROR"
)

// AppError là lỗi có cấu trúc mà tầng trình bày dùng để hiển thị thông báo
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	// ReturnPath is where the caller should come back after logging in.
	ReturnPath string
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

// Validation tạo lỗi dữ liệu đầu vào, luôn bọc ErrInvalidInput
func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, ErrInvalidInput)
}

// AuthRequired tạo lỗi yêu cầu đăng nhập kèm đường dẫn quay lại
func AuthRequired(message, returnPath string) *AppError {
	e := NewAppError(ErrCodeAuthRequired, message, ErrAuthRequired)
	e.ReturnPath = returnPath
	return e
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

// CodeOf trả về mã lỗi, hoặc chuỗi rỗng nếu err không phải AppError
func CodeOf(err error) ErrorCode {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return ""
}

var (
	// Session errors
	ErrAuthRequired = errors.New("authentication required")
	ErrAuthFailed   = errors.New("authentication failed")
	ErrForbidden    = errors.New("admin privileges required")

	// Booking errors
	ErrNotAvailable     = errors.New("room not available")
	ErrSubmissionFailed = errors.New("booking submission failed")
	ErrBookingNotFound  = errors.New("booking not found")

	// Status errors
	ErrInvalidTransition = errors.New("invalid status transition")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
	ErrInvalidFormat   = errors.New("invalid format")

	// Remote errors
	ErrNetwork = errors.New("network error")
)

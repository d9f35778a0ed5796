package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ErrTransport đánh dấu lỗi không nhận được response (mạng, timeout, huỷ)
var ErrTransport = errors.New("transport failure")

// HTTPError là response không thành công từ backend
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Text())
}

func newHTTPError(status int, body []byte) *HTTPError {
	e := &HTTPError{Status: status, Body: body}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Message = payload.Message
		if e.Message == "" {
			e.Message = payload.Error
		}
	}
	if e.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" && !strings.HasPrefix(text, "{") && len(text) < 200 {
			e.Message = text
		}
	}
	return e
}

// Text trả về message của backend, hoặc status text khi body không có message
func (e *HTTPError) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// AsHTTPError trả về HTTPError nếu err là lỗi HTTP
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// StatusOf trả về HTTP status, 0 nếu không phải lỗi HTTP
func StatusOf(err error) int {
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr.Status
	}
	return 0
}

// IsUnauthorized kiểm tra lỗi 401
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// IsTransport kiểm tra lỗi mạng
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsTimeout kiểm tra lỗi hết thời gian chờ
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// MessageOf trả về message của backend nếu có, ngược lại là err.Error()
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr.Text()
	}
	return err.Error()
}

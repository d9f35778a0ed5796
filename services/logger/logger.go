package logger

import (
	"io"
	"log"
	"strings"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	SilentLevel
)

// ParseLevel đọc mức log từ chuỗi cấu hình, mặc định là InfoLevel
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "silent", "off":
		return SilentLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// DefaultLogger implement Logger interface sử dụng log package
type DefaultLogger struct {
	level Level
	out   *log.Logger
}

// NewDefaultLogger tạo một instance mới của DefaultLogger ghi ra log mặc định
func NewDefaultLogger(level Level) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.Default(),
	}
}

// NewWriterLogger ghi log ra writer tuỳ chọn (file, buffer trong test)
func NewWriterLogger(level Level, w io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level: level,
		out:   log.New(w, "", log.Ldate|log.Ltime),
	}
}

// Nop trả về logger bỏ qua mọi thông điệp
func Nop() *DefaultLogger {
	return &DefaultLogger{level: SilentLevel, out: log.New(io.Discard, "", 0)}
}

// Info log thông tin
func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		l.out.Printf("[INFO] "+format, v...)
	}
}

// Warn log cảnh báo
func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	if l.level <= WarnLevel {
		l.out.Printf("[WARN] "+format, v...)
	}
}

// Error log lỗi
func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		l.out.Printf("[ERROR] "+format, v...)
	}
}

// Debug log debug
func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		l.out.Printf("[DEBUG] "+format, v...)
	}
}

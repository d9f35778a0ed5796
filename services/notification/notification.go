package notification

import (
	"fmt"
	"io"
	"sync"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"

	"raynott/booking"
	"raynott/errors"
	"raynott/models"
)

// Notifier hiển thị thông báo cho người dùng (tương đương toast)
type Notifier interface {
	Success(message string)
	Warn(message string)
	Error(message string)
}

// WriterNotifier ghi thông báo ra terminal
type WriterNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{out: w}
}

func (n *WriterNotifier) Success(message string) { n.write("✔", message) }
func (n *WriterNotifier) Warn(message string)    { n.write("!", message) }
func (n *WriterNotifier) Error(message string)   { n.write("✘", message) }

func (n *WriterNotifier) write(symbol, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "%s %s\n", symbol, message)
}

// Present chuyển kết quả có cấu trúc (verdict, lỗi, booking) thành thông báo
func Present(n Notifier, outcome interface{}) {
	switch o := outcome.(type) {
	case nil:
		return
	case booking.Verdict:
		presentVerdict(n, o)
	case *models.Booking:
		if o != nil {
			n.Success(fmt.Sprintf("Booking Confirmed! Your room has been successfully booked (%s)", o.ID))
		}
	case error:
		presentError(n, o)
	}
}

func presentVerdict(n Notifier, v booking.Verdict) {
	switch v.State {
	case booking.Available:
		n.Success("Room is available for the selected dates")
	case booking.Unavailable:
		n.Error("Room not available for selected dates")
	case booking.Unknown:
		if v.Reason == booking.ReasonServer {
			n.Warn("Availability check temporarily unavailable")
		}
	}
}

func presentError(n Notifier, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		n.Error(err.Error())
		return
	}
	switch appErr.Code {
	case errors.ErrCodeAuthRequired:
		msg := appErr.Message
		if appErr.ReturnPath != "" {
			msg = fmt.Sprintf("%s (return to %s after login)", msg, appErr.ReturnPath)
		}
		n.Warn(msg)
	case errors.ErrCodeNotAvailable:
		n.Error(appErr.Message)
	case errors.ErrCodeNetwork:
		n.Error("Network error: " + appErr.Message)
	default:
		n.Error(appErr.Message)
	}
}

// Service phát thông điệp tới các client đang kết nối
type Service interface {
	SendMessage(message string) error
}

type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Event là thông điệp JSON về thay đổi booking gửi qua websocket
type Event struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
	RoomID    string `json:"roomId,omitempty"`
	Status    string `json:"status,omitempty"`
}

type MessageBuilder struct {
	event Event
}

func NewMessageBuilder(eventType string, b models.Booking) *MessageBuilder {
	return &MessageBuilder{event: Event{
		Type:      eventType,
		BookingID: b.ID,
		RoomID:    b.Room.ID,
		Status:    b.Status,
	}}
}

func (b *MessageBuilder) Build() string {
	raw, err := json.Marshal(b.event)
	if err != nil {
		return fmt.Sprintf(`{"type":%q,"bookingId":%q}`, b.event.Type, b.event.BookingID)
	}
	return string(raw)
}

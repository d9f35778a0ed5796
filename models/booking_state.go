package models

import (
	"fmt"
	"time"

	"raynott/constants"
)

// BookingState định nghĩa interface cho các trạng thái booking
type BookingState interface {
	Confirm() error
	Cancel() error
	Name() string
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm() error { return nil }
func (s *PendingState) Cancel() error  { return nil }
func (s *PendingState) Name() string   { return constants.BookingStatusPending }

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm() error {
	return fmt.Errorf("booking already confirmed")
}

func (s *ConfirmedState) Cancel() error { return nil }
func (s *ConfirmedState) Name() string  { return constants.BookingStatusConfirmed }

// CancelledState trạng thái đã huỷ, không thể chuyển tiếp
type CancelledState struct{}

func (s *CancelledState) Confirm() error {
	return fmt.Errorf("cannot confirm cancelled booking")
}

func (s *CancelledState) Cancel() error {
	return fmt.Errorf("booking already cancelled")
}

func (s *CancelledState) Name() string { return constants.BookingStatusCancelled }

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}

// Transition kiểm tra việc chuyển trạng thái từ -> to
func Transition(from, to string) error {
	state := GetBookingState(from)
	switch to {
	case constants.BookingStatusConfirmed:
		return state.Confirm()
	case constants.BookingStatusCancelled:
		return state.Cancel()
	case constants.BookingStatusPending:
		if state.Name() != constants.BookingStatusPending {
			return fmt.Errorf("cannot move %s booking back to pending", state.Name())
		}
		return nil
	default:
		return fmt.Errorf("unknown booking status: %q", to)
	}
}

// CanCancel: booking chưa huỷ và (với khách hàng) chưa tới ngày nhận phòng
func CanCancel(b Booking, now time.Time, admin bool) bool {
	if b.IsCancelled() {
		return false
	}
	if admin {
		return true
	}
	return b.IsUpcoming(now)
}

package booking

import (
	"context"
	"fmt"
	"strings"

	"raynott/api"
	"raynott/builders"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
	"raynott/services/logger"
)

// SessionGuard là phần của session store mà luồng đặt phòng cần
type SessionGuard interface {
	IsAuthenticated() bool
	Logout()
}

// BookingCreator gọi POST /bookings
type BookingCreator interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error)
}

// Flow gửi yêu cầu đặt phòng và phân loại kết quả. Không tự retry.
type Flow struct {
	session SessionGuard
	creator BookingCreator
	log     logger.Logger
}

func NewFlow(session SessionGuard, creator BookingCreator, log logger.Logger) *Flow {
	if log == nil {
		log = logger.Nop()
	}
	return &Flow{session: session, creator: creator, log: log}
}

// Submit kiểm tra điều kiện theo thứ tự (đăng nhập, ngày, số khách, phòng trống)
// rồi gọi đúng một lần POST /bookings.
func (f *Flow) Submit(ctx context.Context, r *Resolver) (*models.Booking, error) {
	room := r.Room()
	returnPath := r.ReturnPath()

	if !f.session.IsAuthenticated() {
		return nil, errors.AuthRequired("Please login to book a room", returnPath)
	}

	intent := r.Intent()
	if !intent.Range.Valid() {
		return nil, errors.Validation(intent.Range.Reason)
	}
	if intent.Guests > room.MaxGuests() {
		return nil, errors.Validation("guests exceeds capacity")
	}
	if intent.Verdict.Blocking() {
		return nil, errors.NewAppError(errors.ErrCodeNotAvailable, "This room is no longer available for the selected dates", errors.ErrNotAvailable)
	}

	req, err := builders.NewBookingBuilder().
		WithHotel(intent.HotelID).
		WithRoom(intent.RoomID).
		WithDates(intent.Range.CheckIn, intent.Range.CheckOut).
		WithGuests(intent.Guests).
		Build()
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeValidation, err.Error(), errors.ErrInvalidInput)
	}

	if intent.Verdict.State == Unknown {
		f.log.Warn("Đặt phòng %s khi chưa xác nhận được phòng trống (%s)", intent.RoomID, intent.Verdict.Reason)
	}

	created, err := f.creator.Create(ctx, req)
	if err != nil {
		return nil, f.classify(err, r, returnPath)
	}
	if created == nil {
		return nil, errors.NewAppError(errors.ErrCodeSubmissionFailed, "Booking failed. Please try again.", errors.ErrSubmissionFailed)
	}

	f.log.Info("Đặt phòng thành công %s (%s %s..%s, %d khách)", created.ID, intent.RoomID, req.StartDate, req.EndDate, req.Guests)
	return created, nil
}

func (f *Flow) classify(err error, r *Resolver, returnPath string) error {
	if api.IsUnauthorized(err) {
		f.log.Warn("Phiên đăng nhập hết hạn khi đặt phòng, đăng xuất")
		f.session.Logout()
		return errors.AuthRequired("Your session has expired. Please login again.", returnPath)
	}

	if httpErr, ok := api.AsHTTPError(err); ok {
		if isUnavailableMessage(httpErr.Message) {
			r.MarkUnavailable()
			return errors.NewAppError(errors.ErrCodeNotAvailable, httpErr.Message, errors.ErrNotAvailable)
		}
		msg := httpErr.Message
		if msg == "" {
			msg = "Booking failed. Please try again."
		}
		f.log.Error("Đặt phòng thất bại (%d): %s", httpErr.Status, msg)
		return errors.NewAppError(errors.ErrCodeSubmissionFailed, msg, fmt.Errorf("%w: %w", errors.ErrSubmissionFailed, err))
	}

	if api.IsTransport(err) {
		f.log.Error("Không gửi được yêu cầu đặt phòng: %v", err)
		return errors.NewAppError(errors.ErrCodeSubmissionFailed, "Unable to reach the server. Please try again.", fmt.Errorf("%w: %w", errors.ErrSubmissionFailed, err))
	}

	f.log.Error("Đặt phòng thất bại: %v", err)
	return errors.NewAppError(errors.ErrCodeSubmissionFailed, err.Error(), fmt.Errorf("%w: %w", errors.ErrSubmissionFailed, err))
}

func isUnavailableMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "not available") || strings.Contains(lower, "unavailable")
}

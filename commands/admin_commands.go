package commands

import (
	"context"
	"fmt"
	"net/http"

	"raynott/api"
	"raynott/clock"
	"raynott/errors"
	"raynott/models"
	"raynott/services"
	"raynott/services/logger"
)

// AdminCommand định nghĩa interface cho các command quản trị
type AdminCommand interface {
	Execute(ctx context.Context) error
}

type hotelDeleter interface {
	Delete(ctx context.Context, id string) error
}

type roomDeleter interface {
	Delete(ctx context.Context, id string) error
}

type userDeleter interface {
	DeleteUser(ctx context.Context, id string) error
}

type bookingUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	Cancel(ctx context.Context, id string) error
}

// base giữ phần chung: session, logger, đường dẫn quay lại sau khi đăng nhập
type base struct {
	session    services.AdminSession
	log        logger.Logger
	returnPath string
}

func newBase(session services.AdminSession, log logger.Logger, returnPath string) base {
	if log == nil {
		log = logger.Nop()
	}
	return base{session: session, log: log, returnPath: returnPath}
}

// remote chuyển lỗi từ backend thành AppError; 401 thì đăng xuất
func (b base) remote(action string, err error) error {
	if b.session.HandleUnauthorized(err) {
		return errors.AuthRequired("Session expired. Please login again.", b.returnPath)
	}
	b.log.Error("%s thất bại: %v", action, err)
	switch {
	case api.IsTransport(err):
		return errors.NewAppError(errors.ErrCodeNetwork, api.MessageOf(err), err)
	case api.StatusOf(err) == http.StatusForbidden:
		return errors.NewAppError(errors.ErrCodeForbidden, api.MessageOf(err), fmt.Errorf("%w: %w", errors.ErrForbidden, err))
	case api.StatusOf(err) == http.StatusNotFound:
		return errors.NewAppError(errors.ErrCodeNotFound, api.MessageOf(err), err)
	default:
		return errors.NewAppError(errors.ErrCodeRemote, api.MessageOf(err), err)
	}
}

// DeleteHotelCommand command để xóa khách sạn
type DeleteHotelCommand struct {
	base
	hotelID string
	hotels  hotelDeleter
}

func NewDeleteHotelCommand(session services.AdminSession, hotels hotelDeleter, hotelID string, log logger.Logger) *DeleteHotelCommand {
	return &DeleteHotelCommand{base: newBase(session, log, "/admin/hotels"), hotelID: hotelID, hotels: hotels}
}

func (c *DeleteHotelCommand) Execute(ctx context.Context) error {
	if err := services.RequireAdmin(c.session, c.returnPath); err != nil {
		return err
	}
	if err := c.hotels.Delete(ctx, c.hotelID); err != nil {
		return c.remote("Xoá khách sạn "+c.hotelID, err)
	}
	c.log.Info("Đã xoá khách sạn %s", c.hotelID)
	return nil
}

// DeleteRoomCommand command để xóa phòng
type DeleteRoomCommand struct {
	base
	roomID string
	rooms  roomDeleter
}

func NewDeleteRoomCommand(session services.AdminSession, rooms roomDeleter, roomID string, log logger.Logger) *DeleteRoomCommand {
	return &DeleteRoomCommand{base: newBase(session, log, "/admin/rooms"), roomID: roomID, rooms: rooms}
}

func (c *DeleteRoomCommand) Execute(ctx context.Context) error {
	if err := services.RequireAdmin(c.session, c.returnPath); err != nil {
		return err
	}
	if err := c.rooms.Delete(ctx, c.roomID); err != nil {
		return c.remote("Xoá phòng "+c.roomID, err)
	}
	c.log.Info("Đã xoá phòng %s", c.roomID)
	return nil
}

// DeleteUserCommand command để xóa người dùng
type DeleteUserCommand struct {
	base
	userID string
	users  userDeleter
}

func NewDeleteUserCommand(session services.AdminSession, users userDeleter, userID string, log logger.Logger) *DeleteUserCommand {
	return &DeleteUserCommand{base: newBase(session, log, "/admin/users"), userID: userID, users: users}
}

func (c *DeleteUserCommand) Execute(ctx context.Context) error {
	if err := services.RequireAdmin(c.session, c.returnPath); err != nil {
		return err
	}
	if err := c.users.DeleteUser(ctx, c.userID); err != nil {
		return c.remote("Xoá người dùng "+c.userID, err)
	}
	c.log.Info("Đã xoá người dùng %s", c.userID)
	return nil
}

// UpdateBookingStatusCommand đổi trạng thái booking, kiểm tra chuyển trạng thái trước khi gọi mạng
type UpdateBookingStatusCommand struct {
	base
	booking  models.Booking
	status   string
	bookings bookingUpdater

	// Result là booking backend trả về sau khi cập nhật
	Result *models.Booking
}

func NewUpdateBookingStatusCommand(session services.AdminSession, bookings bookingUpdater, b models.Booking, status string, log logger.Logger) *UpdateBookingStatusCommand {
	return &UpdateBookingStatusCommand{base: newBase(session, log, "/admin/bookings"), booking: b, status: status, bookings: bookings}
}

func (c *UpdateBookingStatusCommand) Execute(ctx context.Context) error {
	if err := services.RequireAdmin(c.session, c.returnPath); err != nil {
		return err
	}
	if err := models.Transition(c.booking.Status, c.status); err != nil {
		return errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), fmt.Errorf("%w: %w", errors.ErrInvalidTransition, err))
	}
	updated, err := c.bookings.UpdateStatus(ctx, c.booking.ID, c.status)
	if err != nil {
		return c.remote("Cập nhật booking "+c.booking.ID, err)
	}
	c.Result = updated
	c.log.Info("Booking %s: %s -> %s", c.booking.ID, c.booking.Status, c.status)
	return nil
}

// CancelBookingCommand huỷ booking. Admin huỷ được mọi booking chưa huỷ,
// khách hàng chỉ huỷ được booking sắp tới của mình.
type CancelBookingCommand struct {
	base
	booking  models.Booking
	bookings bookingUpdater
	clock    clock.Clock
	asAdmin  bool
}

// NewCancelBookingCommand dùng cho trang quản trị
func NewCancelBookingCommand(session services.AdminSession, bookings bookingUpdater, b models.Booking, c clock.Clock, log logger.Logger) *CancelBookingCommand {
	return &CancelBookingCommand{base: newBase(session, log, "/admin/bookings"), booking: b, bookings: bookings, clock: c, asAdmin: true}
}

// NewCancelOwnBookingCommand dùng cho "My bookings"
func NewCancelOwnBookingCommand(session services.AdminSession, bookings bookingUpdater, b models.Booking, c clock.Clock, log logger.Logger) *CancelBookingCommand {
	return &CancelBookingCommand{base: newBase(session, log, "/my-bookings"), booking: b, bookings: bookings, clock: c}
}

func (c *CancelBookingCommand) Execute(ctx context.Context) error {
	if c.asAdmin {
		if err := services.RequireAdmin(c.session, c.returnPath); err != nil {
			return err
		}
	} else if !c.session.IsAuthenticated() {
		return errors.AuthRequired("Please login to continue", c.returnPath)
	}

	if c.clock == nil {
		c.clock = clock.NewSystem()
	}
	if !models.CanCancel(c.booking, c.clock.Now(), c.asAdmin) {
		msg := fmt.Sprintf("booking %s cannot be cancelled", c.booking.ID)
		return errors.NewAppError(errors.ErrCodeInvalidStatus, msg, errors.ErrInvalidTransition)
	}
	if err := c.bookings.Cancel(ctx, c.booking.ID); err != nil {
		return c.remote("Huỷ booking "+c.booking.ID, err)
	}
	c.log.Info("Đã huỷ booking %s", c.booking.ID)
	return nil
}

package services

import (
	"context"
	"fmt"
	"sync"

	"raynott/constants"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
	"raynott/services/logger"
)

// AdminSession là phần session mà các thao tác quản trị cần
type AdminSession interface {
	IsAuthenticated() bool
	IsAdmin() bool
	HandleUnauthorized(err error) bool
}

type bookingLister interface {
	All(ctx context.Context) ([]models.Booking, error)
}

type userLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

type hotelLister interface {
	List(ctx context.Context) ([]models.Hotel, error)
}

// DashboardService tổng hợp số liệu cho trang quản trị
type DashboardService struct {
	session  AdminSession
	bookings bookingLister
	users    userLister
	hotels   hotelLister
	logger   logger.Logger
}

type DashboardServiceOptions struct {
	Session  AdminSession
	Bookings bookingLister
	Users    userLister
	Hotels   hotelLister
	Logger   logger.Logger
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &DashboardService{
		session:  opts.Session,
		bookings: opts.Bookings,
		users:    opts.Users,
		hotels:   opts.Hotels,
		logger:   opts.Logger,
	}
}

// RequireAdmin trả AUTH_REQUIRED khi chưa đăng nhập, FORBIDDEN khi không phải admin
func RequireAdmin(session AdminSession, returnPath string) error {
	if !session.IsAuthenticated() {
		return errors.AuthRequired("Please login to continue", returnPath)
	}
	if !session.IsAdmin() {
		return errors.NewAppError(errors.ErrCodeForbidden, "Access denied. Admin privileges required.", errors.ErrForbidden)
	}
	return nil
}

// Stats lấy song song bookings, users, hotels rồi tính tổng
func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	if err := RequireAdmin(s.session, "/admin"); err != nil {
		return nil, err
	}

	var (
		wg       sync.WaitGroup
		bookings []models.Booking
		users    []models.User
		hotels   []models.Hotel
		errs     = make([]error, 3)
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		bookings, errs[0] = s.bookings.All(ctx)
	}()
	go func() {
		defer wg.Done()
		users, errs[1] = s.users.ListUsers(ctx)
	}()
	go func() {
		defer wg.Done()
		hotels, errs[2] = s.hotels.List(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		if s.session.HandleUnauthorized(err) {
			return nil, errors.AuthRequired("Access denied. Admin privileges required.", "/admin")
		}
		s.logger.Error("Lỗi khi lấy số liệu dashboard: %v", err)
		return nil, errors.NewAppError(errors.ErrCodeRemote, "Failed to fetch dashboard stats", fmt.Errorf("dashboard: %w", err))
	}

	stats := &dto.DashboardStats{
		TotalBookings: len(bookings),
		TotalUsers:    len(users),
		TotalHotels:   len(hotels),
	}
	for _, b := range bookings {
		stats.TotalRevenue += b.TotalPrice
		switch b.Status {
		case constants.BookingStatusPending:
			stats.PendingBookings++
		case constants.BookingStatusConfirmed:
			stats.ConfirmedBookings++
		case constants.BookingStatusCancelled:
			stats.CancelledBookings++
		}
	}
	s.logger.Info("Dashboard: %d bookings, %d users, %d hotels", stats.TotalBookings, stats.TotalUsers, stats.TotalHotels)
	return stats, nil
}

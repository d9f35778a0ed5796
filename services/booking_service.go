package services

import (
	"context"
	"net/url"
	"sort"

	"raynott/api"
	"raynott/dto"
	"raynott/models"
)

// BookingService bọc /bookings; implement booking.BookingCreator
type BookingService struct {
	client *api.Client
}

func NewBookingService(client *api.Client) *BookingService {
	return &BookingService{client: client}
}

// Create gọi POST /bookings
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := s.client.Post(ctx, "/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Mine trả về booking của user hiện tại, mới nhất (theo ngày nhận phòng) trước
func (s *BookingService) Mine(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.Get(ctx, "/bookings/my", nil, &bookings); err != nil {
		return nil, err
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Start().After(bookings[j].Start())
	})
	return bookings, nil
}

// All (admin)
func (s *BookingService) All(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.client.Get(ctx, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus gọi PUT /bookings/:id/status (admin)
func (s *BookingService) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	var b models.Booking
	if err := s.client.Put(ctx, "/bookings/"+url.PathEscape(id)+"/status", dto.UpdateBookingStatusRequest{Status: status}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// Cancel gọi DELETE /bookings/:id
func (s *BookingService) Cancel(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/bookings/"+url.PathEscape(id), nil)
}

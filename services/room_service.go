package services

import (
	"context"
	"net/url"

	"raynott/api"
	"raynott/dto"
	"raynott/models"
)

// RoomService bọc /rooms; implement booking.AvailabilityChecker
type RoomService struct {
	client *api.Client
	// hotels được báo khi phòng thay đổi để xoá cache danh sách khách sạn (có thể nil)
	hotels *HotelService
}

func NewRoomService(client *api.Client, hotels *HotelService) *RoomService {
	return &RoomService{client: client, hotels: hotels}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.client.Get(ctx, "/rooms", nil, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListByHotel lọc phòng theo khách sạn phía client
func (s *RoomService) ListByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Room
	for _, r := range rooms {
		if r.HotelID() == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	var room models.Room
	if err := s.client.Get(ctx, "/rooms/"+url.PathEscape(id), nil, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) Create(ctx context.Context, req dto.RoomRequest) (*models.Room, error) {
	var room models.Room
	if err := s.client.Post(ctx, "/rooms", req, &room); err != nil {
		return nil, err
	}
	s.touchCatalog(ctx)
	return &room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, req dto.RoomRequest) (*models.Room, error) {
	var room models.Room
	if err := s.client.Put(ctx, "/rooms/"+url.PathEscape(id), req, &room); err != nil {
		return nil, err
	}
	s.touchCatalog(ctx)
	return &room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/rooms/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	s.touchCatalog(ctx)
	return nil
}

// CheckAvailability gọi GET /rooms/:id/availability?checkIn&checkOut
func (s *RoomService) CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (bool, error) {
	q := url.Values{}
	q.Set("checkIn", checkIn)
	q.Set("checkOut", checkOut)
	var resp dto.AvailabilityResponse
	if err := s.client.Get(ctx, "/rooms/"+url.PathEscape(roomID)+"/availability", q, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}

func (s *RoomService) touchCatalog(ctx context.Context) {
	if s.hotels != nil {
		s.hotels.Invalidate(ctx)
	}
}

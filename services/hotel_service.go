package services

import (
	"context"
	"net/url"
	"time"

	"raynott/api"
	"raynott/dto"
	"raynott/models"
	"raynott/services/logger"
)

const (
	hotelsCacheKey         = "raynott:hotels:all"
	DefaultCatalogCacheTTL = 60 * time.Minute
)

// HotelService bọc /hotels, danh sách được cache (cache-aside) khi có Cache
type HotelService struct {
	client *api.Client
	cache  Cache
	ttl    time.Duration
	logger logger.Logger
}

type HotelServiceOptions struct {
	Client *api.Client
	Cache  Cache
	TTL    time.Duration
	Logger logger.Logger
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultCatalogCacheTTL
	}
	return &HotelService{client: opts.Client, cache: opts.Cache, ttl: opts.TTL, logger: opts.Logger}
}

// List lấy tất cả khách sạn: thử cache trước, nếu không có thì gọi API rồi lưu lại
func (s *HotelService) List(ctx context.Context) ([]models.Hotel, error) {
	var hotels []models.Hotel

	if s.cache != nil {
		found, err := s.cache.Get(ctx, hotelsCacheKey, &hotels)
		if err != nil {
			s.logger.Warn("Lỗi khi đọc cache khách sạn: %v", err)
		} else if found {
			return hotels, nil
		}
	}

	if err := s.client.Get(ctx, "/hotels", nil, &hotels); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, hotelsCacheKey, hotels, s.ttl); err != nil {
			s.logger.Warn("Lỗi khi lưu cache khách sạn: %v", err)
		}
	}
	return hotels, nil
}

func (s *HotelService) Get(ctx context.Context, id string) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.client.Get(ctx, "/hotels/"+url.PathEscape(id), nil, &hotel); err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (s *HotelService) Create(ctx context.Context, req dto.HotelRequest) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.client.Post(ctx, "/hotels", req, &hotel); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &hotel, nil
}

func (s *HotelService) Update(ctx context.Context, id string, req dto.HotelRequest) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.client.Put(ctx, "/hotels/"+url.PathEscape(id), req, &hotel); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &hotel, nil
}

func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/hotels/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Invalidate xoá cache danh sách khách sạn (sau khi thêm/sửa/xoá khách sạn hoặc phòng)
func (s *HotelService) Invalidate(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *HotelService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, hotelsCacheKey); err != nil {
		s.logger.Warn("Lỗi khi xoá cache khách sạn: %v", err)
	}
}

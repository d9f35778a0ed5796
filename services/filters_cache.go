package services

import (
	"context"
	"strings"
	"time"

	"raynott/dto"
	"raynott/models"
)

const lastFiltersTTL = 30 * time.Minute

func lastFiltersKey(key string) string {
	return "raynott:last_filters:" + key
}

// SaveLastFilters nhớ bộ lọc gần nhất của một profile trong 30 phút
func SaveLastFilters(ctx context.Context, cache Cache, key string, filters *dto.SearchFilters) error {
	return cache.Set(ctx, lastFiltersKey(key), filters, lastFiltersTTL)
}

// GetLastFilters trả về nil khi chưa có bộ lọc nào được lưu
func GetLastFilters(ctx context.Context, cache Cache, key string) (*dto.SearchFilters, error) {
	var filters dto.SearchFilters
	found, err := cache.Get(ctx, lastFiltersKey(key), &filters)
	if err != nil || !found {
		return nil, err
	}
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, cache Cache, key string) error {
	return cache.Delete(ctx, lastFiltersKey(key))
}

// Merge yêu cầu cũ với yêu cầu mới
func MergeFilters(old *dto.SearchFilters, new *dto.SearchFilters) *dto.SearchFilters {
	if new == nil {
		new = &dto.SearchFilters{}
	}
	if old == nil {
		return new
	}
	new.Name = orString(new.Name, old.Name)
	new.City = orString(new.City, old.City)
	new.Country = orString(new.Country, old.Country)
	new.MinStars = orIntPointer(new.MinStars, old.MinStars)

	// Gộp tiện nghi
	new.Amenities = mergeUniqueStrings(old.Amenities, new.Amenities)

	//Xử lý case người dùng nhập lại PriceMax và PriceMin
	if new.PriceMin != nil && old.PriceMax != nil && *new.PriceMin > *old.PriceMax {
		new.PriceMax = nil
	} else {
		new.PriceMax = orFloatPointer(new.PriceMax, old.PriceMax)
	}

	if new.PriceMax != nil && old.PriceMin != nil && *new.PriceMax < *old.PriceMin {
		new.PriceMin = nil
	} else {
		new.PriceMin = orFloatPointer(new.PriceMin, old.PriceMin)
	}
	return new
}

// ApplyFilters lọc danh sách khách sạn theo bộ lọc
func ApplyFilters(hotels []models.Hotel, f *dto.SearchFilters) []models.Hotel {
	if f == nil {
		return hotels
	}
	var out []models.Hotel
	for _, h := range hotels {
		if f.Name != "" && !strings.Contains(normalizeInput(h.Name), normalizeInput(f.Name)) {
			continue
		}
		if f.City != "" && normalizeInput(h.City) != normalizeInput(f.City) {
			continue
		}
		if f.Country != "" && normalizeInput(h.Country) != normalizeInput(f.Country) {
			continue
		}
		if f.MinStars != nil && h.Stars < *f.MinStars {
			continue
		}
		if f.PriceMin != nil && h.PricePerNight < *f.PriceMin {
			continue
		}
		if f.PriceMax != nil && h.PricePerNight > *f.PriceMax {
			continue
		}
		if !hasAllAmenities(h, f.Amenities) {
			continue
		}
		out = append(out, h)
	}
	return out
}

func hasAllAmenities(h models.Hotel, amenities []string) bool {
	for _, want := range amenities {
		found := false
		for _, have := range h.Amenities {
			if normalizeInput(have) == normalizeInput(want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orIntPointer(newVal, oldVal *int) *int {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func orFloatPointer(newVal, oldVal *float64) *float64 {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func mergeUniqueStrings(a, b []string) []string {
	seen := make(map[string]bool)
	var result []string

	for _, val := range a {
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	for _, val := range b {
		if !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"raynott/dto"
	"raynott/models"
)

var starsPattern = regexp.MustCompile(`(\d)\s*(?:sao|star|stars|\*)`)

// Hàm chuẩn hóa chuỗi
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ToLower(unidecode.Unidecode(input))
	return input
}

// Tạo đối tượng closestmatch cho danh sách từ khóa
func createMatcher(keywords []string) *closestmatch.ClosestMatch {
	return closestmatch.New(keywords, []int{2, 3})
}

// Tính độ tương đồng giữa hai chuỗi
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}

	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

// extractStars đọc số sao trong câu tìm kiếm ("5 star", "4 sao"), -1 nếu không có
func extractStars(query string) int {
	match := starsPattern.FindStringSubmatch(query)
	if len(match) < 2 {
		return -1
	}
	stars, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return stars
}

// Tạo danh sách các giá trị duy nhất cho closestmatch
func prepareUniqueList(hotels []models.Hotel, field func(models.Hotel) string) []string {
	uniqueValues := make(map[string]bool)
	for _, h := range hotels {
		if value := field(h); value != "" {
			uniqueValues[normalizeInput(value)] = true
		}
	}
	uniqueList := make([]string, 0, len(uniqueValues))
	for val := range uniqueValues {
		uniqueList = append(uniqueList, val)
	}
	sort.Strings(uniqueList)
	return uniqueList
}

// SearchHotels xếp hạng khách sạn theo mức độ khớp với câu tìm kiếm tự do:
// tên, thành phố/quốc gia, số sao và tiện nghi. Chỉ trả về khách sạn có điểm > 0.
func SearchHotels(hotels []models.Hotel, query string) []dto.ScoredHotel {
	q := normalizeInput(query)
	if q == "" || len(hotels) == 0 {
		return nil
	}

	cmCity := createMatcher(prepareUniqueList(hotels, func(h models.Hotel) string { return h.City }))
	cmCountry := createMatcher(prepareUniqueList(hotels, func(h models.Hotel) string { return h.Country }))
	stars := extractStars(q)

	scoreCh := make(chan dto.ScoredHotel, len(hotels))
	var wg sync.WaitGroup
	for _, h := range hotels {
		wg.Add(1)
		go func(h models.Hotel) {
			defer wg.Done()
			if score := calculateScore(q, stars, h, cmCity, cmCountry); score > 0 {
				scoreCh <- dto.ScoredHotel{Hotel: h, Score: score}
			}
		}(h)
	}
	wg.Wait()
	close(scoreCh)

	var results []dto.ScoredHotel
	for s := range scoreCh {
		results = append(results, s)
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Hotel.Name < results[j].Hotel.Name
	})
	return results
}

func calculateScore(query string, stars int, h models.Hotel, cmCity, cmCountry *closestmatch.ClosestMatch) int {
	score := 0
	score += calculateNameScore(query, h.Name)
	score += calculateLocationScore(query, h, cmCity, cmCountry)
	if stars != -1 && h.Stars == stars {
		score += 15
	}
	score += calculateAmenityScore(query, h.Amenities)
	return score
}

func calculateNameScore(query, name string) int {
	n := normalizeInput(name)
	if n == "" {
		return 0
	}
	if strings.Contains(query, n) || strings.Contains(n, query) {
		return 25
	}
	if calculateSimilarity(query, n) > 0.7 {
		return 20
	}
	return 0
}

func calculateLocationScore(query string, h models.Hotel, cmCity, cmCountry *closestmatch.ClosestMatch) int {
	score := 0
	city := normalizeInput(h.City)
	if city != "" && (strings.Contains(query, city) || cmCity.Closest(query) == city && calculateSimilarity(query, city) > 0.6) {
		score += 13
	}
	country := normalizeInput(h.Country)
	if country != "" && (strings.Contains(query, country) || cmCountry.Closest(query) == country && calculateSimilarity(query, country) > 0.6) {
		score += 5
	}
	return score
}

func calculateAmenityScore(query string, amenities []string) int {
	maxAmenityScore := 12
	amenityScore := 0

	for _, a := range amenities {
		normalized := normalizeInput(a)
		if normalized == "" {
			continue
		}
		if strings.Contains(query, normalized) || calculateSimilarity(query, normalized) > 0.7 {
			amenityScore += 4
			if amenityScore >= maxAmenityScore {
				break
			}
		}
	}
	return amenityScore
}

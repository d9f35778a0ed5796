package services

import (
	"context"
	"testing"
	"time"

	"raynott/dto"
	"raynott/errors"
	"raynott/models"
)

func TestMemoryCache_TTL(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }
	ctx := context.Background()

	if err := c.Set(ctx, "k", []string{"a", "b"}, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	found, err := c.Get(ctx, "k", &got)
	if err != nil || !found || len(got) != 2 {
		t.Fatalf("expected cached value, got found=%v err=%v value=%v", found, err, got)
	}

	now = now.Add(2 * time.Minute)
	found, _ = c.Get(ctx, "k", &got)
	if found {
		t.Fatalf("expected entry to expire")
	}

	_ = c.Set(ctx, "forever", 1, 0)
	_ = c.Delete(ctx, "forever")
	var n int
	if found, _ := c.Get(ctx, "forever", &n); found {
		t.Fatalf("expected deleted entry to be gone")
	}
}

func TestLastFilters_SaveGetClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	got, err := GetLastFilters(ctx, c, "default")
	if err != nil || got != nil {
		t.Fatalf("expected no filters, got %v (err %v)", got, err)
	}

	stars := 4
	if err := SaveLastFilters(ctx, c, "default", &dto.SearchFilters{City: "Goa", MinStars: &stars}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err = GetLastFilters(ctx, c, "default")
	if err != nil || got == nil {
		t.Fatalf("expected saved filters, got %v (err %v)", got, err)
	}
	if got.City != "Goa" || got.MinStars == nil || *got.MinStars != 4 {
		t.Fatalf("expected city Goa and 4 stars, got %+v", got)
	}
	if other, _ := GetLastFilters(ctx, c, "work"); other != nil {
		t.Fatalf("expected filters to be scoped per profile")
	}

	if err := ClearLastFilters(ctx, c, "default"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := GetLastFilters(ctx, c, "default"); got != nil {
		t.Fatalf("expected filters cleared, got %+v", got)
	}
}

func ptrFloat(v float64) *float64 { return &v }

func TestMergeFilters(t *testing.T) {
	tests := []struct {
		name   string
		old    *dto.SearchFilters
		new    *dto.SearchFilters
		verify func(t *testing.T, got *dto.SearchFilters)
	}{
		{
			name: "no previous filters",
			old:  nil,
			new:  &dto.SearchFilters{City: "Mysuru"},
			verify: func(t *testing.T, got *dto.SearchFilters) {
				if got.City != "Mysuru" {
					t.Fatalf("expected Mysuru, got %q", got.City)
				}
			},
		},
		{
			name: "keeps old values and unions amenities",
			old:  &dto.SearchFilters{City: "Goa", Amenities: []string{"wifi"}},
			new:  &dto.SearchFilters{Name: "Sea", Amenities: []string{"pool", "wifi"}},
			verify: func(t *testing.T, got *dto.SearchFilters) {
				if got.City != "Goa" || got.Name != "Sea" {
					t.Fatalf("expected city Goa and name Sea, got %+v", got)
				}
				if len(got.Amenities) != 2 {
					t.Fatalf("expected 2 amenities, got %v", got.Amenities)
				}
			},
		},
		{
			name: "new min above old max drops max",
			old:  &dto.SearchFilters{PriceMax: ptrFloat(3000)},
			new:  &dto.SearchFilters{PriceMin: ptrFloat(5000)},
			verify: func(t *testing.T, got *dto.SearchFilters) {
				if got.PriceMax != nil {
					t.Fatalf("expected price max dropped, got %v", *got.PriceMax)
				}
				if got.PriceMin == nil || *got.PriceMin != 5000 {
					t.Fatalf("expected price min 5000")
				}
			},
		},
		{
			name: "new max below old min drops min",
			old:  &dto.SearchFilters{PriceMin: ptrFloat(4000)},
			new:  &dto.SearchFilters{PriceMax: ptrFloat(2500)},
			verify: func(t *testing.T, got *dto.SearchFilters) {
				if got.PriceMin != nil {
					t.Fatalf("expected price min dropped, got %v", *got.PriceMin)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.verify(t, MergeFilters(tt.old, tt.new))
		})
	}
}

func sampleHotels() []models.Hotel {
	return []models.Hotel{
		{ID: "h1", Name: "Raynott Grand", City: "Bengaluru", Country: "India", Stars: 5, PricePerNight: 4500, Amenities: []string{"wifi", "pool", "spa"}},
		{ID: "h2", Name: "Raynott Residency", City: "Mysuru", Country: "India", Stars: 3, PricePerNight: 2000, Amenities: []string{"wifi"}},
	}
}

func TestApplyFilters(t *testing.T) {
	hotels := sampleHotels()
	minStars := 4

	tests := []struct {
		name    string
		filters *dto.SearchFilters
		want    []string
	}{
		{"nil filters", nil, []string{"h1", "h2"}},
		{"city is case insensitive", &dto.SearchFilters{City: "mysuru"}, []string{"h2"}},
		{"min stars", &dto.SearchFilters{MinStars: &minStars}, []string{"h1"}},
		{"price range", &dto.SearchFilters{PriceMin: ptrFloat(1000), PriceMax: ptrFloat(3000)}, []string{"h2"}},
		{"all amenities required", &dto.SearchFilters{Amenities: []string{"wifi", "pool"}}, []string{"h1"}},
		{"name substring", &dto.SearchFilters{Name: "residency"}, []string{"h2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(hotels, tt.filters)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d hotels", tt.want, len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("expected %s at %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestExtractStars(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"5 star hotel", 5},
		{"khach san 4 sao", 4},
		{"3* in goa", 3},
		{"pool", -1},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := extractStars(tt.query); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSearchHotels(t *testing.T) {
	hotels := sampleHotels()

	if got := SearchHotels(hotels, "   "); got != nil {
		t.Fatalf("expected no results for blank query, got %v", got)
	}

	got := SearchHotels(hotels, "Bengaluru")
	if len(got) == 0 || got[0].Hotel.ID != "h1" {
		t.Fatalf("expected Raynott Grand first for a city query, got %+v", got)
	}

	got = SearchHotels(hotels, "5 star spa")
	if len(got) == 0 || got[0].Hotel.ID != "h1" {
		t.Fatalf("expected Raynott Grand first for stars and amenity, got %+v", got)
	}
	if got[0].Score < 19 {
		t.Fatalf("expected stars and amenity to score at least 19, got %d", got[0].Score)
	}

	got = SearchHotels(hotels, "Raynot Residensy")
	if len(got) == 0 || got[0].Hotel.ID != "h2" {
		t.Fatalf("expected fuzzy name match on Raynott Residency, got %+v", got)
	}
}

func sampleBookings() []models.Booking {
	return []models.Booking{
		{ID: "b1", User: models.Ref{Label: "Asha"}, Hotel: models.Ref{Label: "Raynott Grand"}, Room: models.Ref{Label: "Deluxe King"}, StartDate: "2024-06-10", EndDate: "2024-06-12", Status: "confirmed"},
		{ID: "b2", User: models.Ref{Label: "Ravi"}, Hotel: models.Ref{Label: "Raynott Residency"}, Room: models.Ref{Label: "Standard Double"}, StartDate: "2024-05-01", EndDate: "2024-05-03", Status: "confirmed"},
		{ID: "b3", User: models.Ref{Label: "Asha"}, Hotel: models.Ref{Label: "Raynott Grand"}, Room: models.Ref{Label: "Family Suite"}, StartDate: "2024-07-01", EndDate: "2024-07-04", Status: "cancelled"},
		{ID: "b4", User: models.Ref{Label: "Meera"}, Hotel: models.Ref{Label: "Raynott Residency"}, Room: models.Ref{Label: "Standard Double"}, StartDate: "2024-06-20", EndDate: "2024-06-21", Status: "pending"},
	}
}

func TestFilterBookings(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	bookings := sampleBookings()

	tests := []struct {
		name   string
		filter dto.BookingFilter
		term   string
		want   []string
	}{
		{"all", dto.BookingFilterAll, "", []string{"b1", "b2", "b3", "b4"}},
		{"upcoming excludes cancelled", dto.BookingFilterUpcoming, "", []string{"b1", "b4"}},
		{"past", dto.BookingFilterPast, "", []string{"b2"}},
		{"cancelled", dto.BookingFilterCancelled, "", []string{"b3"}},
		{"by status", dto.BookingFilter("pending"), "", []string{"b4"}},
		{"term matches guest", dto.BookingFilterAll, "asha", []string{"b1", "b3"}},
		{"term matches room", dto.BookingFilterAll, "double", []string{"b2", "b4"}},
		{"term matches id", dto.BookingFilterAll, "B3", []string{"b3"}},
		{"filter and term", dto.BookingFilterUpcoming, "grand", []string{"b1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBookings(bookings, tt.filter, tt.term, now)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d bookings", tt.want, len(got))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Fatalf("expected %s at %d, got %s", id, i, got[i].ID)
				}
			}
		})
	}
}

func TestBookingCounts(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	counts := BookingCounts(sampleBookings(), now)

	want := map[dto.BookingFilter]int{
		dto.BookingFilterAll:       4,
		dto.BookingFilterUpcoming:  2,
		dto.BookingFilterPast:      1,
		dto.BookingFilterCancelled: 1,
	}
	for k, v := range want {
		if counts[k] != v {
			t.Fatalf("expected %s=%d, got %d", k, v, counts[k])
		}
	}
}

type fakeAdminSession struct {
	authenticated bool
	admin         bool
	loggedOut     bool
}

func (f *fakeAdminSession) IsAuthenticated() bool { return f.authenticated }
func (f *fakeAdminSession) IsAdmin() bool         { return f.admin }
func (f *fakeAdminSession) HandleUnauthorized(err error) bool {
	f.loggedOut = true
	return false
}

type fakeBookings struct{ list []models.Booking }

func (f fakeBookings) All(context.Context) ([]models.Booking, error) { return f.list, nil }

type fakeUsers struct{ err error }

func (f fakeUsers) ListUsers(context.Context) ([]models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.User{{ID: "u1"}, {ID: "u2"}}, nil
}

type fakeHotels struct{}

func (fakeHotels) List(context.Context) ([]models.Hotel, error) { return sampleHotels(), nil }

func TestDashboardService_Stats(t *testing.T) {
	bookings := sampleBookings()
	bookings[0].TotalPrice = 9450
	bookings[3].TotalPrice = 2100

	t.Run("admin gets totals", func(t *testing.T) {
		svc := NewDashboardService(DashboardServiceOptions{
			Session:  &fakeAdminSession{authenticated: true, admin: true},
			Bookings: fakeBookings{list: bookings},
			Users:    fakeUsers{},
			Hotels:   fakeHotels{},
		})
		stats, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.TotalBookings != 4 || stats.TotalUsers != 2 || stats.TotalHotels != 2 {
			t.Fatalf("unexpected totals: %+v", stats)
		}
		if stats.PendingBookings != 1 || stats.ConfirmedBookings != 2 || stats.CancelledBookings != 1 {
			t.Fatalf("unexpected status counts: %+v", stats)
		}
		if stats.TotalRevenue != 11550 {
			t.Fatalf("expected revenue 11550, got %v", stats.TotalRevenue)
		}
	})

	t.Run("not logged in", func(t *testing.T) {
		svc := NewDashboardService(DashboardServiceOptions{Session: &fakeAdminSession{}})
		_, err := svc.Stats(context.Background())
		if errors.CodeOf(err) != errors.ErrCodeAuthRequired {
			t.Fatalf("expected AUTH_REQUIRED, got %v", err)
		}
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		svc := NewDashboardService(DashboardServiceOptions{Session: &fakeAdminSession{authenticated: true}})
		_, err := svc.Stats(context.Background())
		if errors.CodeOf(err) != errors.ErrCodeForbidden {
			t.Fatalf("expected FORBIDDEN, got %v", err)
		}
	})

	t.Run("remote failure", func(t *testing.T) {
		session := &fakeAdminSession{authenticated: true, admin: true}
		svc := NewDashboardService(DashboardServiceOptions{
			Session:  session,
			Bookings: fakeBookings{},
			Users:    fakeUsers{err: context.DeadlineExceeded},
			Hotels:   fakeHotels{},
		})
		_, err := svc.Stats(context.Background())
		if errors.CodeOf(err) != errors.ErrCodeRemote {
			t.Fatalf("expected REMOTE_ERROR, got %v", err)
		}
		if !session.loggedOut {
			t.Fatalf("expected failure to be offered to the session first")
		}
	})
}

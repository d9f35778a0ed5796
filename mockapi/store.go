package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"raynott/constants"
	"raynott/dto"
	"raynott/models"
)

type userRecord struct {
	models.User
	PasswordHash []byte
}

type bookingRecord struct {
	ID         string
	UserID     string
	HotelID    string
	RoomID     string
	Start      time.Time
	End        time.Time
	Guests     int
	Status     string
	TotalPrice float64
	CreatedAt  time.Time
}

// db là kho dữ liệu trong bộ nhớ của backend giả
type db struct {
	mu       sync.RWMutex
	users    map[string]*userRecord
	hotels   map[string]*models.Hotel
	rooms    map[string]*models.Room
	bookings map[string]*bookingRecord
	bcost    int
}

func newDB() *db {
	return &db{
		users:    map[string]*userRecord{},
		hotels:   map[string]*models.Hotel{},
		rooms:    map[string]*models.Room{},
		bookings: map[string]*bookingRecord{},
		bcost:    bcrypt.MinCost,
	}
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// HashPassword mã hóa mật khẩu
func (d *db) hashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), d.bcost)
}

func (d *db) createUser(name, email, password, role string, now time.Time) (*userRecord, error) {
	hash, err := d.hashPassword(password)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range d.users {
		if u.Email == email {
			return nil, errEmailTaken
		}
	}
	u := &userRecord{
		User: models.User{
			ID:        newID(),
			Name:      name,
			Email:     email,
			Role:      role,
			CreatedAt: now.UTC().Format(time.RFC3339),
		},
		PasswordHash: hash,
	}
	d.users[u.ID] = u
	return u, nil
}

func (d *db) authenticate(email, password string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range d.users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
			return models.User{}, false
		}
		return u.User, true
	}
	return models.User{}, false
}

func (d *db) user(id string) (models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return models.User{}, false
	}
	return u.User, true
}

func (d *db) listUsers() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		out = append(out, u.User)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt+out[i].ID < out[j].CreatedAt+out[j].ID })
	return out
}

func (d *db) updateUser(id string, req dto.UpdateUserRequest) (models.User, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[id]
	if !ok {
		return models.User{}, false
	}
	if req.Name != "" {
		u.Name = req.Name
	}
	if req.Email != "" {
		u.Email = strings.ToLower(req.Email)
	}
	if req.Role != "" {
		u.Role = req.Role
	}
	return u.User, true
}

func (d *db) deleteUser(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[id]; !ok {
		return false
	}
	delete(d.users, id)
	return true
}

func (d *db) saveHotel(id string, req dto.HotelRequest) (models.Hotel, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if id == "" {
		id = newID()
	} else if _, ok := d.hotels[id]; !ok {
		return models.Hotel{}, false
	}
	h := &models.Hotel{
		ID:            id,
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Stars:         req.Stars,
		PricePerNight: req.PricePerNight,
		Amenities:     req.Amenities,
		Images:        req.Images,
	}
	d.hotels[id] = h
	return *h, true
}

func (d *db) hotel(id string) (models.Hotel, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.hotels[id]
	if !ok {
		return models.Hotel{}, false
	}
	out := *h
	out.Rooms = d.roomsOfLocked(id)
	return out, true
}

func (d *db) listHotels() []models.Hotel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Hotel, 0, len(d.hotels))
	for _, h := range d.hotels {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// deleteHotel xóa khách sạn cùng các phòng của nó
func (d *db) deleteHotel(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.hotels[id]; !ok {
		return false
	}
	delete(d.hotels, id)
	for rid, r := range d.rooms {
		if r.Hotel.ID == id {
			delete(d.rooms, rid)
		}
	}
	return true
}

func (d *db) saveRoom(id string, req dto.RoomRequest) (models.Room, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	h, ok := d.hotels[req.Hotel]
	if !ok {
		return models.Room{}, errHotelNotFound
	}
	if id == "" {
		id = newID()
	} else if _, ok := d.rooms[id]; !ok {
		return models.Room{}, errRoomNotFound
	}
	r := &models.Room{
		ID:          id,
		Hotel:       models.Ref{ID: h.ID, Label: h.Name},
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		BedType:     req.BedType,
		Amenities:   req.Amenities,
		Images:      req.Images,
	}
	d.rooms[id] = r
	return *r, nil
}

func (d *db) room(id string) (models.Room, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	r, ok := d.rooms[id]
	if !ok {
		return models.Room{}, false
	}
	return *r, true
}

func (d *db) listRooms() []models.Room {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Room, 0, len(d.rooms))
	for _, r := range d.rooms {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title+out[i].ID < out[j].Title+out[j].ID })
	return out
}

func (d *db) roomsOfLocked(hotelID string) []models.Room {
	var out []models.Room
	for _, r := range d.rooms {
		if r.Hotel.ID == hotelID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title+out[i].ID < out[j].Title+out[j].ID })
	return out
}

func (d *db) deleteRoom(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.rooms[id]; !ok {
		return false
	}
	delete(d.rooms, id)
	return true
}

// overlapsLocked: khoảng [start, end) giao với một booking chưa huỷ của phòng
func (d *db) overlapsLocked(roomID string, start, end time.Time) bool {
	for _, b := range d.bookings {
		if b.RoomID != roomID || b.Status == constants.BookingStatusCancelled {
			continue
		}
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

func (d *db) available(roomID string, start, end time.Time) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return !d.overlapsLocked(roomID, start, end)
}

// createBooking kiểm tra trùng lịch và lưu booking trong cùng một lần khóa
func (d *db) createBooking(b bookingRecord) (bookingRecord, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.overlapsLocked(b.RoomID, b.Start, b.End) {
		return bookingRecord{}, errNotAvailable
	}
	b.ID = newID()
	stored := b
	d.bookings[b.ID] = &stored
	return b, nil
}

func (d *db) booking(id string) (bookingRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	b, ok := d.bookings[id]
	if !ok {
		return bookingRecord{}, false
	}
	return *b, true
}

func (d *db) setBookingStatus(id, status string) (bookingRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	b, ok := d.bookings[id]
	if !ok {
		return bookingRecord{}, false
	}
	b.Status = status
	return *b, true
}

func (d *db) listBookings(userID string) []bookingRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]bookingRecord, 0, len(d.bookings))
	for _, b := range d.bookings {
		if userID == "" || b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// view dựng booking có populate user/hotel/room như backend thật
func (d *db) view(b bookingRecord) bookingView {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v := bookingView{
		ID:         b.ID,
		User:       refView{ID: b.UserID},
		Hotel:      refView{ID: b.HotelID},
		Room:       refView{ID: b.RoomID},
		StartDate:  b.Start.UTC().Format(time.RFC3339),
		EndDate:    b.End.UTC().Format(time.RFC3339),
		Guests:     b.Guests,
		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		CreatedAt:  b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if u, ok := d.users[b.UserID]; ok {
		v.User.Name = u.Name
		v.User.Email = u.Email
	}
	if h, ok := d.hotels[b.HotelID]; ok {
		v.Hotel.Name = h.Name
	}
	if r, ok := d.rooms[b.RoomID]; ok {
		v.Room.Title = r.Title
	}
	return v
}

// expirePending huỷ các booking còn pending mà ngày nhận phòng đã qua
func (d *db) expirePending(now time.Time) []bookingRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	var expired []bookingRecord
	for _, b := range d.bookings {
		if b.Status == constants.BookingStatusPending && !b.Start.After(now) {
			b.Status = constants.BookingStatusCancelled
			expired = append(expired, *b)
		}
	}
	return expired
}

func (d *db) counts() (users, hotels, rooms, bookings int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users), len(d.hotels), len(d.rooms), len(d.bookings)
}

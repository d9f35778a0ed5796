package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"raynott/booking"
	"raynott/constants"
	"raynott/dto"
	"raynott/models"
)

func (s *Server) issue(c *gin.Context, status int, u models.User) {
	// jwt-go kiểm tra exp theo giờ hệ thống nên token luôn ký theo time.Now
	token, err := GenerateToken(s.secret, UserInfo{UserID: u.ID, Role: u.Role}, s.tokenTTL, time.Now())
	if err != nil {
		s.log.Error("Không ký được token: %v", err)
		ServerError(c)
		return
	}
	c.JSON(status, authView{Token: token, User: toUserView(u)})
}

func (s *Server) register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Please provide name, email and password")
		return
	}
	u, err := s.db.createUser(input.Name, input.Email, input.Password, constants.RoleUser, s.clock.Now())
	if errors.Is(err, errEmailTaken) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		ServerError(c)
		return
	}
	s.log.Info("Đăng ký user mới: %s", u.Email)
	s.issue(c, http.StatusCreated, u.User)
}

func (s *Server) login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Please provide email and password")
		return
	}
	u, ok := s.db.authenticate(input.Email, input.Password)
	if !ok {
		Message(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	s.issue(c, http.StatusOK, u)
}

func (s *Server) profile(c *gin.Context) {
	u, ok := s.db.user(c.GetString(ctxUserID))
	if !ok {
		Unauthorized(c)
		return
	}
	Success(c, toUserView(u))
}

func (s *Server) listUsers(c *gin.Context) {
	users := s.db.listUsers()
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, toUserView(u))
	}
	Success(c, out)
}

func (s *Server) updateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	u, ok := s.db.updateUser(c.Param("id"), req)
	if !ok {
		NotFound(c, "User not found")
		return
	}
	Success(c, toUserView(u))
}

func (s *Server) deleteUser(c *gin.Context) {
	if c.Param("id") == c.GetString(ctxUserID) {
		BadRequest(c, "You cannot delete your own account")
		return
	}
	if !s.db.deleteUser(c.Param("id")) {
		NotFound(c, "User not found")
		return
	}
	Message(c, http.StatusOK, "User removed")
}

func (s *Server) createAdmin(c *gin.Context) {
	var input dto.CreateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Please provide name, email and password")
		return
	}
	u, err := s.db.createUser(input.Name, input.Email, input.Password, constants.RoleAdmin, s.clock.Now())
	if errors.Is(err, errEmailTaken) {
		BadRequest(c, err.Error())
		return
	}
	if err != nil {
		ServerError(c)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin created", "user": toUserView(u.User)})
}

func (s *Server) listHotels(c *gin.Context) {
	hotels := s.db.listHotels()
	out := make([]hotelView, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, toHotelView(h))
	}
	Success(c, out)
}

func (s *Server) getHotel(c *gin.Context) {
	h, ok := s.db.hotel(c.Param("id"))
	if !ok {
		NotFound(c, errHotelNotFound.Error())
		return
	}
	Success(c, toHotelView(h))
}

func (s *Server) createHotel(c *gin.Context) {
	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h, _ := s.db.saveHotel("", req)
	Created(c, toHotelView(h))
}

func (s *Server) updateHotel(c *gin.Context) {
	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	h, ok := s.db.saveHotel(c.Param("id"), req)
	if !ok {
		NotFound(c, errHotelNotFound.Error())
		return
	}
	Success(c, toHotelView(h))
}

func (s *Server) deleteHotel(c *gin.Context) {
	if !s.db.deleteHotel(c.Param("id")) {
		NotFound(c, errHotelNotFound.Error())
		return
	}
	Message(c, http.StatusOK, "Hotel removed")
}

func (s *Server) listRooms(c *gin.Context) {
	rooms := s.db.listRooms()
	out := make([]roomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomView(r))
	}
	Success(c, out)
}

func (s *Server) getRoom(c *gin.Context) {
	r, ok := s.db.room(c.Param("id"))
	if !ok {
		NotFound(c, errRoomNotFound.Error())
		return
	}
	Success(c, toRoomView(r))
}

func (s *Server) saveRoom(c *gin.Context, id string) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	r, err := s.db.saveRoom(id, req)
	switch {
	case errors.Is(err, errHotelNotFound):
		BadRequest(c, err.Error())
	case errors.Is(err, errRoomNotFound):
		NotFound(c, err.Error())
	case err != nil:
		ServerError(c)
	case id == "":
		Created(c, toRoomView(r))
	default:
		Success(c, toRoomView(r))
	}
}

func (s *Server) createRoom(c *gin.Context) { s.saveRoom(c, "") }

func (s *Server) updateRoom(c *gin.Context) { s.saveRoom(c, c.Param("id")) }

func (s *Server) deleteRoom(c *gin.Context) {
	if !s.db.deleteRoom(c.Param("id")) {
		NotFound(c, errRoomNotFound.Error())
		return
	}
	Message(c, http.StatusOK, "Room removed")
}

// parseStay đọc cặp ngày YYYY-MM-DD, trả về lỗi khi thiếu hoặc checkout không sau checkin
func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	start, err := time.Parse(constants.DateLayout, checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid check-in date")
	}
	end, err := time.Parse(constants.DateLayout, checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("Invalid check-out date")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New("Check-out must be after check-in")
	}
	return start, end, nil
}

func (s *Server) availability(c *gin.Context) {
	if _, ok := s.db.room(c.Param("id")); !ok {
		NotFound(c, errRoomNotFound.Error())
		return
	}
	start, end, err := parseStay(c.Query("checkIn"), c.Query("checkOut"))
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, dto.AvailabilityResponse{Available: s.db.available(c.Param("id"), start, end)})
}

func (s *Server) createBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Please provide hotelId, roomId, startDate, endDate and guests")
		return
	}
	room, ok := s.db.room(req.RoomID)
	if !ok || room.HotelID() != req.HotelID {
		NotFound(c, errRoomNotFound.Error())
		return
	}
	start, end, err := parseStay(req.StartDate, req.EndDate)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	if req.Guests > room.MaxGuests() {
		BadRequest(c, "Guests exceed room capacity")
		return
	}

	nights := int(end.Sub(start).Hours() / 24)
	created, err := s.db.createBooking(bookingRecord{
		UserID:     c.GetString(ctxUserID),
		HotelID:    req.HotelID,
		RoomID:     req.RoomID,
		Start:      start,
		End:        end,
		Guests:     req.Guests,
		Status:     constants.BookingStatusPending,
		TotalPrice: booking.ComputePrice(room.Price, nights).Total,
		CreatedAt:  s.clock.Now(),
	})
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	s.publish("booking.created", created)
	Created(c, s.db.view(created))
}

func (s *Server) bookingViews(records []bookingRecord) []bookingView {
	out := make([]bookingView, 0, len(records))
	for _, b := range records {
		out = append(out, s.db.view(b))
	}
	return out
}

func (s *Server) myBookings(c *gin.Context) {
	Success(c, s.bookingViews(s.db.listBookings(c.GetString(ctxUserID))))
}

func (s *Server) allBookings(c *gin.Context) {
	Success(c, s.bookingViews(s.db.listBookings("")))
}

func (s *Server) updateBookingStatus(c *gin.Context) {
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid status")
		return
	}
	current, ok := s.db.booking(c.Param("id"))
	if !ok {
		NotFound(c, "Booking not found")
		return
	}
	if err := models.Transition(current.Status, req.Status); err != nil {
		BadRequest(c, err.Error())
		return
	}
	updated, _ := s.db.setBookingStatus(current.ID, req.Status)
	s.publish("booking."+req.Status, updated)
	Success(c, s.db.view(updated))
}

// cancelBooking: chủ booking hoặc admin mới được huỷ
func (s *Server) cancelBooking(c *gin.Context) {
	current, ok := s.db.booking(c.Param("id"))
	if !ok {
		NotFound(c, "Booking not found")
		return
	}
	isAdmin := c.GetString(ctxUserRole) == constants.RoleAdmin
	if current.UserID != c.GetString(ctxUserID) && !isAdmin {
		Forbidden(c)
		return
	}
	if current.Status == constants.BookingStatusCancelled {
		BadRequest(c, "Booking already cancelled")
		return
	}
	updated, _ := s.db.setBookingStatus(current.ID, constants.BookingStatusCancelled)
	s.publish("booking.cancelled", updated)
	Message(c, http.StatusOK, "Booking cancelled")
}

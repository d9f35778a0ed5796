package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"raynott/models"
)

var (
	errEmailTaken    = errors.New("User already exists")
	errHotelNotFound = errors.New("Hotel not found")
	errRoomNotFound  = errors.New("Room not found")
	errNotAvailable  = errors.New("Room is not available for the selected dates")
)

// messageResponse là body lỗi/thông báo mà client đọc trường "message"
type messageResponse struct {
	Message string `json:"message"`
}

type refView struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Title string `json:"title,omitempty"`
}

type bookingView struct {
	ID         string  `json:"_id"`
	User       refView `json:"user"`
	Hotel      refView `json:"hotel"`
	Room       refView `json:"room"`
	StartDate  string  `json:"startDate"`
	EndDate    string  `json:"endDate"`
	Guests     int     `json:"guests"`
	Status     string  `json:"status"`
	TotalPrice float64 `json:"totalPrice"`
	CreatedAt  string  `json:"createdAt"`
}

type roomView struct {
	ID          string   `json:"_id"`
	Hotel       refView  `json:"hotel"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	Capacity    int      `json:"capacity"`
	BedType     string   `json:"bedType,omitempty"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type hotelView struct {
	models.Hotel
	Rooms []roomView `json:"rooms,omitempty"`
}

type userView struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type authView struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func toUserView(u models.User) userView {
	return userView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func toRoomView(r models.Room) roomView {
	return roomView{
		ID:          r.ID,
		Hotel:       refView{ID: r.Hotel.ID, Name: r.Hotel.Label},
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Capacity:    r.Capacity,
		BedType:     r.BedType,
		Amenities:   nonNil(r.Amenities),
		Images:      nonNil(r.Images),
	}
}

func toHotelView(h models.Hotel) hotelView {
	v := hotelView{Hotel: h}
	v.Hotel.Rooms = nil
	v.Amenities = nonNil(h.Amenities)
	v.Images = nonNil(h.Images)
	for _, r := range h.Rooms {
		v.Rooms = append(v.Rooms, toRoomView(r))
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created trả về 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message trả về {"message": ...} với status tuỳ ý
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, messageResponse{Message: message})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	Message(c, http.StatusUnauthorized, "Not authorized, token failed")
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Message(c, http.StatusForbidden, "Access denied. Admin privileges required.")
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, message string) {
	Message(c, http.StatusNotFound, message)
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	Message(c, http.StatusBadRequest, message)
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Message(c, http.StatusInternalServerError, "Server error")
}

package mockapi

import (
	"github.com/gin-gonic/gin"

	"raynott/constants"
	"raynott/dto"
)

func (s *Server) setupRoutes(r *gin.RouterGroup) {
	admin := s.AuthMiddleware(constants.RoleAdmin)

	auth := r.Group("/auth")
	{
		auth.POST("/register", s.register)
		auth.POST("/login", s.login)
		auth.GET("/profile", s.AuthMiddleware(), s.profile)
		auth.GET("/users", admin, s.listUsers)
		auth.PUT("/users/:id", admin, s.updateUser)
		auth.DELETE("/users/:id", admin, s.deleteUser)
		auth.POST("/create-admin", admin, s.createAdmin)
	}

	hotels := r.Group("/hotels")
	{
		hotels.GET("", s.listHotels)
		hotels.GET("/:id", s.getHotel)
		hotels.POST("", admin, s.createHotel)
		hotels.PUT("/:id", admin, s.updateHotel)
		hotels.DELETE("/:id", admin, s.deleteHotel)
	}

	rooms := r.Group("/rooms")
	{
		rooms.GET("", s.listRooms)
		rooms.GET("/:id", s.getRoom)
		rooms.GET("/:id/availability", s.availability)
		rooms.POST("", admin, s.createRoom)
		rooms.PUT("/:id", admin, s.updateRoom)
		rooms.DELETE("/:id", admin, s.deleteRoom)
	}

	bookings := r.Group("/bookings", s.AuthMiddleware())
	{
		bookings.POST("", s.createBooking)
		bookings.GET("/my", s.myBookings)
		bookings.GET("", admin, s.allBookings)
		bookings.PUT("/:id/status", admin, s.updateBookingStatus)
		bookings.DELETE("/:id", s.cancelBooking)
	}
}

type seedHotel struct {
	hotel dto.HotelRequest
	rooms []dto.RoomRequest
}

var seedHotels = []seedHotel{
	{
		hotel: dto.HotelRequest{
			Name:          "Raynott Grand",
			Description:   "Business hotel near the college campus",
			Address:       "12 MG Road",
			City:          "Bengaluru",
			Country:       "India",
			Stars:         5,
			PricePerNight: 4500,
			Amenities:     []string{"wifi", "pool", "gym", "parking"},
		},
		rooms: []dto.RoomRequest{
			{Title: "Deluxe King", Price: 4500, Capacity: 2, BedType: "king", Amenities: []string{"wifi", "ac"}},
			{Title: "Family Suite", Price: 7200, Capacity: 4, BedType: "twin", Amenities: []string{"wifi", "ac", "kitchen"}},
		},
	},
	{
		hotel: dto.HotelRequest{
			Name:          "Raynott Residency",
			Description:   "Budget stay",
			Address:       "4 Church Street",
			City:          "Mysuru",
			Country:       "India",
			Stars:         3,
			PricePerNight: 2000,
			Amenities:     []string{"wifi", "breakfast"},
		},
		rooms: []dto.RoomRequest{
			{Title: "Standard Double", Price: 2000, Capacity: 2, BedType: "double", Amenities: []string{"wifi"}},
		},
	},
}

// Package mockapi là backend REST giả lập trong bộ nhớ, dùng cho integration test
// và chạy thử CLI khi không có backend thật.
package mockapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/robfig/cron/v3"

	"raynott/clock"
	"raynott/constants"
	"raynott/models"
	"raynott/services/logger"
	"raynott/services/notification"
)

const (
	DefaultTokenTTL = 24 * time.Hour
	// DefaultSweepSpec: mỗi ngày lúc 0h
	DefaultSweepSpec = "0 0 * * *"
)

type Options struct {
	Secret    string
	TokenTTL  time.Duration
	SweepSpec string
	Clock     clock.Clock
	Logger    logger.Logger
}

// Server gom router gin, websocket melody và cron sweep
type Server struct {
	router *gin.Engine
	melody *melody.Melody
	cron   *cron.Cron
	events notification.Service

	db       *db
	secret   []byte
	tokenTTL time.Duration
	clock    clock.Clock
	log      logger.Logger
}

func New(opts Options) (*Server, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("mockapi: jwt secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.SweepSpec == "" {
		opts.SweepSpec = DefaultSweepSpec
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewSystem()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	m := melody.New()
	s := &Server{
		melody:   m,
		cron:     cron.New(),
		events:   notification.NewMelodyService(m),
		db:       newDB(),
		secret:   []byte(opts.Secret),
		tokenTTL: opts.TokenTTL,
		clock:    opts.Clock,
		log:      opts.Logger,
	}
	s.router = s.newRouter()

	if _, err := s.cron.AddFunc(opts.SweepSpec, func() { s.SweepPending() }); err != nil {
		return nil, fmt.Errorf("mockapi: invalid sweep schedule %q: %w", opts.SweepSpec, err)
	}
	return s, nil
}

func (s *Server) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	configCors := cors.DefaultConfig()
	configCors.AddAllowHeaders("Authorization")
	configCors.AllowCredentials = true
	configCors.AllowAllOrigins = false
	configCors.AllowOriginFunc = func(origin string) bool {
		return true
	}
	router.Use(cors.New(configCors))
	router.SetTrustedProxies(nil)

	router.GET("/ws", func(c *gin.Context) {
		s.melody.HandleRequest(c.Writer, c.Request)
	})

	api := router.Group("/api")
	s.setupRoutes(api)
	return router
}

// Handler trả về http.Handler, base URL của client là <addr>/api
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start chạy cron sweep
func (s *Server) Start() {
	s.cron.Start()
	s.log.Info("Mock API cron started")
}

// Stop dừng cron và đóng các kết nối websocket
func (s *Server) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if err := s.melody.Close(); err != nil {
		s.log.Warn("Lỗi khi đóng websocket: %v", err)
	}
}

// SweepPending huỷ các booking pending đã tới ngày nhận phòng mà chưa được xác nhận
func (s *Server) SweepPending() int {
	now := s.clock.Now()
	s.log.Info("Đang dọn booking pending quá hạn lúc: %v", now)
	expired := s.db.expirePending(now)
	for _, b := range expired {
		s.publish("booking.expired", b)
	}
	return len(expired)
}

func (s *Server) publish(eventType string, b bookingRecord) {
	msg := notification.NewMessageBuilder(eventType, models.Booking{
		ID:     b.ID,
		Room:   models.Ref{ID: b.RoomID},
		Status: b.Status,
	}).Build()
	if err := s.events.SendMessage(msg); err != nil {
		s.log.Warn("Không gửi được sự kiện %s: %v", eventType, err)
	}
}

// AddUser tạo tài khoản trực tiếp (seed dữ liệu, test)
func (s *Server) AddUser(name, email, password, role string) (models.User, error) {
	u, err := s.db.createUser(name, email, password, role, s.clock.Now())
	if err != nil {
		return models.User{}, err
	}
	return u.User, nil
}

// Seed nạp dữ liệu mẫu: một admin, hai khách sạn, ba phòng
func (s *Server) Seed(adminEmail, adminPassword string) error {
	if _, err := s.AddUser("Admin", adminEmail, adminPassword, constants.RoleAdmin); err != nil {
		return err
	}
	for _, h := range seedHotels {
		hotel, _ := s.db.saveHotel("", h.hotel)
		for _, r := range h.rooms {
			r.Hotel = hotel.ID
			if _, err := s.db.saveRoom("", r); err != nil {
				return err
			}
		}
	}
	users, hotels, rooms, _ := s.db.counts()
	s.log.Info("Seeded mock data: %d users, %d hotels, %d rooms", users, hotels, rooms)
	return nil
}

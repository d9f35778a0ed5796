package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"raynott/api"
	"raynott/clock"
	"raynott/config"
	"raynott/errors"
	"raynott/services"
	"raynott/services/logger"
	"raynott/services/notification"
	"raynott/session"
)

// app gom các thành phần dùng chung, tạo một lần cho mỗi lần chạy CLI
type app struct {
	cfg      *config.Config
	log      logger.Logger
	clock    clock.Clock
	rdb      *redis.Client
	cache    services.Cache
	client   *api.Client
	store    *session.Store
	auth     *services.AuthService
	hotels   *services.HotelService
	rooms    *services.RoomService
	bookings *services.BookingService
	notifier notification.Notifier
	closed   bool
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{
		cfg:      cfg,
		log:      logger.NewDefaultLogger(cfg.LogLevel),
		clock:    clock.NewSystem(),
		notifier: notification.NewWriterNotifier(os.Stdout),
	}

	var storage session.Storage
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		rdb, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.rdb = rdb
		a.cache = services.NewRedisCache(rdb)
		storage = session.NewRedisStorage(rdb, cfg.SessionProfile)
	case config.SessionBackendMemory:
		storage = session.NewMemoryStorage()
		a.cache = services.NewMemoryCache()
	default:
		path := cfg.SessionFile
		if path == "" {
			path = session.DefaultFilePath()
		}
		storage = session.NewFileStorage(path)
	}

	a.client = api.New(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.APITimeout,
		Logger:  a.log,
	})
	a.auth = services.NewAuthService(services.AuthServiceOptions{Client: a.client, Logger: a.log})
	a.store = session.NewStore(storage, a.auth, a.log)
	a.client.SetCredentials(a.store)

	a.hotels = services.NewHotelService(services.HotelServiceOptions{
		Client: a.client,
		Cache:  a.cache,
		TTL:    cfg.CatalogCacheTTL,
		Logger: a.log,
	})
	a.rooms = services.NewRoomService(a.client, a.hotels)
	a.bookings = services.NewBookingService(a.client)
	return a, nil
}

func (a *app) close() {
	if a.rdb != nil {
		a.rdb.Close()
		a.rdb = nil
	}
	a.closed = true
}

// errReported: lỗi đã được hiển thị cho người dùng, main thoát với mã 1
var errReported = stderrors.New("command failed")

// fail hiển thị lỗi cho người dùng; 401 với session đang có thì đăng xuất
func (a *app) fail(err error) error {
	if err == nil {
		return nil
	}
	if a.store.HandleUnauthorized(err) {
		err = errors.AuthRequired("Session expired. Please login again.", "")
	} else if !errors.IsAppError(err) {
		switch {
		case api.IsTransport(err):
			err = errors.NewAppError(errors.ErrCodeNetwork, api.MessageOf(err), err)
		case api.StatusOf(err) == 404:
			err = errors.NewAppError(errors.ErrCodeNotFound, api.MessageOf(err), err)
		case api.StatusOf(err) != 0:
			err = errors.NewAppError(errors.ErrCodeRemote, api.MessageOf(err), err)
		}
	}
	notification.Present(a.notifier, err)
	a.log.Debug("Lệnh thất bại: %v", err)
	return errReported
}

func newCLI(cfg *config.Config) *cli.App {
	return buildCLI(cfg, newApp)
}

func buildCLI(cfg *config.Config, build func(context.Context, *config.Config) (*app, error)) *cli.App {
	var a *app
	withApp := func(fn func(*cli.Context, *app) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			return fn(c, a)
		}
	}

	return &cli.App{
		Name:  "raynott",
		Usage: "Raynott hotel booking client",
		Before: func(c *cli.Context) error {
			if c.Args().First() == "mock-server" {
				return nil
			}
			var err error
			a, err = build(c.Context, cfg)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if a != nil {
				a.close()
			}
			return nil
		},
		Commands: []*cli.Command{
			loginCommand(withApp),
			registerCommand(withApp),
			logoutCommand(withApp),
			whoamiCommand(withApp),
			profileCommand(withApp),
			hotelsCommand(withApp),
			roomsCommand(withApp),
			quoteCommand(withApp),
			bookCommand(withApp),
			bookingsCommand(withApp),
			adminCommand(withApp),
			mockServerCommand(cfg),
		},
	}
}

type appAction func(func(*cli.Context, *app) error) cli.ActionFunc

func main() {
	config.LoadEnv()
	cfg := config.Load()

	if err := newCLI(cfg).Run(os.Args); err != nil {
		if stderrors.Is(err, errReported) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}

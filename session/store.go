package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"raynott/api"
	"raynott/clock"
	"raynott/constants"
	"raynott/dto"
	"raynott/errors"
	"raynott/models"
	"raynott/services/logger"
)

const storageTimeout = 5 * time.Second

// Authenticator gọi các endpoint /auth/login và /auth/register
type Authenticator interface {
	Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error)
	Register(ctx context.Context, in dto.RegisterInput) (*dto.AuthResponse, error)
}

// Snapshot là trạng thái session tại một thời điểm. Luôn được thay thế toàn bộ.
type Snapshot struct {
	Token string
	User  *models.User
}

// Authenticated: có token và có user
func (s Snapshot) Authenticated() bool {
	return s.Token != "" && s.User != nil
}

// Store giữ session của cả process. Được tạo một lần lúc khởi động và truyền
// tham chiếu cho mọi thành phần cần đọc session.
type Store struct {
	mu        sync.RWMutex
	snap      Snapshot
	storage   Storage
	auth      Authenticator
	log       logger.Logger
	clock     clock.Clock
	observers map[int]func(Snapshot)
	nextObs   int
}

type Option func(*Store)

func WithClock(c clock.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// NewStore tạo store và khôi phục session từ storage. Không bao giờ trả lỗi:
// dữ liệu hỏng hoặc token hết hạn đều dẫn tới trạng thái chưa đăng nhập.
func NewStore(storage Storage, auth Authenticator, log logger.Logger, opts ...Option) *Store {
	if log == nil {
		log = logger.Nop()
	}
	if storage == nil {
		storage = NewMemoryStorage()
	}
	s := &Store{
		storage:   storage,
		auth:      auth,
		log:       log,
		clock:     clock.NewSystem(),
		observers: map[int]func(Snapshot){},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snap = s.restore()
	return s
}

func (s *Store) restore() Snapshot {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	token, hasToken, err := s.storage.Get(ctx, constants.StorageKeyToken)
	if err != nil {
		s.log.Error("Không đọc được token đã lưu: %v", err)
		return Snapshot{}
	}
	rawUser, hasUser, err := s.storage.Get(ctx, constants.StorageKeyUser)
	if err != nil {
		s.log.Error("Không đọc được user đã lưu: %v", err)
		return Snapshot{}
	}
	if !hasToken && !hasUser {
		return Snapshot{}
	}
	if !hasToken || !hasUser || token == "" {
		s.log.Warn("Session lưu trữ không đầy đủ, bỏ qua")
		s.clear(ctx)
		return Snapshot{}
	}

	var user *models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || user == nil {
		s.log.Error("User đã lưu bị hỏng, bắt đầu ở trạng thái chưa đăng nhập: %v", err)
		s.clear(ctx)
		return Snapshot{}
	}
	if tokenExpired(token, s.clock.Now()) {
		s.log.Info("Token đã hết hạn, yêu cầu đăng nhập lại")
		s.clear(ctx)
		return Snapshot{}
	}

	s.log.Debug("Khôi phục session cho %s", user.Email)
	return Snapshot{Token: token, User: user}
}

// Login đăng nhập, lưu session. Lỗi HTTP -> AUTH_FAILED, lỗi mạng -> NETWORK_ERROR.
func (s *Store) Login(ctx context.Context, email, password string) (Snapshot, error) {
	if s.auth == nil {
		return Snapshot{}, errors.NewAppError(errors.ErrCodeAuthFailed, "authentication is not configured", errors.ErrAuthFailed)
	}
	resp, err := s.auth.Login(ctx, dto.LoginInput{Email: strings.TrimSpace(email), Password: password})
	if err != nil {
		return Snapshot{}, authError("Login failed", err)
	}
	return s.accept(resp)
}

// Register tạo tài khoản và đăng nhập luôn bằng token trả về
func (s *Store) Register(ctx context.Context, in dto.RegisterInput) (Snapshot, error) {
	if s.auth == nil {
		return Snapshot{}, errors.NewAppError(errors.ErrCodeAuthFailed, "authentication is not configured", errors.ErrAuthFailed)
	}
	resp, err := s.auth.Register(ctx, in)
	if err != nil {
		return Snapshot{}, authError("Registration failed", err)
	}
	return s.accept(resp)
}

func (s *Store) accept(resp *dto.AuthResponse) (Snapshot, error) {
	if resp == nil || resp.Token == "" {
		return Snapshot{}, errors.NewAppError(errors.ErrCodeAuthFailed, "Invalid response from server", errors.ErrAuthFailed)
	}
	user := resp.User
	user.Normalize()
	if err := s.SetSession(resp.Token, user); err != nil {
		return Snapshot{}, err
	}
	return s.Current(), nil
}

func authError(fallback string, err error) error {
	if api.IsTransport(err) {
		return errors.NewAppError(errors.ErrCodeNetwork, "Unable to reach the server", err)
	}
	msg := fallback
	if httpErr, ok := api.AsHTTPError(err); ok && httpErr.Message != "" {
		msg = httpErr.Message
	}
	appErr := errors.NewAppError(errors.ErrCodeAuthFailed, msg, errors.ErrAuthFailed)
	return appErr
}

// SetSession thay thế toàn bộ session, ghi storage trước rồi mới báo observers
func (s *Store) SetSession(token string, user models.User) error {
	user.Normalize()
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	s.mu.Lock()
	if err := s.storage.Set(ctx, constants.StorageKeyToken, token); err != nil {
		s.mu.Unlock()
		s.log.Error("Không lưu được token: %v", err)
		return errors.NewAppError(errors.ErrCodeAuthFailed, "could not persist session", err)
	}
	if err := s.storage.Set(ctx, constants.StorageKeyUser, string(raw)); err != nil {
		// storage phải khớp với session trong bộ nhớ
		if s.snap.Authenticated() {
			if rerr := s.storage.Set(ctx, constants.StorageKeyToken, s.snap.Token); rerr != nil {
				s.log.Error("Không khôi phục được token cũ: %v", rerr)
			}
		} else {
			s.clear(ctx)
		}
		s.mu.Unlock()
		s.log.Error("Không lưu được user: %v", err)
		return errors.NewAppError(errors.ErrCodeAuthFailed, "could not persist session", err)
	}
	u := user
	s.snap = Snapshot{Token: token, User: &u}
	snap := s.snap
	observers := s.observerList()
	s.mu.Unlock()

	s.log.Info("Đăng nhập với %s (%s)", user.Email, user.Role)
	notify(observers, snap)
	return nil
}

// Logout xoá session, idempotent và không bao giờ trả lỗi
func (s *Store) Logout() {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	s.mu.Lock()
	wasAuthenticated := s.snap.Authenticated()
	s.snap = Snapshot{}
	s.clear(ctx)
	observers := s.observerList()
	s.mu.Unlock()

	if wasAuthenticated {
		s.log.Info("Đã đăng xuất")
		notify(observers, Snapshot{})
	}
}

// HandleUnauthorized đăng xuất nếu err là 401. Trả true khi đã đăng xuất.
func (s *Store) HandleUnauthorized(err error) bool {
	if !api.IsUnauthorized(err) {
		return false
	}
	s.log.Warn("Phiên đăng nhập không còn hợp lệ, đăng xuất")
	s.Logout()
	return true
}

func (s *Store) clear(ctx context.Context) {
	if err := s.storage.Delete(ctx, constants.StorageKeyToken); err != nil {
		s.log.Error("Không xoá được token: %v", err)
	}
	if err := s.storage.Delete(ctx, constants.StorageKeyUser); err != nil {
		s.log.Error("Không xoá được user: %v", err)
	}
}

// Current trả về bản sao snapshot hiện tại
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snap
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// Token implement api.Credentials
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Authenticated()
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Authenticated() && s.snap.User.IsAdmin()
}

// Subscribe đăng ký nhận thông báo mỗi khi session thay đổi
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) observerList() []func(Snapshot) {
	list := make([]func(Snapshot), 0, len(s.observers))
	for _, fn := range s.observers {
		list = append(list, fn)
	}
	return list
}

func notify(observers []func(Snapshot), snap Snapshot) {
	for _, fn := range observers {
		fn(snap)
	}
}

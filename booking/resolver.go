package booking

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"raynott/api"
	"raynott/clock"
	"raynott/models"
	"raynott/services/logger"
	"raynott/validator"
)

const (
	DefaultDebounce       = 500 * time.Millisecond
	DefaultRequestTimeout = 15 * time.Second
)

// AvailabilityChecker gọi GET /rooms/:id/availability
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (bool, error)
}

// Intent là yêu cầu đặt phòng đã được kiểm tra, dựng ngay trước khi gửi
type Intent struct {
	RoomID  string
	HotelID string
	Range   validator.DateRange
	Guests  int
	Price   PriceBreakdown
	Verdict Verdict
}

// Resolver kiểm tra ngày/khách, tính giá và kiểm tra phòng trống (debounce)
// cho một phòng. An toàn khi gọi từ nhiều goroutine.
type Resolver struct {
	room     models.Room
	checker  AvailabilityChecker
	clock    clock.Clock
	debounce time.Duration
	timeout  time.Duration
	log      logger.Logger

	mu         sync.Mutex
	dates      validator.DateRange
	guests     int
	verdict    Verdict
	active     Key
	generation uint64
	timer      *time.Timer
	base       context.Context
	stop       context.CancelFunc
	busy       bool
	idle       chan struct{}
	closed     bool
	observers  map[int]func(Verdict)
	nextObs    int
}

type ResolverOption func(*Resolver)

func WithClock(c clock.Clock) ResolverOption {
	return func(r *Resolver) { r.clock = c }
}

func WithDebounce(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.debounce = d }
}

func WithLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) { r.log = l }
}

func WithRequestTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

func NewResolver(room models.Room, checker AvailabilityChecker, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		room:      room,
		checker:   checker,
		clock:     clock.NewSystem(),
		debounce:  DefaultDebounce,
		timeout:   DefaultRequestTimeout,
		log:       logger.Nop(),
		guests:    1,
		dates:     validator.DateRange{Reason: validator.ReasonMissingDates},
		observers: map[int]func(Verdict){},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.debounce < 0 {
		r.debounce = 0
	}
	r.base, r.stop = context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)
	r.idle = idle
	return r
}

func (r *Resolver) Room() models.Room {
	return r.room
}

// ReturnPath là đường dẫn quay lại sau khi đăng nhập
func (r *Resolver) ReturnPath() string {
	return fmt.Sprintf("/booking/%s/%s", r.room.HotelID(), r.room.ID)
}

// SetRange lưu khoảng ngày mới và kiểm tra ngay. Timer debounce đang chờ bị huỷ,
// verdict quay về NotChecked. Request đang chạy không bị huỷ, kết quả của nó bị bỏ qua
// theo generation. Khoảng hợp lệ sẽ được kiểm tra sau thời gian debounce.
func (r *Resolver) SetRange(checkIn, checkOut string) validator.DateRange {
	r.mu.Lock()
	if r.closed {
		dates := r.dates
		r.mu.Unlock()
		return dates
	}
	r.stopPendingLocked()
	r.generation++
	r.dates = validator.ValidateDateRange(checkIn, checkOut, r.clock.Now())

	if !r.dates.Valid() {
		r.active = Key{}
		r.verdict = Verdict{State: NotChecked}
		r.setIdleLocked()
		dates, v, obs := r.dates, r.verdict, r.observerList()
		r.mu.Unlock()
		r.log.Debug("Khoảng ngày %s..%s không hợp lệ: %s", checkIn, checkOut, dates.Reason)
		notify(obs, v)
		return dates
	}

	key := Key{RoomID: r.room.ID, CheckIn: r.dates.CheckIn, CheckOut: r.dates.CheckOut}
	gen := r.generation
	r.active = key
	r.verdict = Verdict{State: NotChecked, Key: key}
	r.setBusyLocked()
	if r.checker != nil {
		r.timer = time.AfterFunc(r.debounce, func() { r.check(key, gen) })
	} else {
		r.setIdleLocked()
	}
	dates, v, obs := r.dates, r.verdict, r.observerList()
	r.mu.Unlock()

	notify(obs, v)
	return dates
}

func (r *Resolver) check(key Key, gen uint64) {
	r.mu.Lock()
	if r.closed || gen != r.generation || key != r.active {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(r.base, r.timeout)
	r.timer = nil
	r.verdict = Verdict{State: Checking, Key: key}
	v, obs := r.verdict, r.observerList()
	r.mu.Unlock()
	notify(obs, v)

	r.log.Debug("Kiểm tra phòng trống %s", key)
	available, err := r.checker.CheckAvailability(ctx, key.RoomID, key.CheckIn, key.CheckOut)
	cancel()

	r.mu.Lock()
	if r.closed || gen != r.generation || key != r.active {
		r.mu.Unlock()
		r.log.Debug("Bỏ qua kết quả cũ cho %s", key)
		return
	}
	result := r.classify(key, available, err)
	r.verdict = result
	r.setIdleLocked()
	obs = r.observerList()
	r.mu.Unlock()

	notify(obs, result)
}

// classify ánh xạ kết quả kiểm tra thành verdict. Mọi lỗi đều cho phép đặt phòng,
// chỉ available=false mới chặn.
func (r *Resolver) classify(key Key, available bool, err error) Verdict {
	if err == nil {
		if available {
			return Verdict{State: Available, Key: key}
		}
		return Verdict{State: Unavailable, Key: key}
	}

	status := api.StatusOf(err)
	switch {
	case status >= http.StatusInternalServerError:
		r.log.Warn("Kiểm tra phòng trống lỗi server (%d) cho %s, vẫn cho phép đặt", status, key)
		return Verdict{State: Unknown, Reason: ReasonServer, Key: key, Err: err}
	case status == http.StatusNotFound:
		r.log.Debug("Backend không hỗ trợ kiểm tra phòng trống, coi như còn phòng")
		return Verdict{State: Unknown, Reason: ReasonUnsupported, Key: key, Err: err}
	default:
		r.log.Warn("Kiểm tra phòng trống thất bại cho %s: %v", key, err)
		return Verdict{State: Unknown, Reason: ReasonOther, Key: key, Err: err}
	}
}

// SetGuests chỉ nhận 1 <= n <= sức chứa; giá trị cũ được giữ khi lỗi
func (r *Resolver) SetGuests(n int) error {
	if err := validator.ValidateGuests(n, r.room.Capacity); err != nil {
		return err
	}
	r.mu.Lock()
	r.guests = n
	r.mu.Unlock()
	return nil
}

// MarkUnavailable ép verdict thành Unavailable sau khi server từ chối đặt phòng
func (r *Resolver) MarkUnavailable() {
	r.mu.Lock()
	r.stopPendingLocked()
	r.generation++
	r.verdict = Verdict{State: Unavailable, Key: r.active}
	r.setIdleLocked()
	v, obs := r.verdict, r.observerList()
	r.mu.Unlock()
	notify(obs, v)
}

func (r *Resolver) Availability() Verdict {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verdict
}

func (r *Resolver) Validation() validator.DateRange {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dates
}

func (r *Resolver) Guests() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.guests
}

// PriceBreakdown tính lại mỗi lần gọi; bằng 0 khi khoảng ngày không hợp lệ
func (r *Resolver) PriceBreakdown() PriceBreakdown {
	r.mu.Lock()
	dates := r.dates
	r.mu.Unlock()
	if !dates.Valid() {
		return PriceBreakdown{}
	}
	return ComputePrice(r.room.Price, dates.Nights)
}

func (r *Resolver) Intent() Intent {
	r.mu.Lock()
	dates, guests, verdict := r.dates, r.guests, r.verdict
	r.mu.Unlock()

	intent := Intent{
		RoomID:  r.room.ID,
		HotelID: r.room.HotelID(),
		Range:   dates,
		Guests:  guests,
		Verdict: verdict,
	}
	if dates.Valid() {
		intent.Price = ComputePrice(r.room.Price, dates.Nights)
	}
	return intent
}

// WaitSettled chờ tới khi không còn lần kiểm tra nào đang chờ hoặc đang chạy
func (r *Resolver) WaitSettled(ctx context.Context) error {
	r.mu.Lock()
	idle := r.idle
	r.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe nhận mọi thay đổi verdict
func (r *Resolver) Subscribe(fn func(Verdict)) (unsubscribe func()) {
	r.mu.Lock()
	id := r.nextObs
	r.nextObs++
	r.observers[id] = fn
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.observers, id)
			r.mu.Unlock()
		})
	}
}

// Close dừng timer và huỷ request đang chạy
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.stopPendingLocked()
	r.stop()
	r.generation++
	r.setIdleLocked()
}

// stopPendingLocked chỉ dừng timer debounce
func (r *Resolver) stopPendingLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Resolver) setBusyLocked() {
	if !r.busy {
		r.busy = true
		r.idle = make(chan struct{})
	}
}

func (r *Resolver) setIdleLocked() {
	if r.busy {
		r.busy = false
		close(r.idle)
	}
}

func (r *Resolver) observerList() []func(Verdict) {
	list := make([]func(Verdict), 0, len(r.observers))
	for _, fn := range r.observers {
		list = append(list, fn)
	}
	return list
}

func notify(observers []func(Verdict), v Verdict) {
	for _, fn := range observers {
		fn(v)
	}
}

package booking

import "fmt"

// AvailabilityState là trạng thái kiểm tra phòng trống
type AvailabilityState int

const (
	NotChecked AvailabilityState = iota
	Checking
	Available
	Unavailable
	Unknown
)

func (s AvailabilityState) String() string {
	switch s {
	case NotChecked:
		return "not-checked"
	case Checking:
		return "checking"
	case Available:
		return "available"
	case Unavailable:
		return "unavailable"
	case Unknown:
		return "unknown"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Lý do của verdict Unknown
const (
	ReasonServer      = "server"
	ReasonUnsupported = "unsupported"
	ReasonOther       = "other"
)

// Key định danh một lần kiểm tra. Response có key khác key hiện tại bị bỏ qua.
type Key struct {
	RoomID   string
	CheckIn  string
	CheckOut string
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%s..%s]", k.RoomID, k.CheckIn, k.CheckOut)
}

// Verdict là kết quả kiểm tra phòng trống cho một Key
type Verdict struct {
	State  AvailabilityState
	Reason string
	Key    Key
	Err    error
}

// Blocking: chỉ Unavailable mới chặn việc đặt phòng
func (v Verdict) Blocking() bool {
	return v.State == Unavailable
}

// Warning: lỗi server khi kiểm tra, vẫn cho đặt nhưng cần cảnh báo
func (v Verdict) Warning() bool {
	return v.State == Unknown && v.Reason == ReasonServer
}

func (v Verdict) String() string {
	if v.State == Unknown {
		return fmt.Sprintf("unknown(%s)", v.Reason)
	}
	return v.State.String()
}

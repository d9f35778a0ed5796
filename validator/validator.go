package validator

import (
	stderrors "errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode"

	playground "github.com/go-playground/validator/v10"

	"raynott/constants"
	"raynott/dto"
	"raynott/errors"
)

// Lý do không hợp lệ của khoảng ngày
const (
	ReasonMissingDates   = "missing dates"
	ReasonInvalidDate    = "invalid date"
	ReasonCheckInPast    = "checkin past"
	ReasonCheckoutBefore = "checkout before checkin"
	ReasonTooLong        = "too long"
	ReasonTooShort       = "too short"
	ReasonGuests         = "guests"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var (
	structValidator *playground.Validate
	once            sync.Once
)

// forms dùng chung tag "binding" với gin để mock server và client kiểm tra cùng một luật
func forms() *playground.Validate {
	once.Do(func() {
		structValidator = playground.New()
		structValidator.SetTagName("binding")
	})
	return structValidator
}

// DateRange là kết quả kiểm tra khoảng ngày. Reason rỗng nghĩa là hợp lệ.
type DateRange struct {
	CheckIn  string
	CheckOut string
	Nights   int
	Reason   string
}

func (r DateRange) Valid() bool {
	return r.Reason == ""
}

// ValidateDateRange kiểm tra khoảng ngày theo thứ tự: thiếu ngày, ngày nhận đã qua,
// ngày trả trước ngày nhận, quá dài, quá ngắn. today chỉ được so sánh theo ngày.
func ValidateDateRange(checkIn, checkOut string, today time.Time) DateRange {
	r := DateRange{CheckIn: strings.TrimSpace(checkIn), CheckOut: strings.TrimSpace(checkOut)}
	if r.CheckIn == "" || r.CheckOut == "" {
		r.Reason = ReasonMissingDates
		return r
	}

	in, err := time.Parse(constants.DateLayout, r.CheckIn)
	if err != nil {
		r.Reason = ReasonInvalidDate
		return r
	}
	out, err := time.Parse(constants.DateLayout, r.CheckOut)
	if err != nil {
		r.Reason = ReasonInvalidDate
		return r
	}

	y, m, d := today.Date()
	todayDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if in.Before(todayDate) {
		r.Reason = ReasonCheckInPast
		return r
	}
	if !out.After(in) {
		r.Reason = ReasonCheckoutBefore
		return r
	}

	nights := int(math.Ceil(out.Sub(in).Hours() / 24))
	if nights > constants.MaxStayNights {
		r.Reason = ReasonTooLong
		return r
	}
	if nights < constants.MinStayNights {
		r.Reason = ReasonTooShort
		return r
	}
	r.Nights = nights
	return r
}

// ValidateGuests kiểm tra 1 <= n <= capacity (capacity mặc định 2)
func ValidateGuests(n, capacity int) error {
	if capacity <= 0 {
		capacity = constants.DefaultCapacity
	}
	if n < 1 || n > capacity {
		return errors.Validation(ReasonGuests)
	}
	return nil
}

// PasswordStrength chấm điểm mật khẩu 0..5: độ dài >= 8, chữ hoa, chữ thường, số, ký tự đặc biệt
func PasswordStrength(password string) int {
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	score := 0
	for _, ok := range []bool{len(password) >= 8, upper, lower, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// ValidateRegister validate thông tin đăng ký
func ValidateRegister(in dto.RegisterInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Name is required", errors.ErrMissingRequired)
	}
	if strings.TrimSpace(in.Email) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", errors.ErrMissingRequired)
	}
	if !IsValidEmail(in.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Please enter a valid email address", errors.ErrInvalidFormat)
	}
	if in.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Password is required", errors.ErrMissingRequired)
	}
	if in.Password != in.ConfirmPassword {
		return errors.NewAppError(errors.ErrCodePasswordMismatch, "Passwords do not match", errors.ErrInvalidInput)
	}
	if PasswordStrength(in.Password) < 3 {
		return errors.NewAppError(errors.ErrCodeInvalidPassword, "Password is too weak", errors.ErrInvalidInput)
	}
	return nil
}

// ValidateLogin chỉ kiểm tra các trường bắt buộc
func ValidateLogin(in dto.LoginInput) error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email and password are required", errors.ErrMissingRequired)
	}
	return nil
}

// IsValidEmail kiểm tra email hợp lệ
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateHotel validate form khách sạn, loại bỏ ảnh rỗng
func ValidateHotel(req *dto.HotelRequest) error {
	req.Images = compact(req.Images)
	req.Amenities = compact(req.Amenities)
	return validateStruct(req)
}

// ValidateRoom validate form phòng, loại bỏ ảnh rỗng
func ValidateRoom(req *dto.RoomRequest) error {
	req.Images = compact(req.Images)
	req.Amenities = compact(req.Amenities)
	return validateStruct(req)
}

// ValidateStatus kiểm tra trạng thái booking hợp lệ
func ValidateStatus(status string) error {
	switch status {
	case constants.BookingStatusPending, constants.BookingStatusConfirmed, constants.BookingStatusCancelled:
		return nil
	}
	return errors.NewAppError(errors.ErrCodeValidation, fmt.Sprintf("Invalid booking status %q", status), errors.ErrInvalidInput)
}

func validateStruct(v interface{}) error {
	err := forms().Struct(v)
	if err == nil {
		return nil
	}
	if fe, ok := firstFieldError(err); ok {
		return errors.NewAppError(errors.ErrCodeValidation, fieldMessage(fe), errors.ErrInvalidInput)
	}
	return errors.NewAppError(errors.ErrCodeValidation, err.Error(), errors.ErrInvalidInput)
}

// firstFieldError lấy lỗi field đầu tiên, kể cả khi err đã bị wrap
func firstFieldError(err error) (playground.FieldError, bool) {
	var fieldErrs playground.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return nil, false
	}
	return fieldErrs[0], true
}

func fieldMessage(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

func compact(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

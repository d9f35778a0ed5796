package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Booking status
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Durable session storage keys
const (
	StorageKeyToken = "token"
	StorageKeyUser  = "user"
)

// Booking rules
const (
	MaxStayNights   = 30
	MinStayNights   = 1
	DefaultCapacity = 2
	ServiceFeeRate  = 0.10
	TaxRate         = 0.05
	DateLayout      = "2006-01-02"
)

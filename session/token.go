package session

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/goccy/go-json"
)

// tokenExpiry đọc claim exp của JWT mà không kiểm tra chữ ký.
// ok=false khi token không phải JWT hoặc không có exp.
func tokenExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	payload, err := jwt.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, false
	}

	switch exp := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(exp), 0), true
	case json.Number:
		v, err := exp.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(v, 0), true
	}
	return time.Time{}, false
}

// tokenExpired: token là JWT có exp <= now. Token không rõ định dạng được giữ nguyên.
func tokenExpired(token string, now time.Time) bool {
	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}
	return !exp.After(now)
}

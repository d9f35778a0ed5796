package mockapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userID"
	ctxUserRole = "userRole"
)

type UserInfo struct {
	UserID string `json:"userid"`
	Role   string `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// GenerateToken ký access token HS256
func GenerateToken(secret []byte, info UserInfo, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		UserInfo: info,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken kiểm tra chữ ký, hạn dùng và trả về thông tin user
func ParseToken(secret []byte, tokenString string) (UserInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return UserInfo{}, err
	}
	if !token.Valid || claims.UserInfo.UserID == "" {
		return UserInfo{}, fmt.Errorf("invalid token")
	}
	return claims.UserInfo, nil
}

// AuthMiddleware xử lý authentication
func (s *Server) AuthMiddleware(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			Unauthorized(c)
			c.Abort()
			return
		}

		info, err := ParseToken(s.secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			s.log.Debug("Token bị từ chối: %v", err)
			Unauthorized(c)
			c.Abort()
			return
		}

		// user đã bị xoá thì token cũng mất hiệu lực
		user, ok := s.db.user(info.UserID)
		if !ok {
			Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == user.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				Forbidden(c)
				c.Abort()
				return
			}
		}

		// Lưu thông tin user vào context
		c.Set(ctxUserID, user.ID)
		c.Set(ctxUserRole, user.Role)
		c.Next()
	}
}

package models

import (
	"encoding/json"
	"strings"

	"raynott/constants"
)

// User là principal đã xác thực (id, tên, email, vai trò)
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// UnmarshalJSON chấp nhận cả "_id" lẫn "id" và gán vai trò mặc định "user"
func (u *User) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID   string `json:"_id"`
		ID        string `json:"id"`
		Name      string `json:"name"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		CreatedAt string `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = raw.MongoID
	if u.ID == "" {
		u.ID = raw.ID
	}
	u.Name = raw.Name
	u.Email = raw.Email
	u.Role = raw.Role
	u.CreatedAt = raw.CreatedAt
	u.Normalize()
	return nil
}

// Normalize đặt vai trò mặc định khi backend không trả về
func (u *User) Normalize() {
	u.Role = strings.ToLower(strings.TrimSpace(u.Role))
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
}

// IsAdmin kiểm tra vai trò quản trị
func (u User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}

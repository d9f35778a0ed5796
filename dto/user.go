package dto

// UpdateUserRequest cập nhật thông tin user (admin)
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" binding:"omitempty,email"`
	Role  string `json:"role,omitempty" binding:"omitempty,oneof=user admin"`
}

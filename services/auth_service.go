package services

import (
	"context"
	"net/url"

	"raynott/api"
	"raynott/dto"
	"raynott/models"
	"raynott/services/logger"
)

// AuthService bọc các endpoint /auth/*
type AuthService struct {
	client *api.Client
	logger logger.Logger
}

type AuthServiceOptions struct {
	Client *api.Client
	Logger logger.Logger
}

func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &AuthService{client: opts.Client, logger: opts.Logger}
}

// Register gọi POST /auth/register {name,email,password}
func (s *AuthService) Register(ctx context.Context, in dto.RegisterInput) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := s.client.Post(ctx, "/auth/register", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login gọi POST /auth/login {email,password}
func (s *AuthService) Login(ctx context.Context, in dto.LoginInput) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := s.client.Post(ctx, "/auth/login", in, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := s.client.Get(ctx, "/auth/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers (admin)
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.client.Get(ctx, "/auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser (admin)
func (s *AuthService) UpdateUser(ctx context.Context, id string, req dto.UpdateUserRequest) (*models.User, error) {
	var user models.User
	if err := s.client.Put(ctx, "/auth/users/"+url.PathEscape(id), req, &user); err != nil {
		return nil, err
	}
	s.logger.Info("Đã cập nhật user %s", id)
	return &user, nil
}

// DeleteUser (admin)
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/auth/users/"+url.PathEscape(id), nil); err != nil {
		return err
	}
	s.logger.Info("Đã xoá user %s", id)
	return nil
}

// CreateAdmin gọi POST /auth/create-admin
func (s *AuthService) CreateAdmin(ctx context.Context, in dto.CreateAdminInput) (*models.User, error) {
	var resp struct {
		User    *models.User `json:"user"`
		Message string       `json:"message"`
	}
	if err := s.client.Post(ctx, "/auth/create-admin", in, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return &models.User{Name: in.Name, Email: in.Email, Role: "admin"}, nil
	}
	return resp.User, nil
}

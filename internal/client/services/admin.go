package services

import (
	"context"

	"github.com/dmitrijs2005/communityhub/internal/client/client"
	"github.com/dmitrijs2005/communityhub/internal/client/models"
)

// AdminService covers the user management screen.
type AdminService interface {
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	DeleteUser(ctx context.Context, userID int64) error
}

type adminService struct {
	client client.Client
	creds  Credentials
}

func NewAdminService(c client.Client, creds Credentials) AdminService {
	return &adminService{client: c, creds: creds}
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.AdminUser, error) {
	h := s.creds.AuthHeader()
	if h == "" {
		return nil, ErrNotLoggedIn
	}
	return s.client.ListUsers(ctx, h)
}

func (s *adminService) DeleteUser(ctx context.Context, userID int64) error {
	h := s.creds.AuthHeader()
	if h == "" {
		return ErrNotLoggedIn
	}
	return s.client.DeleteUser(ctx, userID, h)
}

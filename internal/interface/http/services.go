package handlers

import (
	"context"

	"github.com/oksasatya/urex-bootcamp/internal/application"
	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
)

// Registrar stores registrations submitted by students.
type Registrar interface {
	Submit(ctx context.Context, in application.SubmitInput) (*application.SubmitResult, error)
}

// Authenticator manages admin sessions.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*application.LoginResult, application.TokenPair, error)
	Session(ctx context.Context, accessToken string) (*application.SessionInfo, error)
	Refresh(ctx context.Context, refreshToken string) (application.TokenPair, error)
	Logout(ctx context.Context, adminID string) error
}

// DashboardReader serves the admin dashboard.
type DashboardReader interface {
	Load(ctx context.Context) (*application.Dashboard, error)
	Page(ctx context.Context, page, size int) (*application.PageResult, error)
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
	Export(ctx context.Context, regs []entity.Registration, format string) (*application.Export, error)
}

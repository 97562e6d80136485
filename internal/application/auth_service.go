package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/urex-bootcamp/internal/domain/entity"
	repo "github.com/oksasatya/urex-bootcamp/internal/domain/repository"
	"github.com/oksasatya/urex-bootcamp/internal/metrics"
	"github.com/oksasatya/urex-bootcamp/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoSession          = errors.New("no active session")
)

// InvalidCredentialsMessage is the only message shown for any credential mismatch.
const InvalidCredentialsMessage = "Invalid credentials"

// LoginUnavailableMessage is shown when valid-looking credentials cannot open a session.
const LoginUnavailableMessage = "Login is temporarily unavailable. Please try again."

const (
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
	AuditLoginError   = "login_error"
	AuditLogout       = "logout"
)

type AuthService struct {
	Admins  repo.AdminRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Metrics *metrics.Metrics
	Logger  *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type LoginResult struct {
	AdminID  string `json:"admin_id"`
	Username string `json:"username"`
}

type SessionInfo struct {
	AdminID   string `json:"admin_id"`
	Username  string `json:"username"`
	SessionID string `json:"-"`
	CreatedAt string `json:"created_at"`
}

type clientKey struct{}

type clientInfo struct {
	IP        string
	UserAgent string
}

// WithClient attaches the caller's address and user agent to ctx for the audit log.
func WithClient(ctx context.Context, ip, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, clientInfo{IP: ip, UserAgent: userAgent})
}

func clientFrom(ctx context.Context) clientInfo {
	ci, _ := ctx.Value(clientKey{}).(clientInfo)
	return ci
}

func NewAuthService(admins repo.AdminRepository, jwt *helpers.JWTManager, rdb *redis.Client, m *metrics.Metrics, logger *logrus.Logger) *AuthService {
	return &AuthService{Admins: admins, JWT: jwt, Redis: rdb, Metrics: m, Logger: logger}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Login verifies the credentials and opens a new session.
// Username matching is exact and case-sensitive. Every mismatch yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, TokenPair, error) {
	a, err := s.authenticate(ctx, username, password)
	if err != nil {
		s.Metrics.ObserveLogin("failure")
		s.audit(ctx, entity.AuditEntry{Username: username, Action: AuditLoginFailure})
		return nil, TokenPair{}, err
	}

	pair, err := s.issue(ctx, a, true)
	if err != nil {
		s.Metrics.ObserveLogin("error")
		s.audit(ctx, entity.AuditEntry{AdminID: a.ID, Username: a.Username, Action: AuditLoginError})
		return nil, TokenPair{}, err
	}
	s.Metrics.ObserveLogin("success")
	s.audit(ctx, entity.AuditEntry{AdminID: a.ID, Username: a.Username, Action: AuditLoginSuccess})
	return &LoginResult{AdminID: a.ID, Username: a.Username}, pair, nil
}

func (s *AuthService) authenticate(ctx context.Context, username, password string) (*entity.Admin, error) {
	if username == "" || password == "" {
		helpers.BurnCompare(password)
		return nil, ErrInvalidCredentials
	}
	a, err := s.Admins.GetByUsername(ctx, username)
	if err != nil || a == nil {
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			helpers.LogError(s.Logger, "admin lookup failed", err, nil)
		}
		helpers.BurnCompare(password)
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// issue signs a fresh token pair under a new session id and records it in Redis.
func (s *AuthService) issue(ctx context.Context, a *entity.Admin, fresh bool) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(a.ID, sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(a.ID, sid)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	fields := map[string]any{
		"admin_id":   a.ID,
		"username":   a.Username,
		"sid":        sid,
		"updated_at": nowRFC3339(),
	}
	if fresh {
		fields["created_at"] = fields["updated_at"]
	}
	if err := helpers.SaveSession(ctx, s.Redis, a.ID, fields); err != nil {
		helpers.LogError(s.Logger, "save session failed", err, logrus.Fields{"admin_id": a.ID})
		return TokenPair{}, fmt.Errorf("save session: %w", err)
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Session resolves an access token to the live session it belongs to.
func (s *AuthService) Session(ctx context.Context, accessToken string) (*SessionInfo, error) {
	if accessToken == "" {
		return nil, ErrNoSession
	}
	claims, err := s.JWT.ParseAccessToken(accessToken)
	if err != nil {
		return nil, ErrNoSession
	}
	data, err := helpers.LoadSession(ctx, s.Redis, claims.AdminID)
	if err != nil {
		helpers.LogError(s.Logger, "session check failed", err, logrus.Fields{"admin_id": claims.AdminID})
		return nil, ErrNoSession
	}
	if len(data) == 0 || data["sid"] != claims.SessionID {
		return nil, ErrNoSession
	}
	return &SessionInfo{
		AdminID:   claims.AdminID,
		Username:  data["username"],
		SessionID: claims.SessionID,
		CreatedAt: data["created_at"],
	}, nil
}

// Refresh validates a refresh token against the live session and rotates the session id and both tokens.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrNoSession
	}
	data, err := helpers.LoadSession(ctx, s.Redis, claims.AdminID)
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return TokenPair{}, ErrNoSession
	}
	a, err := s.Admins.GetByID(ctx, claims.AdminID)
	if err != nil || a == nil {
		return TokenPair{}, ErrNoSession
	}
	return s.issue(ctx, a, false)
}

// Logout ends the admin's session. Callers clear cookies regardless of the result.
func (s *AuthService) Logout(ctx context.Context, adminID string) error {
	if adminID == "" {
		return nil
	}
	s.audit(ctx, entity.AuditEntry{AdminID: adminID, Action: AuditLogout})
	if err := helpers.DeleteSession(ctx, s.Redis, adminID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *AuthService) audit(ctx context.Context, e entity.AuditEntry) {
	ci := clientFrom(ctx)
	e.IP, e.UserAgent = ci.IP, ci.UserAgent
	if err := s.Admins.InsertAudit(ctx, e); err != nil {
		helpers.LogWarn(s.Logger, "audit insert failed", err, logrus.Fields{"action": e.Action})
	}
}

package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	accountrepo "storefront/internal/repository/account"
	sessionrepo "storefront/internal/repository/session"
	"golang.org/x/crypto/bcrypt"
)

// Service handles signup, login, and session resolution. It is the only
// component that sees passwords; everything downstream works with a
// resolved Account carrying a typed role.
type Service struct {
	repo        accountrepo.Repository
	sessions    *sessionManager
	sessionTTL  time.Duration
	passwordMin int
}

// New creates a Service with sane defaults.
func New(repo accountrepo.Repository, sessions sessionrepo.Repository) *Service {
	return &Service{
		repo:        repo,
		sessions:    newSessionManager(sessions),
		sessionTTL:  48 * time.Hour,
		passwordMin: 8,
	}
}

// SignupInput captures fields expected by the signup endpoint.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a new shopper account. The role is always user; the
// only admin is created by the seeder.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*domain.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name required")
	}
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.Invalid("valid email required")
	}
	password := strings.TrimSpace(in.Password)
	if len(password) < s.passwordMin {
		return nil, domain.Invalid("password must be at least %d characters", s.passwordMin)
	}
	// bcrypt rejects inputs over 72 bytes.
	if len(password) > 72 {
		return nil, domain.Invalid("password must be at most 72 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleUser,
	})
}

// Login validates credentials and returns the account plus a session token.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Account, string, error) {
	a, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(ctx, a.ID, s.sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return a, token, nil
}

// Logout revokes a session token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// LookupSession returns the account bound to a valid session token. This
// is the identity contract the rest of the system relies on: a stable
// account with a typed role for the lifetime of the session.
func (s *Service) LookupSession(ctx context.Context, token string) (*domain.Account, error) {
	accountID, ok := s.sessions.Validate(ctx, token)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	a, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return a, nil
}

// SessionTTLSeconds exposes the session lifetime in seconds.
func (s *Service) SessionTTLSeconds() int {
	return int(s.sessionTTL.Seconds())
}

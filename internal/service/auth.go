package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wastewise-pickup-demo/internal/dto"
	"wastewise-pickup-demo/internal/model"
	"wastewise-pickup-demo/internal/repository"
)

// AuthService is the session store: it owns user identity, bearer tokens and
// the point balance. A missing, corrupt or revoked token degrades to "no
// session" instead of an error.
type AuthService interface {
	Register(ctx context.Context, name, email, password, confirm string) (*dto.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string)
	CurrentUser(ctx context.Context, token string) (*model.User, error)
	// AwardPoints credits points to a user. False means there was no user to
	// credit and the points were dropped, not queued. Calling it twice for
	// one contribution double-credits; callers call it exactly once per
	// successful payment.
	AwardPoints(ctx context.Context, userID string, points int, source string) bool
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret []byte

	mu      sync.Mutex
	revoked map[string]struct{} // revoked token IDs; in-memory, reset on restart
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		revoked:   make(map[string]struct{}),
	}
}

func (s *authServiceImpl) Register(ctx context.Context, name, email, password, confirm string) (*dto.AuthResponse, error) {
	if name == "" || email == "" || password == "" || confirm == "" {
		return nil, fmt.Errorf("all fields are required")
	}
	if password != confirm {
		return nil, fmt.Errorf("passwords do not match")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered")
	}

	user := &model.User{
		ID:    newUserID(),
		Email: email,
		Name:  name,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.startSession(user)
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("invalid email format")
	}

	// Demo auth: any email/password pair is accepted. A first login creates
	// the account; later logins keep the accumulated points.
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		user = &model.User{
			ID:    newUserID(),
			Email: email,
			Name:  strings.SplitN(email, "@", 2)[0],
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	return s.startSession(user)
}

func (s *authServiceImpl) Logout(_ context.Context, token string) {
	claims := s.parseToken(token)
	if claims == nil {
		return // already no session
	}

	s.mu.Lock()
	s.revoked[claims.ID] = struct{}{}
	s.mu.Unlock()
}

func (s *authServiceImpl) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims := s.parseToken(token)
	if claims == nil {
		return nil, nil
	}

	s.mu.Lock()
	_, isRevoked := s.revoked[claims.ID]
	s.mu.Unlock()
	if isRevoked {
		return nil, nil
	}

	user, err := s.userRepo.FindByID(ctx, claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // stale subject degrades to no session
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return user, nil
}

func (s *authServiceImpl) AwardPoints(ctx context.Context, userID string, points int, source string) bool {
	if userID == "" {
		return false
	}

	ok, err := s.userRepo.AddPoints(ctx, userID, points, source)
	if err != nil {
		return false
	}

	return ok
}

func (s *authServiceImpl) startSession(user *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserInfo{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Points: user.Points,
		},
	}, nil
}

// parseToken returns nil for empty, malformed, expired or wrongly signed
// tokens.
func (s *authServiceImpl) parseToken(token string) *jwt.RegisteredClaims {
	if token == "" {
		return nil
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}

	return claims
}

func newUserID() string {
	return fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

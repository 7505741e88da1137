package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admindash/internal/auth"
	"admindash/internal/cache"
	apperrors "admindash/internal/errors"
	"admindash/internal/model"
	"admindash/internal/repository"
)

// AdminInput carries the fields needed to seed an admin.
type AdminInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, admin *model.Admin, err error)
	VerifyToken(ctx context.Context, token string) (*model.Admin, error)
	ResolveAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	CreateAdmin(ctx context.Context, input AdminInput) (*model.Admin, error)
}

type authService struct {
	adminRepo  repository.AdminRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service. cache may be nil;
// when set, creating an admin drops the cached admin statistics.
func NewAuthService(adminRepo repository.AdminRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

// dummyHash is compared against when the email is unknown so both login
// failure paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := auth.HashPassword("not-a-real-password")
	return h
})

// Login authenticates an admin and returns a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.Admin, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = auth.ComparePassword(dummyHash(), password)
			return "", nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find admin: %w", err)
	}

	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(admin.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, admin, nil
}

// VerifyToken re-validates a token and returns the admin it belongs to.
func (s *authService) VerifyToken(ctx context.Context, token string) (*model.Admin, error) {
	if token == "" {
		return nil, apperrors.ErrNoToken
	}

	adminID, err := s.jwtService.Verify(token)
	if err != nil {
		return nil, err
	}

	return s.ResolveAdmin(ctx, adminID)
}

// ResolveAdmin loads the admin with the given id.
func (s *authService) ResolveAdmin(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	admin, err := s.adminRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return admin, nil
}

// CreateAdmin stores a new admin with a hashed password.
func (s *authService) CreateAdmin(ctx context.Context, input AdminInput) (*model.Admin, error) {
	input.Email = model.NormalizeEmail(input.Email)
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := s.adminRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrAdminExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check admin existence: %w", err)
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := input.Role
	if role == "" {
		role = model.RoleAdmin
	}

	admin := &model.Admin{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAdminExists
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}

	_ = s.cache.Delete(ctx, adminStatsCacheKey)
	return admin, nil
}

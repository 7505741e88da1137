package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"admindash/internal/auth"
	apperrors "admindash/internal/errors"
	"admindash/internal/model"
)

// MockAdminRepository is a mock implementation of AdminRepository.
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	args := m.Called(ctx, admin)
	return args.Error(0)
}

func (m *MockAdminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Admin), args.Error(1)
}

func (m *MockAdminRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAdminRepository) GroupByRole(ctx context.Context) ([]model.RoleCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RoleCount), args.Error(1)
}

func seededAdmin(t *testing.T, password string) *model.Admin {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), auth.BcryptCost)
	require.NoError(t, err)
	return &model.Admin{
		ID:           uuid.New(),
		Name:         "Admin User",
		Email:        "admin@gmail.com",
		PasswordHash: string(hashed),
		Role:         model.RoleAdmin,
	}
}

func TestAuthService_Login(t *testing.T) {
	admin := seededAdmin(t, "admin123")

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "admin@gmail.com",
			password: "admin123",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(admin, nil)
			},
		},
		{
			name:     "email is case-normalized",
			email:    "  Admin@Gmail.com ",
			password: "admin123",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(admin, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "admin@gmail.com",
			password: "wrong",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(admin, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "notfound@gmail.com",
			password: "admin123",
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "notfound@gmail.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:          "empty credentials",
			email:         "",
			password:      "",
			setupMock:     func(m *MockAdminRepository) {},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService, nil)

			token, got, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, admin.ID, got.ID)

				adminID, err := jwtService.Verify(token)
				require.NoError(t, err)
				assert.Equal(t, admin.ID, adminID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	admin := seededAdmin(t, "admin123")
	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(admin, nil)
	mockRepo.On("FindByEmail", mock.Anything, "ghost@gmail.com").Return(nil, gorm.ErrRecordNotFound)

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil)

	_, _, wrongPassword := service.Login(context.Background(), "admin@gmail.com", "nope")
	_, _, unknownEmail := service.Login(context.Background(), "ghost@gmail.com", "admin123")

	assert.Equal(t, wrongPassword, unknownEmail)
	assert.Equal(t, apperrors.MapErrorToHTTP(wrongPassword), apperrors.MapErrorToHTTP(unknownEmail))
}

func TestAuthService_LoginStorageFailure(t *testing.T) {
	mockRepo := new(MockAdminRepository)
	mockRepo.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(nil, errors.New("connection refused"))

	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil)
	_, _, err := service.Login(context.Background(), "admin@gmail.com", "admin123")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestAuthService_VerifyToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	admin := seededAdmin(t, "admin123")
	validToken, err := jwtService.Issue(admin.ID)
	require.NoError(t, err)
	orphanID := uuid.New()
	orphanToken, err := jwtService.Issue(orphanID)
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockAdminRepository)
		expectedError error
	}{
		{
			name:  "valid token",
			token: validToken,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, admin.ID).Return(admin, nil)
			},
		},
		{
			name:          "missing token",
			token:         "",
			setupMock:     func(m *MockAdminRepository) {},
			expectedError: apperrors.ErrNoToken,
		},
		{
			name:          "malformed token",
			token:         "garbage",
			setupMock:     func(m *MockAdminRepository) {},
			expectedError: apperrors.ErrInvalidToken,
		},
		{
			name:  "admin no longer exists",
			token: orphanToken,
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByID", mock.Anything, orphanID).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrAdminNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, jwtService, nil)
			got, err := service.VerifyToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, admin.ID, got.ID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_CreateAdmin(t *testing.T) {
	tests := []struct {
		name          string
		input         AdminInput
		setupMock     func(*MockAdminRepository)
		expectedError error
		validation    bool
	}{
		{
			name:  "creates admin with hashed password",
			input: AdminInput{Name: "Admin User", Email: "Admin@Gmail.com", Password: "admin123"},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Admin")).Return(nil)
			},
		},
		{
			name:  "email already taken",
			input: AdminInput{Name: "Admin User", Email: "admin@gmail.com", Password: "admin123"},
			setupMock: func(m *MockAdminRepository) {
				m.On("FindByEmail", mock.Anything, "admin@gmail.com").Return(&model.Admin{Email: "admin@gmail.com"}, nil)
			},
			expectedError: apperrors.ErrAdminExists,
		},
		{
			name:       "password too short",
			input:      AdminInput{Name: "Admin User", Email: "admin@gmail.com", Password: "123"},
			setupMock:  func(m *MockAdminRepository) {},
			validation: true,
		},
		{
			name:       "invalid email",
			input:      AdminInput{Name: "Admin User", Email: "not-an-email", Password: "admin123"},
			setupMock:  func(m *MockAdminRepository) {},
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAdminRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil)
			admin, err := service.CreateAdmin(context.Background(), tt.input)

			switch {
			case tt.validation:
				assert.True(t, apperrors.IsValidation(err), "expected validation error, got %v", err)
				assert.Nil(t, admin)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, admin)
			default:
				require.NoError(t, err)
				assert.Equal(t, "admin@gmail.com", admin.Email)
				assert.Equal(t, model.RoleAdmin, admin.Role)
				assert.NoError(t, auth.ComparePassword(admin.PasswordHash, tt.input.Password))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

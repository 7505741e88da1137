package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"admindash/internal/db"
	apperrors "admindash/internal/errors"
	"admindash/internal/model"
	"admindash/internal/repository"
)

// MockCustomerRepository is a mock implementation of CustomerRepository.
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, customer *model.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Customer), args.Error(1)
}

func (m *MockCustomerRepository) List(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func newSQLiteCustomerService(t *testing.T) CustomerService {
	t.Helper()
	gormDB, err := db.NewSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))
	return NewCustomerService(repository.NewCustomerRepository(gormDB))
}

func janeInput() model.CustomerInput {
	return model.CustomerInput{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "+1 555 0100",
		Address: "1 Main St",
	}
}

func strPtr(s string) *string { return &s }

func TestCustomerService_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.CustomerInput)
		message string
	}{
		{"missing name", func(in *model.CustomerInput) { in.Name = "" }, "name is required"},
		{"missing email", func(in *model.CustomerInput) { in.Email = "" }, "email is required"},
		{"missing phone", func(in *model.CustomerInput) { in.Phone = "" }, "phone is required"},
		{"missing address", func(in *model.CustomerInput) { in.Address = "" }, "address is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockCustomerRepository)
			service := NewCustomerService(mockRepo)

			input := janeInput()
			tt.mutate(&input)
			customer, err := service.Create(context.Background(), input)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
			assert.Nil(t, customer)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCustomerService_CreateDuplicateFromUniqueIndex(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Customer")).Return(gorm.ErrDuplicatedKey)

	customer, err := NewCustomerService(mockRepo).Create(context.Background(), janeInput())

	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, customer)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_UpdateRacingDelete(t *testing.T) {
	existing := &model.Customer{ID: uuid.New(), Name: "Jane Doe", Email: "jane@example.com", Phone: "1", Address: "a"}
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, existing).Return(gorm.ErrRecordNotFound)

	customer, err := NewCustomerService(mockRepo).Update(context.Background(), existing.ID, model.CustomerPatch{Name: strPtr("X")})

	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
	assert.Nil(t, customer)
	mockRepo.AssertExpectations(t)
}

func TestCustomerService_StorageFailureIsNotValidation(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	mockRepo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := NewCustomerService(mockRepo).List(context.Background())

	require.Error(t, err)
	assert.False(t, apperrors.IsValidation(err))
	assert.Equal(t, 500, apperrors.MapErrorToHTTP(err).StatusCode)
}

func TestCustomerService_CreateThenList(t *testing.T) {
	service := newSQLiteCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, janeInput())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	all, err := service.List(ctx)
	require.NoError(t, err)

	matches := 0
	for _, c := range all {
		if c.ID == created.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestCustomerService_DuplicateEmailLeavesPriorRecord(t *testing.T) {
	service := newSQLiteCustomerService(t)
	ctx := context.Background()

	first, err := service.Create(ctx, janeInput())
	require.NoError(t, err)

	dup := janeInput()
	dup.Name = "Impostor"
	_, err = service.Create(ctx, dup)
	assert.True(t, apperrors.IsValidation(err))

	all, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, first.ID, all[0].ID)
	assert.Equal(t, "Jane Doe", all[0].Name)
}

func TestCustomerService_UpdateChangesOnlyProvidedFields(t *testing.T) {
	service := newSQLiteCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, janeInput())
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, model.CustomerPatch{Name: strPtr("X")})
	require.NoError(t, err)

	assert.Equal(t, "X", updated.Name)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Phone, updated.Phone)
	assert.Equal(t, created.Address, updated.Address)

	all, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "X", all[0].Name)
	assert.Equal(t, created.Email, all[0].Email)
}

func TestCustomerService_UpdateErrors(t *testing.T) {
	service := newSQLiteCustomerService(t)
	ctx := context.Background()

	jane, err := service.Create(ctx, janeInput())
	require.NoError(t, err)
	other := janeInput()
	other.Email = "john@example.com"
	_, err = service.Create(ctx, other)
	require.NoError(t, err)

	_, err = service.Update(ctx, uuid.New(), model.CustomerPatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)

	_, err = service.Update(ctx, jane.ID, model.CustomerPatch{Phone: strPtr("")})
	assert.True(t, apperrors.IsValidation(err))

	_, err = service.Update(ctx, jane.ID, model.CustomerPatch{Email: strPtr("john@example.com")})
	assert.True(t, apperrors.IsValidation(err))

	// keeping its own email is not a collision
	same, err := service.Update(ctx, jane.ID, model.CustomerPatch{Email: strPtr("jane@example.com"), Phone: strPtr("555")})
	require.NoError(t, err)
	assert.Equal(t, "555", same.Phone)
}

func TestCustomerService_DeleteIsNotIdempotent(t *testing.T) {
	service := newSQLiteCustomerService(t)
	ctx := context.Background()

	created, err := service.Create(ctx, janeInput())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), apperrors.ErrCustomerNotFound)
}

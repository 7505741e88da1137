package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "admindash/internal/errors"
	"admindash/internal/model"
	"admindash/internal/repository"
)

// CustomerService exposes customer CRUD.
type CustomerService interface {
	List(ctx context.Context) ([]model.Customer, error)
	Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id uuid.UUID, patch model.CustomerPatch) (*model.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

// NewCustomerService creates a new customer service.
func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// List returns all customers, newest first.
func (s *customerService) List(ctx context.Context) ([]model.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// Create validates and stores a new customer.
func (s *customerService) Create(ctx context.Context, input model.CustomerInput) (*model.Customer, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, uuid.Nil); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateEmail(input.Email)
		}
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customer, nil
}

// Update overwrites the provided fields of an existing customer.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, patch model.CustomerPatch) (*model.Customer, error) {
	customer, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Email != nil && *patch.Email != customer.Email {
		if err := s.ensureEmailFree(ctx, *patch.Email, customer.ID); err != nil {
			return nil, err
		}
	}

	patch.Apply(customer)
	if err := s.repo.Update(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateEmail(customer.Email)
		}
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete permanently removes a customer. Deleting a missing id fails with
// ErrCustomerNotFound every time.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	customer, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCustomerNotFound
		}
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

func (s *customerService) find(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}

// ensureEmailFree fails when another customer than self already uses email.
func (s *customerService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("check customer email: %w", err)
	}
	if existing.ID != self {
		return duplicateEmail(email)
	}
	return nil
}

func validatePatch(p model.CustomerPatch) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"name", p.Name},
		{"email", p.Email},
		{"phone", p.Phone},
		{"address", p.Address},
	}
	for _, f := range fields {
		if f.value != nil && *f.value == "" {
			return apperrors.NewValidationError(fmt.Sprintf("%s is required", f.name))
		}
	}
	return nil
}

func duplicateEmail(email string) error {
	return apperrors.NewValidationError(fmt.Sprintf("a customer with email %s already exists", email))
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admindash/internal/model"
)

// CustomerRepository defines customer persistence operations.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	List(ctx context.Context) ([]model.Customer, error)
}

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository.
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create inserts a customer. A taken email surfaces as gorm.ErrDuplicatedKey.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update writes the editable columns of an existing customer. It never
// inserts: a row deleted since it was read yields gorm.ErrRecordNotFound.
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	db := r.db.WithContext(ctx)
	res := db.Model(customer).
		Select("name", "email", "phone", "address", "updated_at").
		Updates(customer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// MySQL reports 0 rows for an update that changed nothing.
	var n int64
	if err := db.Model(&model.Customer{}).Where("id = ?", customer.ID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the customer row permanently.
func (r *customerRepository) Delete(ctx context.Context, customer *model.Customer) error {
	res := r.db.WithContext(ctx).Delete(customer)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a customer by ID.
func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindByEmail finds a customer by exact email.
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns every customer, newest first.
func (r *customerRepository) List(ctx context.Context) ([]model.Customer, error) {
	customers := []model.Customer{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admindash/internal/model"
)

// AdminRepository defines credential store operations.
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	GroupByRole(ctx context.Context) ([]model.RoleCount, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository builds a GORM-backed repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// FindByEmail looks the admin up by its case-normalized email.
func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Admin{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *adminRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Admin{}).Where("role = ?", role).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// GroupByRole returns one bucket per distinct role, ordered by role name.
func (r *adminRepository) GroupByRole(ctx context.Context) ([]model.RoleCount, error) {
	counts := []model.RoleCount{}
	if err := r.db.WithContext(ctx).Model(&model.Admin{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

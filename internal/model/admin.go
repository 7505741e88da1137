package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoleAdmin is the only role issued today.
const RoleAdmin = "admin"

// Admin represents a dashboard operator allowed to sign in.
type Admin struct {
	ID           uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:50;not null;default:'admin';index"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeEmail trims and lowercases an email address the way admins are stored.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BeforeCreate sets UUID and defaults before creating the record.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return nil
}

// BeforeSave keeps the stored email case-normalized.
func (a *Admin) BeforeSave(tx *gorm.DB) error {
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// RoleCount is one bucket of the admins-by-role aggregation.
type RoleCount struct {
	Role  string `json:"_id" gorm:"column:role"`
	Count int64  `json:"count" gorm:"column:count"`
}

// AdminStats summarises the admin population for the dashboard.
type AdminStats struct {
	TotalAdmins  int64       `json:"totalAdmins"`
	ActiveAdmins int64       `json:"activeAdmins"`
	AdminsByRole []RoleCount `json:"adminsByRole"`
}

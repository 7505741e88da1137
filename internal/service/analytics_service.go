package service

import (
	"context"
	"fmt"
	"time"

	"admindash/internal/cache"
	"admindash/internal/model"
	"admindash/internal/repository"
)

const adminStatsCacheKey = "analytics:admins"

// AnalyticsService computes dashboard statistics.
type AnalyticsService interface {
	AdminStats(ctx context.Context) (*model.AdminStats, error)
}

type analyticsService struct {
	adminRepo repository.AdminRepository
	cache     *cache.Client
	ttl       time.Duration
}

// NewAnalyticsService builds an AnalyticsService. A nil cache or zero ttl
// disables caching.
func NewAnalyticsService(adminRepo repository.AdminRepository, cache *cache.Client, ttl time.Duration) AnalyticsService {
	return &analyticsService{adminRepo: adminRepo, cache: cache, ttl: ttl}
}

// AdminStats counts admins in total, with the admin role, and per role.
func (s *analyticsService) AdminStats(ctx context.Context) (*model.AdminStats, error) {
	if s.ttl > 0 {
		var cached model.AdminStats
		if s.cache.GetJSON(ctx, adminStatsCacheKey, &cached) {
			return &cached, nil
		}
	}

	total, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	active, err := s.adminRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("count active admins: %w", err)
	}
	byRole, err := s.adminRepo.GroupByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("group admins by role: %w", err)
	}

	stats := &model.AdminStats{
		TotalAdmins:  total,
		ActiveAdmins: active,
		AdminsByRole: byRole,
	}

	if s.ttl > 0 {
		_ = s.cache.SetJSON(ctx, adminStatsCacheKey, stats, s.ttl)
	}
	return stats, nil
}

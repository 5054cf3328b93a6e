package repository

import (
	"context"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// StatsRepository reads the dashboard aggregate counters.
type StatsRepository struct {
	client apiClient
	store  *cache.Store
}

// NewStatsRepository constructs a StatsRepository.
func NewStatsRepository(client apiClient, store *cache.Store) *StatsRepository {
	return &StatsRepository{client: client, store: store}
}

// Dashboard returns the stat-card counters, served from cache when fresh.
func (r *StatsRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	key := cache.ListKey(cache.CollectionDashboard)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) (*models.DashboardStats, error) {
		var stats models.DashboardStats
		if err := r.client.Get(ctx, "/stats/dashboard", &stats, "could not load dashboard stats"); err != nil {
			return nil, err
		}
		return &stats, nil
	})
}

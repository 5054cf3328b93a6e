package repository

import (
	"context"
	"fmt"

	"github.com/SawaDev/remix-of-eduadmin-pro/internal/cache"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/dto"
	"github.com/SawaDev/remix-of-eduadmin-pro/internal/models"
)

// PaymentRepository reads payments and edits payment periods. Day counts and
// statuses are computed server-side.
type PaymentRepository struct {
	client apiClient
	store  *cache.Store
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(client apiClient, store *cache.Store) *PaymentRepository {
	return &PaymentRepository{client: client, store: store}
}

// List returns payment records matching the filter, served from cache when fresh.
func (r *PaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, error) {
	q := newListQuery().
		set("search", filter.Search).
		set("status", string(filter.Status)).
		setInt("page", filter.Page).
		setInt("page_size", filter.PageSize)

	key := cache.FilterKey(cache.CollectionPayments, q.encode())
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) ([]models.Payment, error) {
		var payments []models.Payment
		if err := r.client.Get(ctx, q.path("/payments"), &payments, "could not load payments"); err != nil {
			return nil, err
		}
		return payments, nil
	})
}

// Stats returns the aggregate payment counters.
func (r *PaymentRepository) Stats(ctx context.Context) (*models.PaymentStats, error) {
	key := cache.ListKey(cache.CollectionPaymentStats)
	return cache.Fetch(ctx, r.store, key, func(ctx context.Context) (*models.PaymentStats, error) {
		var stats models.PaymentStats
		if err := r.client.Get(ctx, "/payments/stats", &stats, "could not load payment stats"); err != nil {
			return nil, err
		}
		return &stats, nil
	})
}

// UpdatePeriod edits the payment record's date range.
func (r *PaymentRepository) UpdatePeriod(ctx context.Context, id int64, req dto.PaymentPeriodRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := r.client.Patch(ctx, fmt.Sprintf("/payments/%d/period", id), req, &payment, "could not update payment period"); err != nil {
		return nil, err
	}
	return &payment, nil
}

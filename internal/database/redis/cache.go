package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/hotelease/backend/internal/entity"
)

const (
	rateCardsKey     = "hotelease:rate_cards"
	occupancyKey     = "hotelease:occupancy"
	reviewSummaryKey = "hotelease:review_summary"
)

// CacheRepository кеширует редко меняющиеся витринные данные:
// прайс-лист, занятость номеров и сводку отзывов
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheRepository(client *redis.Client, ttl time.Duration) *CacheRepository {
	return &CacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CacheRepository) SetRateCards(ctx context.Context, cards []entity.RateCard) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, rateCardsKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetRateCards(ctx context.Context) ([]entity.RateCard, error) {
	data, err := r.client.Get(ctx, rateCardsKey).Result()
	if err != nil {
		return nil, err
	}

	var cards []entity.RateCard
	if err := json.Unmarshal([]byte(data), &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CacheRepository) SetOccupancy(ctx context.Context, stats *entity.OccupancyStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, occupancyKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetOccupancy(ctx context.Context) (*entity.OccupancyStats, error) {
	data, err := r.client.Get(ctx, occupancyKey).Result()
	if err != nil {
		return nil, err
	}

	var stats entity.OccupancyStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// InvalidateOccupancy drops the cached occupancy after a booking mutation
// flips a room's availability.
func (r *CacheRepository) InvalidateOccupancy(ctx context.Context) error {
	return r.client.Del(ctx, occupancyKey).Err()
}

func (r *CacheRepository) SetReviewSummary(ctx context.Context, summary *entity.ReviewSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, reviewSummaryKey, data, r.ttl).Err()
}

func (r *CacheRepository) GetReviewSummary(ctx context.Context) (*entity.ReviewSummary, error) {
	data, err := r.client.Get(ctx, reviewSummaryKey).Result()
	if err != nil {
		return nil, err
	}

	var summary entity.ReviewSummary
	if err := json.Unmarshal([]byte(data), &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *CacheRepository) InvalidateReviewSummary(ctx context.Context) error {
	return r.client.Del(ctx, reviewSummaryKey).Err()
}

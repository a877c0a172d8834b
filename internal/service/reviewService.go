package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	repository "github.com/hotelease/backend/internal/database/postgres"
	"github.com/hotelease/backend/internal/database/redis"
	"github.com/hotelease/backend/internal/entity"
)

// SubmitReviewRequest представляет данные отзыва гостя
type SubmitReviewRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	PhotoURL string `json:"photo_url"`
	Rating   int    `json:"rating" binding:"required"`
	Comment  string `json:"comment" binding:"required,max=2000"`
	Location string `json:"location" binding:"max=100"`
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	cacheRepo  *redis.CacheRepository
}

// NewReviewService создает новый экземпляр ReviewService
func NewReviewService(reviewRepo repository.ReviewRepository, cacheRepo *redis.CacheRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		cacheRepo:  cacheRepo,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, req *SubmitReviewRequest) (*entity.Review, error) {
	review := &entity.Review{
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Location: req.Location,
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Сводка по звездам изменилась, сбрасываем кеш
	if s.cacheRepo != nil {
		if err := s.cacheRepo.InvalidateReviewSummary(ctx); err != nil {
			logrus.Warnf("Failed to invalidate review summary cache: %v", err)
		}
	}

	logrus.Infof("Review submitted: guest=%s, rating=%d", review.Name, review.Rating)
	return review, nil
}

func (s *reviewService) GetAllReviews(ctx context.Context) ([]*entity.Review, error) {
	reviews, err := s.reviewRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

// GetRecentReviews возвращает последние отзывы для главной страницы
func (s *reviewService) GetRecentReviews(ctx context.Context, limit int) ([]*entity.Review, error) {
	if limit <= 0 {
		limit = 6
	}

	reviews, err := s.reviewRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewSummary возвращает агрегированную оценку со звездными иконками
func (s *reviewService) GetReviewSummary(ctx context.Context) (*entity.ReviewSummary, error) {
	if s.cacheRepo != nil {
		if summary, err := s.cacheRepo.GetReviewSummary(ctx); err == nil {
			return summary, nil
		}
	}

	summary, err := s.reviewRepo.GetSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get review summary: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetReviewSummary(ctx, summary); err != nil {
			logrus.Warnf("Failed to cache review summary: %v", err)
		}
	}

	return summary, nil
}

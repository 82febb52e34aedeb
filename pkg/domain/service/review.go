package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"marketplace/pkg/domain/model"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type ReviewService interface {
	PostReview(ctx context.Context, productID, userID uuid.UUID, rating int, comment string) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error)
}

func NewReviewService(uow model.UnitOfWork, dispatcher EventDispatcher) ReviewService {
	return &reviewService{uow: uow, dispatcher: dispatcher}
}

type reviewService struct {
	uow        model.UnitOfWork
	dispatcher EventDispatcher
}

func (s *reviewService) PostReview(ctx context.Context, productID, userID uuid.UUID, rating int, comment string) (*model.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var review *model.Review
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Products().Find(ctx, productID); err != nil {
			return err
		}
		if _, err := r.Users().Find(ctx, userID); err != nil {
			return err
		}

		reviewID, err := r.Reviews().NextID()
		if err != nil {
			return err
		}
		review = &model.Review{
			ID:         reviewID,
			ProductID:  productID,
			UserID:     userID,
			Rating:     rating,
			Comment:    comment,
			ReviewDate: time.Now().UTC(),
		}
		return r.Reviews().Create(ctx, review)
	})
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ReviewPosted{
		ReviewID:  review.ID,
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
	})
	return review, nil
}

func (s *reviewService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Products().Find(ctx, productID); err != nil {
			return err
		}
		var err error
		reviews, err = r.Reviews().ListByProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *reviewService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		reviews, err = r.Reviews().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

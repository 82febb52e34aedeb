package tests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/pkg/domain/model"
	"marketplace/pkg/domain/service"
)

func setupReviewService(t *testing.T) (service.ReviewService, *memoryStore, *mockEventDispatcher) {
	t.Helper()
	store := newMemoryStore()
	dispatcher := &mockEventDispatcher{}
	reviewService := service.NewReviewService(&mockUnitOfWork{store: store}, dispatcher)
	return reviewService, store, dispatcher
}

func seedUser(store *memoryStore, username string) model.User {
	user := model.User{ID: uuid.New(), Username: username, CreatedAt: time.Now().UTC()}
	store.users[user.ID] = user
	return user
}

func TestPostReview(t *testing.T) {
	reviewService, store, dispatcher := setupReviewService(t)
	product := seedProduct(store, "10.00", 1)
	user := seedUser(store, "alice")

	t.Run("Success", func(t *testing.T) {
		review, err := reviewService.PostReview(context.Background(), product.ID, user.ID, 4, "good value")

		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
		assert.Equal(t, "good value", review.Comment)

		saved, ok := store.reviews[review.ID]
		require.True(t, ok)
		assert.Equal(t, product.ID, saved.ProductID)

		events := dispatcher.Events()
		require.Len(t, events, 1)
		event, ok := events[0].(model.ReviewPosted)
		require.True(t, ok)
		assert.Equal(t, review.ID, event.ReviewID)
	})

	t.Run("Fail on out-of-range rating", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			_, err := reviewService.PostReview(context.Background(), product.ID, user.ID, rating, "")
			assert.ErrorIs(t, err, service.ErrInvalidRating)
		}
	})

	t.Run("Fail on unknown product", func(t *testing.T) {
		_, err := reviewService.PostReview(context.Background(), uuid.New(), user.ID, 3, "")
		var notFound model.ProductNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Fail on unknown user", func(t *testing.T) {
		_, err := reviewService.PostReview(context.Background(), product.ID, uuid.New(), 3, "")
		assert.ErrorIs(t, err, model.ErrUserNotFound)
	})
}

func TestListReviews(t *testing.T) {
	reviewService, store, _ := setupReviewService(t)
	product := seedProduct(store, "10.00", 1)
	other := seedProduct(store, "20.00", 1)
	user := seedUser(store, "alice")

	_, err := reviewService.PostReview(context.Background(), product.ID, user.ID, 5, "")
	require.NoError(t, err)
	_, err = reviewService.PostReview(context.Background(), other.ID, user.ID, 2, "")
	require.NoError(t, err)

	byProduct, err := reviewService.ListByProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	byUser, err := reviewService.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	_, err = reviewService.ListByProduct(context.Background(), uuid.New())
	var notFound model.ProductNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

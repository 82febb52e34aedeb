package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"marketplace/pkg/domain/model"
)

type createReviewRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

type reviewResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	UserID     uuid.UUID `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	ReviewDate string    `json:"review_date"`
}

func toReviewResponse(review *model.Review) reviewResponse {
	return reviewResponse{
		ID:         review.ID,
		ProductID:  review.ProductID,
		UserID:     review.UserID,
		Rating:     review.Rating,
		Comment:    review.Comment,
		ReviewDate: review.ReviewDate.Format(time.RFC3339),
	}
}

func (h *Handler) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var body createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	review, err := h.reviews.PostReview(r.Context(), body.ProductID, body.UserID, body.Rating, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

func (h *Handler) listReviewsByProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeReviewList(w, reviews)
}

func (h *Handler) listReviewsByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	reviews, err := h.reviews.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeReviewList(w, reviews)
}

func writeReviewList(w http.ResponseWriter, reviews []model.Review) {
	responses := make([]reviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, toReviewResponse(&reviews[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

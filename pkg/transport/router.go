package transport

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"marketplace/pkg/domain/service"
)

func Router(users service.UserService, products service.ProductService, orders service.OrderService, reviews service.ReviewService) http.Handler {
	handler := &Handler{
		users:    users,
		products: products,
		orders:   orders,
		reviews:  reviews,
	}

	r := mux.NewRouter()
	r.HandleFunc("/register", handler.registerHandler).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}/orders", handler.listOrdersByBuyerHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/reviews", handler.listReviewsByUserHandler).Methods(http.MethodGet)

	r.HandleFunc("/categories", handler.createCategoryHandler).Methods(http.MethodPost)
	r.HandleFunc("/categories", handler.listCategoriesHandler).Methods(http.MethodGet)
	r.HandleFunc("/categories/{categoryId}/products", handler.listProductsByCategoryHandler).Methods(http.MethodGet)

	r.HandleFunc("/products", handler.createProductHandler).Methods(http.MethodPost)
	r.HandleFunc("/products/{productId}", handler.getProductHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/{productId}/images", handler.listProductImagesHandler).Methods(http.MethodGet)
	r.HandleFunc("/products/{productId}/reviews", handler.listReviewsByProductHandler).Methods(http.MethodGet)
	r.HandleFunc("/sellers/{sellerId}/products", handler.listProductsBySellerHandler).Methods(http.MethodGet)

	r.HandleFunc("/orders", handler.createOrderHandler).Methods(http.MethodPost)
	r.HandleFunc("/orders/{orderId}", handler.getOrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderId}/status", handler.updateOrderStatusHandler).Methods(http.MethodPut)

	r.HandleFunc("/reviews", handler.createReviewHandler).Methods(http.MethodPost)

	return logMiddleware(r)
}

type Handler struct {
	users    service.UserService
	products service.ProductService
	orders   service.OrderService
	reviews  service.ReviewService
}

func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"url":      r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("Request handled")
	})
}

package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
)

type createProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SellerID    uuid.UUID       `json:"seller_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
	ImageURLs   []string        `json:"image_urls"`
}

type productResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	SellerID    uuid.UUID       `json:"seller_id"`
	CategoryID  uuid.UUID       `json:"category_id"`
}

func toProductResponse(product *model.Product) productResponse {
	return productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		SellerID:    product.SellerID,
		CategoryID:  product.CategoryID,
	}
}

func (h *Handler) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var body createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	product, err := h.products.CreateProduct(r.Context(), body.Name, body.Description, body.Price,
		body.Stock, body.SellerID, body.CategoryID, body.ImageURLs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *Handler) getProductHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	product, err := h.products.GetProduct(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *Handler) listProductsBySellerHandler(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := pathID(w, r, "sellerId")
	if !ok {
		return
	}

	products, err := h.products.ListBySeller(r.Context(), sellerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeProductList(w, products)
}

func (h *Handler) listProductsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(w, r, "categoryId")
	if !ok {
		return
	}

	products, err := h.products.ListByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeProductList(w, products)
}

func writeProductList(w http.ResponseWriter, products []model.Product) {
	responses := make([]productResponse, 0, len(products))
	for i := range products {
		responses = append(responses, toProductResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, responses)
}

type productImageResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	ImageURL  string    `json:"image_url"`
}

func (h *Handler) listProductImagesHandler(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathID(w, r, "productId")
	if !ok {
		return
	}

	images, err := h.products.ListImages(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]productImageResponse, 0, len(images))
	for _, image := range images {
		responses = append(responses, productImageResponse{ID: image.ID, ProductID: image.ProductID, ImageURL: image.ImageURL})
	}
	writeJSON(w, http.StatusOK, responses)
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (h *Handler) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var body createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	category, err := h.products.CreateCategory(r.Context(), body.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name})
}

func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.products.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	responses := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, categoryResponse{ID: category.ID, Name: category.Name})
	}
	writeJSON(w, http.StatusOK, responses)
}

package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketplace/pkg/domain/model"
)

var (
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNegativeStock = errors.New("initial stock cannot be negative")
	ErrEmptyName     = errors.New("name must not be empty")
)

type ProductService interface {
	CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stock int, sellerID, categoryID uuid.UUID, imageURLs []string) (*model.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error)
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

func NewProductService(uow model.UnitOfWork, dispatcher EventDispatcher) ProductService {
	return &productService{uow: uow, dispatcher: dispatcher}
}

type productService struct {
	uow        model.UnitOfWork
	dispatcher EventDispatcher
}

func (s *productService) CreateProduct(ctx context.Context, name, description string, price decimal.Decimal, stock int, sellerID, categoryID uuid.UUID, imageURLs []string) (*model.Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	var product *model.Product
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Categories().Find(ctx, categoryID); err != nil {
			return err
		}

		productID, err := r.Products().NextID()
		if err != nil {
			return err
		}
		product = &model.Product{
			ID:          productID,
			Name:        name,
			Description: description,
			Price:       price,
			Stock:       stock,
			SellerID:    sellerID,
			CategoryID:  categoryID,
		}
		if err := r.Products().Create(ctx, product); err != nil {
			return err
		}

		if len(imageURLs) == 0 {
			return nil
		}
		images := make([]model.ProductImage, 0, len(imageURLs))
		for _, url := range imageURLs {
			imageID, err := r.Products().NextID()
			if err != nil {
				return err
			}
			images = append(images, model.ProductImage{ID: imageID, ProductID: productID, ImageURL: url})
		}
		return r.Products().AddImages(ctx, images)
	})
	if err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.ProductCreated{ProductID: product.ID, SellerID: sellerID, Name: name})
	return product, nil
}

func (s *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*model.Product, error) {
	var product *model.Product
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		product, err = r.Products().Find(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		products, err = r.Products().ListBySeller(ctx, sellerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Categories().Find(ctx, categoryID); err != nil {
			return err
		}
		var err error
		products, err = r.Products().ListByCategory(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) ListImages(ctx context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	var images []model.ProductImage
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		if _, err := r.Products().Find(ctx, productID); err != nil {
			return err
		}
		var err error
		images, err = r.Products().ListImages(ctx, productID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (s *productService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	var category *model.Category
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		categoryID, err := r.Categories().NextID()
		if err != nil {
			return err
		}
		category = &model.Category{ID: categoryID, Name: name}
		return r.Categories().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*model.Category, error) {
	var category *model.Category
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		category, err = r.Categories().Find(ctx, categoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.uow.Execute(ctx, func(r model.RepositoryProvider) error {
		var err error
		categories, err = r.Categories().List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

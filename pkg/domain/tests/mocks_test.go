package tests

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"marketplace/pkg/domain/model"
	"marketplace/pkg/domain/service"
)

// memoryStore backs the mock repositories. Entities are held by value so a
// snapshot is a plain map copy.
type memoryStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]model.User
	categories map[uuid.UUID]model.Category
	products   map[uuid.UUID]model.Product
	images     map[uuid.UUID][]model.ProductImage
	orders     map[uuid.UUID]model.Order
	soldItems  map[uuid.UUID][]model.SoldItem
	reviews    map[uuid.UUID]model.Review
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:      make(map[uuid.UUID]model.User),
		categories: make(map[uuid.UUID]model.Category),
		products:   make(map[uuid.UUID]model.Product),
		images:     make(map[uuid.UUID][]model.ProductImage),
		orders:     make(map[uuid.UUID]model.Order),
		soldItems:  make(map[uuid.UUID][]model.SoldItem),
		reviews:    make(map[uuid.UUID]model.Review),
	}
}

func (s *memoryStore) snapshot() *memoryStore {
	clone := newMemoryStore()
	for k, v := range s.users {
		clone.users[k] = v
	}
	for k, v := range s.categories {
		clone.categories[k] = v
	}
	for k, v := range s.products {
		clone.products[k] = v
	}
	for k, v := range s.images {
		clone.images[k] = append([]model.ProductImage(nil), v...)
	}
	for k, v := range s.orders {
		clone.orders[k] = v
	}
	for k, v := range s.soldItems {
		clone.soldItems[k] = append([]model.SoldItem(nil), v...)
	}
	for k, v := range s.reviews {
		clone.reviews[k] = v
	}
	return clone
}

func (s *memoryStore) restore(snapshot *memoryStore) {
	s.users = snapshot.users
	s.categories = snapshot.categories
	s.products = snapshot.products
	s.images = snapshot.images
	s.orders = snapshot.orders
	s.soldItems = snapshot.soldItems
	s.reviews = snapshot.reviews
}

var _ model.UnitOfWork = &mockUnitOfWork{}

// mockUnitOfWork serializes transactions with the store mutex and restores
// a snapshot when the function fails, which gives the mocks the same
// all-or-nothing semantics as a database transaction.
type mockUnitOfWork struct {
	store *memoryStore
}

func (u *mockUnitOfWork) Execute(_ context.Context, fn func(model.RepositoryProvider) error) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	snapshot := u.store.snapshot()
	if err := fn(&mockProvider{store: u.store}); err != nil {
		u.store.restore(snapshot)
		return err
	}
	return nil
}

var _ model.RepositoryProvider = &mockProvider{}

type mockProvider struct {
	store *memoryStore
}

func (p *mockProvider) Users() model.UserRepository {
	return &mockUserRepository{store: p.store}
}

func (p *mockProvider) Products() model.ProductRepository {
	return &mockProductRepository{store: p.store}
}

func (p *mockProvider) Categories() model.CategoryRepository {
	return &mockCategoryRepository{store: p.store}
}

func (p *mockProvider) Orders() model.OrderRepository {
	return &mockOrderRepository{store: p.store}
}

func (p *mockProvider) Reviews() model.ReviewRepository {
	return &mockReviewRepository{store: p.store}
}

type mockUserRepository struct {
	store *memoryStore
}

func (m *mockUserRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockUserRepository) Create(_ context.Context, user *model.User) error {
	m.store.users[user.ID] = *user
	return nil
}

func (m *mockUserRepository) Find(_ context.Context, id uuid.UUID) (*model.User, error) {
	if user, ok := m.store.users[id]; ok {
		return &user, nil
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range m.store.users {
		if user.Username == username {
			clone := user
			return &clone, nil
		}
	}
	return nil, model.ErrUserNotFound
}

type mockProductRepository struct {
	store *memoryStore
}

func (m *mockProductRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockProductRepository) Create(_ context.Context, product *model.Product) error {
	m.store.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Update(_ context.Context, product *model.Product) error {
	if _, ok := m.store.products[product.ID]; !ok {
		return model.ProductNotFoundError{ProductID: product.ID}
	}
	m.store.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) Find(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if product, ok := m.store.products[id]; ok {
		return &product, nil
	}
	return nil, model.ProductNotFoundError{ProductID: id}
}

func (m *mockProductRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	// Transactions are serialized by the store mutex, so a plain read is
	// already exclusive.
	return m.Find(ctx, id)
}

func (m *mockProductRepository) DecrementStock(_ context.Context, id uuid.UUID, quantity int) error {
	product, ok := m.store.products[id]
	if !ok {
		return model.ProductNotFoundError{ProductID: id}
	}
	if product.Stock < quantity {
		return model.InsufficientStockError{ProductID: id}
	}
	product.Stock -= quantity
	m.store.products[id] = product
	return nil
}

func (m *mockProductRepository) ListBySeller(_ context.Context, sellerID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	for _, product := range m.store.products {
		if product.SellerID == sellerID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	for _, product := range m.store.products {
		if product.CategoryID == categoryID {
			products = append(products, product)
		}
	}
	return products, nil
}

func (m *mockProductRepository) AddImages(_ context.Context, images []model.ProductImage) error {
	for _, image := range images {
		m.store.images[image.ProductID] = append(m.store.images[image.ProductID], image)
	}
	return nil
}

func (m *mockProductRepository) ListImages(_ context.Context, productID uuid.UUID) ([]model.ProductImage, error) {
	return append([]model.ProductImage(nil), m.store.images[productID]...), nil
}

type mockCategoryRepository struct {
	store *memoryStore
}

func (m *mockCategoryRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockCategoryRepository) Create(_ context.Context, category *model.Category) error {
	m.store.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepository) Find(_ context.Context, id uuid.UUID) (*model.Category, error) {
	if category, ok := m.store.categories[id]; ok {
		return &category, nil
	}
	return nil, model.ErrCategoryNotFound
}

func (m *mockCategoryRepository) List(_ context.Context) ([]model.Category, error) {
	var categories []model.Category
	for _, category := range m.store.categories {
		categories = append(categories, category)
	}
	return categories, nil
}

type mockOrderRepository struct {
	store *memoryStore
}

func (m *mockOrderRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockOrderRepository) Create(_ context.Context, order *model.Order) error {
	m.store.orders[order.ID] = *order
	return nil
}

func (m *mockOrderRepository) Find(_ context.Context, id uuid.UUID) (*model.Order, error) {
	if order, ok := m.store.orders[id]; ok {
		return &order, nil
	}
	return nil, model.ErrOrderNotFound
}

func (m *mockOrderRepository) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	for _, order := range m.store.orders {
		if order.BuyerID == buyerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (m *mockOrderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) error {
	order, ok := m.store.orders[id]
	if !ok {
		return model.ErrOrderNotFound
	}
	order.Status = status
	m.store.orders[id] = order
	return nil
}

func (m *mockOrderRepository) AddSoldItems(_ context.Context, items []model.SoldItem) error {
	for _, item := range items {
		m.store.soldItems[item.OrderID] = append(m.store.soldItems[item.OrderID], item)
	}
	return nil
}

func (m *mockOrderRepository) ListSoldItems(_ context.Context, orderID uuid.UUID) ([]model.SoldItem, error) {
	return append([]model.SoldItem(nil), m.store.soldItems[orderID]...), nil
}

type mockReviewRepository struct {
	store *memoryStore
}

func (m *mockReviewRepository) NextID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

func (m *mockReviewRepository) Create(_ context.Context, review *model.Review) error {
	m.store.reviews[review.ID] = *review
	return nil
}

func (m *mockReviewRepository) ListByProduct(_ context.Context, productID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	for _, review := range m.store.reviews {
		if review.ProductID == productID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

func (m *mockReviewRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	for _, review := range m.store.reviews {
		if review.UserID == userID {
			reviews = append(reviews, review)
		}
	}
	return reviews, nil
}

var _ service.EventDispatcher = &mockEventDispatcher{}

type mockEventDispatcher struct {
	mu     sync.Mutex
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Events() []service.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]service.Event(nil), m.events...)
}

func (m *mockEventDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

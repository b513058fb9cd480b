package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/domain/shared"
	"github.com/storeadmin/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreRepository implements catalog.StoreRepository for testing
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDAndUser(ctx context.Context, id uuid.UUID, userID string) (*catalog.Store, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, store *catalog.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

// MockTaxonomyRepository implements catalog.TaxonomyRepository for testing
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) Categories(ctx context.Context, storeID uuid.UUID) ([]catalog.Category, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockTaxonomyRepository) Subcategories(ctx context.Context, storeID uuid.UUID) ([]catalog.Subcategory, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]catalog.Subcategory), args.Error(1)
}

func (m *MockTaxonomyRepository) Subsubs(ctx context.Context, storeID uuid.UUID) ([]catalog.Subsub, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]catalog.Subsub), args.Error(1)
}

func (m *MockTaxonomyRepository) ValidateChain(ctx context.Context, storeID, categoryID, subcategoryID, subsubID uuid.UUID) error {
	args := m.Called(ctx, storeID, categoryID, subcategoryID, subsubID)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) SaveCategory(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) SaveSubcategory(ctx context.Context, subcategory *catalog.Subcategory) error {
	args := m.Called(ctx, subcategory)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) SaveSubsub(ctx context.Context, subsub *catalog.Subsub) error {
	args := m.Called(ctx, subsub)
	return args.Error(0)
}

// MockAttributeRepository implements catalog.AttributeRepository for testing
type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) Colors(ctx context.Context, storeID uuid.UUID) ([]catalog.Color, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]catalog.Color), args.Error(1)
}

func (m *MockAttributeRepository) Sizes(ctx context.Context, storeID uuid.UUID) ([]catalog.Size, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]catalog.Size), args.Error(1)
}

func (m *MockAttributeRepository) SaveColor(ctx context.Context, color *catalog.Color) error {
	args := m.Called(ctx, color)
	return args.Error(0)
}

func (m *MockAttributeRepository) SaveSize(ctx context.Context, size *catalog.Size) error {
	args := m.Called(ctx, size)
	return args.Error(0)
}

// MockOrderRepository implements order.Repository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// fakeSession injects a session identity the way the session middleware
// would after verifying a token.
func fakeSession(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.SessionUserKey, userID)
		}
		c.Next()
	}
}

func newTestStore(userID string) *catalog.Store {
	store, _ := catalog.NewStore("Boutique", userID)
	return store
}

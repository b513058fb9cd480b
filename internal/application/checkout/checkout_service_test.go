package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/domain/shared"
	"github.com/storeadmin/backend/internal/infrastructure/payment"
)

// MockProductRepository is a mock implementation of catalog.ProductRepository
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

// MockOrderRepository is a mock implementation of order.Repository
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

// MockSessionProvider is a mock implementation of SessionProvider
type MockSessionProvider struct {
	mock.Mock
}

func (m *MockSessionProvider) CreateSession(ctx context.Context, input payment.CheckoutSessionInput) (*payment.CheckoutSessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutSessionOutput), args.Error(1)
}

func newCheckoutService(productRepo *MockProductRepository, orderRepo *MockOrderRepository, sessions *MockSessionProvider) *Service {
	pricing := Pricing{Currency: "all", DeliveryCost: 300, FreeDeliveryOver: 3999}
	return NewService(productRepo, orderRepo, sessions, "http://localhost:3000", pricing, zap.NewNop())
}

func storedProduct(name string, price float64, quantity int) catalog.Product {
	p := catalog.Product{
		StoreEntity: shared.NewStoreEntity(uuid.New()),
		Name:        name,
		Quantity:    quantity,
	}
	p.Price = decimal.NewFromFloat(price)
	return p
}

func TestService_Checkout_PricesCartWithDelivery(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	ctx := context.Background()
	storeID := uuid.New()
	jacket := storedProduct("Jacket", 19.99, 1)
	boots := storedProduct("Boots", 5.00, 2)
	productIDs := []uuid.UUID{jacket.ID, boots.ID}

	productRepo.On("FindByIDs", ctx, productIDs).Return([]catalog.Product{jacket, boots}, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	var captured payment.CheckoutSessionInput
	sessions.On("CreateSession", ctx, mock.AnythingOfType("payment.CheckoutSessionInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(payment.CheckoutSessionInput)
		}).
		Return(&payment.CheckoutSessionOutput{SessionID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}, nil)

	resp, err := service.Checkout(ctx, storeID, CheckoutRequest{ProductIDs: productIDs})

	assert.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/cs_test_1", resp.URL)

	// 19.99x1 and 5.00x2 price to 1999 and 1000 minor units; the 29.99
	// total stays under the free-delivery threshold so delivery is 300.
	assert.Len(t, captured.LineItems, 3)
	assert.Equal(t, int64(1999), captured.LineItems[0].UnitAmount)
	assert.Equal(t, int64(1), captured.LineItems[0].Quantity)
	assert.Equal(t, int64(1000), captured.LineItems[1].UnitAmount)
	assert.Equal(t, "Delivery Cost", captured.LineItems[2].Name)
	assert.Equal(t, int64(300), captured.LineItems[2].UnitAmount)
	assert.Equal(t, "all", captured.Currency)
	assert.Equal(t, "http://localhost:3000/cart?success=1", captured.SuccessURL)
	assert.Equal(t, "http://localhost:3000/cart?canceled=1", captured.CancelURL)
	assert.NotEmpty(t, captured.Metadata["orderId"])
	productRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestService_Checkout_FreeDeliveryOverThreshold(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	ctx := context.Background()
	expensive := storedProduct("Sofa", 4000.00, 1)
	productIDs := []uuid.UUID{expensive.ID}

	productRepo.On("FindByIDs", ctx, productIDs).Return([]catalog.Product{expensive}, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	var captured payment.CheckoutSessionInput
	sessions.On("CreateSession", ctx, mock.AnythingOfType("payment.CheckoutSessionInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(payment.CheckoutSessionInput)
		}).
		Return(&payment.CheckoutSessionOutput{SessionID: "cs_test_2", URL: "https://pay.example.com/cs_test_2"}, nil)

	_, err := service.Checkout(ctx, uuid.New(), CheckoutRequest{ProductIDs: productIDs})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), captured.LineItems[len(captured.LineItems)-1].UnitAmount)
}

func TestService_Checkout_DeliveryChargedAtThreshold(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	ctx := context.Background()
	atThreshold := storedProduct("Rug", 3999.00, 1)
	productIDs := []uuid.UUID{atThreshold.ID}

	productRepo.On("FindByIDs", ctx, productIDs).Return([]catalog.Product{atThreshold}, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)

	var captured payment.CheckoutSessionInput
	sessions.On("CreateSession", ctx, mock.AnythingOfType("payment.CheckoutSessionInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(payment.CheckoutSessionInput)
		}).
		Return(&payment.CheckoutSessionOutput{SessionID: "cs_test_3", URL: "https://pay.example.com/cs_test_3"}, nil)

	_, err := service.Checkout(ctx, uuid.New(), CheckoutRequest{ProductIDs: productIDs})

	assert.NoError(t, err)
	assert.Equal(t, int64(300), captured.LineItems[len(captured.LineItems)-1].UnitAmount)
}

func TestService_Checkout_ResubmitCreatesDistinctOrders(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	ctx := context.Background()
	storeID := uuid.New()
	jacket := storedProduct("Jacket", 19.99, 1)
	productIDs := []uuid.UUID{jacket.ID}

	var orderIDs []uuid.UUID
	productRepo.On("FindByIDs", ctx, productIDs).Return([]catalog.Product{jacket}, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Run(func(args mock.Arguments) {
		orderIDs = append(orderIDs, args.Get(1).(*order.Order).ID)
	}).Return(nil)
	sessions.On("CreateSession", ctx, mock.AnythingOfType("payment.CheckoutSessionInput")).
		Return(&payment.CheckoutSessionOutput{SessionID: "cs_test_4", URL: "https://pay.example.com/cs_test_4"}, nil)

	_, err := service.Checkout(ctx, storeID, CheckoutRequest{ProductIDs: productIDs})
	assert.NoError(t, err)
	_, err = service.Checkout(ctx, storeID, CheckoutRequest{ProductIDs: productIDs})
	assert.NoError(t, err)

	assert.Len(t, orderIDs, 2)
	assert.NotEqual(t, orderIDs[0], orderIDs[1])
}

func TestService_Checkout_EmptyCart(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	resp, err := service.Checkout(context.Background(), uuid.New(), CheckoutRequest{})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *shared.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "Product ids are required", domainErr.Message)
	productRepo.AssertNotCalled(t, "FindByIDs")
	orderRepo.AssertNotCalled(t, "Create")
}

func TestService_Checkout_SessionFailureKeepsOrder(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	sessions := new(MockSessionProvider)
	service := newCheckoutService(productRepo, orderRepo, sessions)

	ctx := context.Background()
	jacket := storedProduct("Jacket", 19.99, 1)
	productIDs := []uuid.UUID{jacket.ID}

	productRepo.On("FindByIDs", ctx, productIDs).Return([]catalog.Product{jacket}, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*order.Order")).Return(nil)
	sessions.On("CreateSession", ctx, mock.AnythingOfType("payment.CheckoutSessionInput")).
		Return(nil, errors.New("provider unavailable"))

	resp, err := service.Checkout(ctx, uuid.New(), CheckoutRequest{ProductIDs: productIDs})

	assert.Error(t, err)
	assert.Nil(t, resp)
	orderRepo.AssertCalled(t, "Create", ctx, mock.AnythingOfType("*order.Order"))
	orderRepo.AssertNotCalled(t, "Save")
}

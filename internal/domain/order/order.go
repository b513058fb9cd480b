package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// Order is created unpaid at checkout time, before the payment session
// exists. Phone and address stay empty until the payment confirmation
// arrives; an order that is never paid simply stays in this state.
type Order struct {
	shared.StoreEntity
	IsPaid  bool   `gorm:"not null;default:false" json:"isPaid"`
	Phone   string `gorm:"type:varchar(32);not null;default:''" json:"phone"`
	Address string `gorm:"type:text;not null;default:''" json:"address"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem references one purchased product. Quantity is intentionally not
// tracked here; the checkout prices the product's own stock quantity into
// the line amount instead.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID uuid.UUID        `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates an unpaid order with one item per product id
func NewOrder(storeID uuid.UUID, productIDs []uuid.UUID) (*Order, error) {
	if len(productIDs) == 0 {
		return nil, shared.NewValidationError("Product ids are required")
	}
	o := &Order{
		StoreEntity: shared.NewStoreEntity(storeID),
	}
	o.Items = make([]OrderItem, 0, len(productIDs))
	for _, productID := range productIDs {
		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			ProductID:  productID,
		})
	}
	return o, nil
}

// MarkPaid records the payment confirmation details
func (o *Order) MarkPaid(phone, address string) error {
	if o.IsPaid {
		return shared.ErrInvalidState
	}
	o.IsPaid = true
	o.Phone = phone
	o.Address = address
	return nil
}

// Repository persists orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAllForStore loads orders with items and their products for the
	// dashboard listing.
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Save(ctx context.Context, order *Order) error
}

package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/order"
	"github.com/storeadmin/backend/internal/domain/shared"
)

const rowDateLayout = "January 2, 2006"

// ProductRow is one line of the dashboard product table
type ProductRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Quantity    int       `json:"quantity"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Subsub      string    `json:"subsub"`
	IsFeatured  bool      `json:"isFeatured"`
	IsArchived  bool      `json:"isArchived"`
	IsOffered   bool      `json:"isOffered"`
	IsUndercost bool      `json:"isUndercost"`
	CreatedAt   string    `json:"createdAt"`
}

// OrderRow is one line of the dashboard order table
type OrderRow struct {
	ID         uuid.UUID `json:"id"`
	Products   string    `json:"products"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	TotalPrice string    `json:"totalPrice"`
	IsPaid     bool      `json:"isPaid"`
	CreatedAt  string    `json:"createdAt"`
}

// ProductForm is the payload backing the product create/edit form
type ProductForm struct {
	Product       *catalog.Product      `json:"product"`
	Categories    []catalog.Category    `json:"categories"`
	Subcategories []catalog.Subcategory `json:"subcategories"`
	Subsubs       []catalog.Subsub      `json:"subsubs"`
	Colors        []catalog.Color       `json:"colors"`
	Sizes         []catalog.Size        `json:"sizes"`
}

// DashboardService builds the read projections behind the admin UI and
// owns the store-scoped vocabulary writes.
type DashboardService struct {
	storeRepo      catalog.StoreRepository
	productRepo    catalog.ProductRepository
	taxonomyRepo   catalog.TaxonomyRepository
	attributeRepo  catalog.AttributeRepository
	orderRepo      order.Repository
	currencySymbol string
}

// NewDashboardService creates a DashboardService. currencyCode is the
// ISO 4217 code used for price formatting; it falls back to USD when the
// configured code is unknown.
func NewDashboardService(
	storeRepo catalog.StoreRepository,
	productRepo catalog.ProductRepository,
	taxonomyRepo catalog.TaxonomyRepository,
	attributeRepo catalog.AttributeRepository,
	orderRepo order.Repository,
	currencyCode string,
) *DashboardService {
	unit, err := currency.ParseISO(strings.ToUpper(currencyCode))
	if err != nil {
		unit = currency.USD
	}
	symbol := message.NewPrinter(language.English).Sprint(currency.NarrowSymbol(unit))
	return &DashboardService{
		storeRepo:      storeRepo,
		productRepo:    productRepo,
		taxonomyRepo:   taxonomyRepo,
		attributeRepo:  attributeRepo,
		orderRepo:      orderRepo,
		currencySymbol: symbol,
	}
}

// Products lists the store's products as formatted table rows, newest first
func (s *DashboardService) Products(ctx context.Context, storeID uuid.UUID, userID string) ([]ProductRow, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAllForStore(ctx, storeID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		row := ProductRow{
			ID:          p.ID,
			Name:        p.Name,
			Price:       s.formatPrice(p.Price),
			Quantity:    p.Quantity,
			IsFeatured:  p.IsFeatured,
			IsArchived:  p.IsArchived,
			IsOffered:   p.IsOffered,
			IsUndercost: p.IsUndercost,
			CreatedAt:   p.CreatedAt.Format(rowDateLayout),
		}
		if p.Category != nil {
			row.Category = p.Category.Name
		}
		if p.Subcategory != nil {
			row.Subcategory = p.Subcategory.Name
		}
		if p.Subsub != nil {
			row.Subsub = p.Subsub.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ProductForm assembles the create/edit form payload. productID may be
// uuid.Nil for the create form; a missing product also yields a nil
// Product so the UI falls back to an empty form.
func (s *DashboardService) ProductForm(ctx context.Context, storeID uuid.UUID, userID string, productID uuid.UUID) (*ProductForm, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	form := &ProductForm{}
	if productID != uuid.Nil {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		form.Product = product
	}

	var err error
	if form.Categories, err = s.taxonomyRepo.Categories(ctx, storeID); err != nil {
		return nil, err
	}
	if form.Subcategories, err = s.taxonomyRepo.Subcategories(ctx, storeID); err != nil {
		return nil, err
	}
	if form.Subsubs, err = s.taxonomyRepo.Subsubs(ctx, storeID); err != nil {
		return nil, err
	}
	if form.Colors, err = s.attributeRepo.Colors(ctx, storeID); err != nil {
		return nil, err
	}
	if form.Sizes, err = s.attributeRepo.Sizes(ctx, storeID); err != nil {
		return nil, err
	}
	return form, nil
}

// Orders lists the store's orders as formatted table rows, newest first
func (s *DashboardService) Orders(ctx context.Context, storeID uuid.UUID, userID string) ([]OrderRow, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAllForStore(ctx, storeID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(orders))
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		total := decimal.Zero
		for _, item := range o.Items {
			if item.Product == nil {
				continue
			}
			names = append(names, item.Product.Name)
			total = total.Add(item.Product.Price)
		}
		rows = append(rows, OrderRow{
			ID:         o.ID,
			Products:   strings.Join(names, ", "),
			Phone:      o.Phone,
			Address:    o.Address,
			TotalPrice: s.formatPrice(total),
			IsPaid:     o.IsPaid,
			CreatedAt:  o.CreatedAt.Format(rowDateLayout),
		})
	}
	return rows, nil
}

// Settings returns the store record backing the settings form
func (s *DashboardService) Settings(ctx context.Context, storeID uuid.UUID, userID string) (*catalog.Store, error) {
	store, err := s.storeRepo.FindByIDAndUser(ctx, storeID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrNotStoreOwner
		}
		return nil, err
	}
	return store, nil
}

// CreateColor adds a color to the store vocabulary
func (s *DashboardService) CreateColor(ctx context.Context, storeID uuid.UUID, userID string, req AttributeRequest) (*catalog.Color, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}
	color, err := catalog.NewColor(storeID, req.Name, req.Value)
	if err != nil {
		return nil, err
	}
	if err := s.attributeRepo.SaveColor(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// CreateSize adds a size to the store vocabulary
func (s *DashboardService) CreateSize(ctx context.Context, storeID uuid.UUID, userID string, req AttributeRequest) (*catalog.Size, error) {
	if err := s.requireOwnership(ctx, storeID, userID); err != nil {
		return nil, err
	}
	size, err := catalog.NewSize(storeID, req.Name, req.Value)
	if err != nil {
		return nil, err
	}
	if err := s.attributeRepo.SaveSize(ctx, size); err != nil {
		return nil, err
	}
	return size, nil
}

func (s *DashboardService) formatPrice(amount decimal.Decimal) string {
	return s.currencySymbol + amount.StringFixed(2)
}

func (s *DashboardService) requireOwnership(ctx context.Context, storeID uuid.UUID, userID string) error {
	_, err := s.storeRepo.FindByIDAndUser(ctx, storeID, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotStoreOwner
		}
		return err
	}
	return nil
}

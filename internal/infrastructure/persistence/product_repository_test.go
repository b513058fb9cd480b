package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storeadmin/backend/internal/domain/catalog"
	"github.com/storeadmin/backend/internal/domain/shared"
)

// setupCatalogTestDB creates an in-memory SQLite database with the catalog schema
func setupCatalogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Store{},
		&catalog.Category{},
		&catalog.Subcategory{},
		&catalog.Subsub{},
		&catalog.Color{},
		&catalog.Size{},
		&catalog.Product{},
		&catalog.ProductImage{},
		&catalog.ProductColor{},
		&catalog.ProductSize{},
	)
	require.NoError(t, err)

	return db
}

// seedTaxonomy creates a store with one full taxonomy chain and one color and size
type catalogFixture struct {
	storeID       uuid.UUID
	categoryID    uuid.UUID
	subcategoryID uuid.UUID
	subsubID      uuid.UUID
	colorID       uuid.UUID
	sizeID        uuid.UUID
}

func seedTaxonomy(t *testing.T, db *gorm.DB) catalogFixture {
	store, err := catalog.NewStore("Test Store", "user_owner")
	require.NoError(t, err)
	require.NoError(t, db.Create(store).Error)

	category, err := catalog.NewCategory(store.ID, "Clothing")
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)

	subcategory := &catalog.Subcategory{
		StoreEntity: shared.NewStoreEntity(store.ID),
		CategoryID:  category.ID,
		Name:        "Shirts",
	}
	require.NoError(t, db.Create(subcategory).Error)

	subsub := &catalog.Subsub{
		StoreEntity:   shared.NewStoreEntity(store.ID),
		SubcategoryID: subcategory.ID,
		Name:          "T-Shirts",
	}
	require.NoError(t, db.Create(subsub).Error)

	color, err := catalog.NewColor(store.ID, "Black", "#000000")
	require.NoError(t, err)
	require.NoError(t, db.Create(color).Error)

	size, err := catalog.NewSize(store.ID, "Medium", "M")
	require.NoError(t, err)
	require.NoError(t, db.Create(size).Error)

	return catalogFixture{
		storeID:       store.ID,
		categoryID:    category.ID,
		subcategoryID: subcategory.ID,
		subsubID:      subsub.ID,
		colorID:       color.ID,
		sizeID:        size.ID,
	}
}

func newProductDetails(f catalogFixture) catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:          "Plain Tee",
		Description:   "A plain t-shirt",
		Info:          "100% cotton",
		ImageURLs:     []string{"https://cdn.example.com/tee-1.jpg", "https://cdn.example.com/tee-2.jpg"},
		Quantity:      3,
		Price:         decimal.RequireFromString("19.99"),
		CategoryID:    f.categoryID,
		SubcategoryID: f.subcategoryID,
		SubsubID:      f.subsubID,
		ColorIDs:      []uuid.UUID{f.colorID},
		SizeIDs:       []uuid.UUID{f.sizeID},
	}
}

func TestGormProductRepository_CreateAndFindByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	product, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)

	assert.Equal(t, "Plain Tee", found.Name)
	assert.Equal(t, f.storeID, found.StoreID)
	assert.True(t, found.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Len(t, found.Images, 2)
	require.Len(t, found.Colors, 1)
	require.NotNil(t, found.Colors[0].Color)
	assert.Equal(t, "Black", found.Colors[0].Color.Name)
	require.Len(t, found.Sizes, 1)
	require.NotNil(t, found.Sizes[0].Size)
	assert.Equal(t, "Medium", found.Sizes[0].Size.Name)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Clothing", found.Category.Name)
	require.NotNil(t, found.Subcategory)
	require.NotNil(t, found.Subsub)
}

func TestGormProductRepository_FindByID_NotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_Update_ReplacesAssociations(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	product, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))

	// Second color the update switches to
	red, err := catalog.NewColor(f.storeID, "Red", "#ff0000")
	require.NoError(t, err)
	require.NoError(t, db.Create(red).Error)

	details := newProductDetails(f)
	details.Name = "Updated Tee"
	details.ImageURLs = []string{"https://cdn.example.com/tee-3.jpg"}
	details.ColorIDs = []uuid.UUID{red.ID}
	require.NoError(t, product.Update(details))

	require.NoError(t, repo.Update(context.Background(), product))

	found, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)

	assert.Equal(t, "Updated Tee", found.Name)
	// Associations not in the submission are gone, not merged
	require.Len(t, found.Images, 1)
	assert.Equal(t, "https://cdn.example.com/tee-3.jpg", found.Images[0].URL)
	require.Len(t, found.Colors, 1)
	assert.Equal(t, red.ID, found.Colors[0].ColorID)
	require.Len(t, found.Sizes, 1)
}

func TestGormProductRepository_Update_NotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	product, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)

	err = repo.Update(context.Background(), product)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	product, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))

	require.NoError(t, repo.Delete(context.Background(), product.ID))

	_, err = repo.FindByID(context.Background(), product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Join rows and images are gone with the product
	var imageCount, colorCount, sizeCount int64
	require.NoError(t, db.Model(&catalog.ProductImage{}).Where("product_id = ?", product.ID).Count(&imageCount).Error)
	require.NoError(t, db.Model(&catalog.ProductColor{}).Where("product_id = ?", product.ID).Count(&colorCount).Error)
	require.NoError(t, db.Model(&catalog.ProductSize{}).Where("product_id = ?", product.ID).Count(&sizeCount).Error)
	assert.Zero(t, imageCount)
	assert.Zero(t, colorCount)
	assert.Zero(t, sizeCount)
}

func TestGormProductRepository_Delete_NotFound(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)

	err := repo.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	first, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), first))

	details := newProductDetails(f)
	details.Name = "Second Tee"
	second, err := catalog.NewProduct(f.storeID, details)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), second))

	products, err := repo.FindByIDs(context.Background(), []uuid.UUID{first.ID, second.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	empty, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProductRepository_FindAllForStore(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormProductRepository(db)
	f := seedTaxonomy(t, db)

	product, err := catalog.NewProduct(f.storeID, newProductDetails(f))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), product))

	products, err := repo.FindAllForStore(context.Background(), f.storeID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Len(t, products[0].Images, 2)

	other, err := repo.FindAllForStore(context.Background(), uuid.New(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormTaxonomyRepository_ValidateChain(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewGormTaxonomyRepository(db)
	f := seedTaxonomy(t, db)

	t.Run("valid chain passes", func(t *testing.T) {
		err := repo.ValidateChain(context.Background(), f.storeID, f.categoryID, f.subcategoryID, f.subsubID)
		assert.NoError(t, err)
	})

	t.Run("foreign store fails", func(t *testing.T) {
		err := repo.ValidateChain(context.Background(), uuid.New(), f.categoryID, f.subcategoryID, f.subsubID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("broken chain fails", func(t *testing.T) {
		err := repo.ValidateChain(context.Background(), f.storeID, f.categoryID, uuid.New(), f.subsubID)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

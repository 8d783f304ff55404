package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/address"
	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newSQLiteDB opens an in-memory database for aggregate round trips
func newSQLiteDB(t *testing.T, entities ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})
	return db
}

func TestGormCartRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t, &cart.ShoppingCart{}, &cart.CartItem{})
	repo := NewGormCartRepository(db)

	userID := uuid.New()
	c, err := cart.NewUserCart(userID)
	require.NoError(t, err)

	product, err := catalog.NewProduct("TSH-001", "Camiseta Basica", decimal.NewFromInt(45000))
	require.NoError(t, err)
	_, err = c.AddProduct(product, 2)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, c))

	loaded, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.True(t, loaded.Items[0].Price.Equal(decimal.NewFromInt(45000)))

	// removing the line must delete its row
	require.NoError(t, loaded.RemoveItem(loaded.Items[0].ID))
	require.NoError(t, repo.Save(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)

	var count int64
	require.NoError(t, db.Model(&cart.CartItem{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestGormAddressRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t, &address.Address{})
	repo := NewGormAddressRepository(db)

	userID := uuid.New()
	addr, err := address.NewAddress(userID, "76001", address.ViaCalle, "5", "36-08")
	require.NoError(t, err)
	require.NoError(t, addr.AddComplement(address.ComplementApartamento, "101"))
	require.NoError(t, addr.SetStratum(4))
	addr.MarkPrimary()

	require.NoError(t, repo.Save(ctx, addr))

	loaded, err := repo.FindPrimaryByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, addr.ID, loaded.ID)
	require.Len(t, loaded.Complements, 1)
	assert.Equal(t, address.ComplementApartamento, loaded.Complements[0].Type)
	assert.Equal(t, "101", loaded.Complements[0].Value)
	require.NotNil(t, loaded.Stratum)
	assert.Equal(t, 4, *loaded.Stratum)

	// a second primary demotes the first in one transaction
	other, err := address.NewAddress(userID, "76001", address.ViaCarrera, "15", "80-21")
	require.NoError(t, err)
	other.MarkPrimary()
	require.NoError(t, repo.SaveAsPrimary(ctx, other))

	primary, err := repo.FindPrimaryByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, primary.ID)

	var primaries int64
	require.NoError(t, db.Model(&address.Address{}).
		Where("user_id = ? AND is_primary = ?", userID, true).
		Count(&primaries).Error)
	assert.Equal(t, int64(1), primaries)

	all, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, other.ID, all[0].ID)
}

func TestGormCategoryRepository_Hierarchy(t *testing.T) {
	ctx := context.Background()
	db := newSQLiteDB(t, &catalog.Category{})
	repo := NewGormCategoryRepository(db)

	root, err := catalog.NewCategory("Ropa", "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, root))

	child, err := catalog.NewChildCategory("Camisetas", "", root)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, child))

	roots, err := repo.FindRoots(ctx)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "ropa", roots[0].Slug)

	children, err := repo.FindChildren(ctx, root.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "camisetas", children[0].Slug)

	bySlug, err := repo.FindBySlug(ctx, "camisetas")
	require.NoError(t, err)
	assert.Equal(t, child.ID, bySlug.ID)

	_, err = repo.FindBySlug(ctx, "zapatos")
	assert.Equal(t, shared.ErrNotFound, err)
}

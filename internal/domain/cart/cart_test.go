package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
)

func newProduct(t *testing.T, sku, price string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Producto "+sku, decimal.RequireFromString(price))
	require.NoError(t, err)
	return product
}

func newDesign(t *testing.T, basePrice string) *design.CustomDesign {
	t.Helper()
	product := newProduct(t, "MUG-001", "25000")
	require.NoError(t, product.EnableCustomization(decimal.RequireFromString(basePrice)))

	d, err := design.NewCustomDesign(uuid.New(), product, "https://cdn.example.com/d.png", map[string]any{"v": 1})
	require.NoError(t, err)
	return d
}

func TestNewCart(t *testing.T) {
	t.Run("user cart", func(t *testing.T) {
		userID := uuid.New()
		c, err := NewUserCart(userID)
		require.NoError(t, err)
		require.NotNil(t, c.UserID)
		assert.Equal(t, userID, *c.UserID)
		assert.True(t, c.IsEmpty())

		_, err = NewUserCart(uuid.Nil)
		assert.Error(t, err)
	})

	t.Run("session cart", func(t *testing.T) {
		c, err := NewSessionCart("sess-abc123")
		require.NoError(t, err)
		assert.Equal(t, "sess-abc123", c.SessionID)

		_, err = NewSessionCart("")
		assert.Error(t, err)
	})
}

func TestCart_AddProduct(t *testing.T) {
	c, err := NewUserCart(uuid.New())
	require.NoError(t, err)
	product := newProduct(t, "TSHIRT-001", "45000")

	item, err := c.AddProduct(product, 2)
	require.NoError(t, err)
	assert.True(t, item.Price.Equal(product.Price), "price captured at creation")
	assert.Equal(t, 2, item.Quantity)

	t.Run("price is sticky once captured", func(t *testing.T) {
		require.NoError(t, product.SetPrice(decimal.RequireFromString("99000")))

		same, err := c.AddProduct(product, 1)
		require.NoError(t, err)
		assert.Equal(t, 3, same.Quantity, "same product bumps quantity")
		assert.True(t, same.Price.Equal(decimal.RequireFromString("45000")))
		assert.Len(t, c.Items, 1)
	})

	t.Run("rejects inactive product", func(t *testing.T) {
		product.Deactivate()
		_, err := c.AddProduct(product, 1)
		assert.Error(t, err)
	})

	t.Run("rejects bad quantity", func(t *testing.T) {
		other := newProduct(t, "TSHIRT-002", "30000")
		_, err := c.AddProduct(other, 0)
		assert.Error(t, err)
		_, err = c.AddProduct(other, 101)
		assert.Error(t, err)
	})
}

func TestCart_AddDesign(t *testing.T) {
	c, err := NewUserCart(uuid.New())
	require.NoError(t, err)

	t.Run("price comes from the base product's base price", func(t *testing.T) {
		d := newDesign(t, "20000")
		item, err := c.AddDesign(d, 1)
		require.NoError(t, err)
		assert.True(t, item.IsDesign())
		assert.True(t, item.Price.Equal(decimal.RequireFromString("20000")))
		assert.NoError(t, item.Validate())
	})

	t.Run("rejects design without loaded base product", func(t *testing.T) {
		d := newDesign(t, "20000")
		d.BaseProduct = nil
		_, err := c.AddDesign(d, 1)
		assert.Error(t, err)
	})

	t.Run("rejects nil design", func(t *testing.T) {
		_, err := c.AddDesign(nil, 1)
		assert.Error(t, err)
	})
}

func TestCartItem_Validate(t *testing.T) {
	item := CartItem{}
	assert.Error(t, item.Validate(), "a line needs a product or a design")
}

func TestCart_UpdateQuantityAndRemove(t *testing.T) {
	c, err := NewUserCart(uuid.New())
	require.NoError(t, err)
	product := newProduct(t, "TSHIRT-001", "45000")

	item, err := c.AddProduct(product, 1)
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity(item.ID, 5))
	assert.Equal(t, 5, c.Items[0].Quantity)

	assert.Error(t, c.UpdateQuantity(uuid.New(), 1))
	assert.Error(t, c.UpdateQuantity(item.ID, 0))

	require.NoError(t, c.RemoveItem(item.ID))
	assert.True(t, c.IsEmpty())
	assert.Error(t, c.RemoveItem(item.ID))
}

func TestCart_Total(t *testing.T) {
	c, err := NewUserCart(uuid.New())
	require.NoError(t, err)

	_, err = c.AddProduct(newProduct(t, "A-1", "10000"), 2)
	require.NoError(t, err)
	_, err = c.AddProduct(newProduct(t, "B-1", "5500"), 1)
	require.NoError(t, err)

	assert.True(t, c.Total().Equal(decimal.RequireFromString("25500")))

	c.Clear()
	assert.True(t, c.Total().IsZero())
}

func TestCart_MergeAndAttach(t *testing.T) {
	userCart, err := NewUserCart(uuid.New())
	require.NoError(t, err)
	sessionCart, err := NewSessionCart("sess-1")
	require.NoError(t, err)

	shared := newProduct(t, "A-1", "10000")
	_, err = userCart.AddProduct(shared, 1)
	require.NoError(t, err)
	_, err = sessionCart.AddProduct(shared, 2)
	require.NoError(t, err)
	_, err = sessionCart.AddProduct(newProduct(t, "B-1", "5500"), 1)
	require.NoError(t, err)

	userCart.Merge(sessionCart)
	require.Len(t, userCart.Items, 2)
	assert.Equal(t, 3, userCart.Items[0].Quantity, "shared product quantities merge")

	t.Run("attach session cart to user", func(t *testing.T) {
		anon, err := NewSessionCart("sess-2")
		require.NoError(t, err)

		userID := uuid.New()
		require.NoError(t, anon.AttachToUser(userID))
		assert.Equal(t, userID, *anon.UserID)

		assert.Error(t, anon.AttachToUser(uuid.New()), "already owned")
	})
}

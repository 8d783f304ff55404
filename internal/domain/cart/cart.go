package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// ShoppingCart holds the items a shopper intends to buy. A cart belongs
// either to a registered user or to an anonymous session; merging a
// session cart into a user cart happens at login.
type ShoppingCart struct {
	shared.BaseAggregateRoot
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	SessionID string     `gorm:"type:varchar(100);index"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ShoppingCart) TableName() string {
	return "shopping_carts"
}

// NewUserCart creates a cart owned by a registered user
func NewUserCart(userID uuid.UUID) (*ShoppingCart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}

	return &ShoppingCart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            &userID,
	}, nil
}

// NewSessionCart creates a cart bound to an anonymous session
func NewSessionCart(sessionID string) (*ShoppingCart, error) {
	if sessionID == "" || len(sessionID) > 100 {
		return nil, shared.NewDomainError("INVALID_SESSION_ID", "Session ID must be 1 to 100 characters")
	}

	return &ShoppingCart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SessionID:         sessionID,
	}, nil
}

// AddProduct adds a catalog product to the cart. The line price is
// captured from the product at this instant and never re-derived, so
// later catalog price changes do not affect the cart.
func (c *ShoppingCart) AddProduct(product *catalog.Product, quantity int) (*CartItem, error) {
	if product == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product is required")
	}
	if !product.IsActive {
		return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not available for purchase")
	}

	// Same product twice just bumps the quantity
	for i := range c.Items {
		if c.Items[i].ProductID != nil && *c.Items[i].ProductID == product.ID {
			if err := c.Items[i].changeQuantity(c.Items[i].Quantity + quantity); err != nil {
				return nil, err
			}
			c.touch()
			return &c.Items[i], nil
		}
	}

	item, err := newProductItem(c.ID, product, quantity)
	if err != nil {
		return nil, err
	}

	c.Items = append(c.Items, *item)
	c.touch()

	return item, nil
}

// AddDesign adds a custom design to the cart. The line price is
// captured from the design's base product at this instant.
func (c *ShoppingCart) AddDesign(customDesign *design.CustomDesign, quantity int) (*CartItem, error) {
	if customDesign == nil {
		return nil, shared.NewDomainError("INVALID_DESIGN", "Custom design is required")
	}
	if customDesign.BaseProduct == nil {
		return nil, shared.NewDomainError("INVALID_DESIGN", "Custom design must carry its base product")
	}

	item, err := newDesignItem(c.ID, customDesign, quantity)
	if err != nil {
		return nil, err
	}

	c.Items = append(c.Items, *item)
	c.touch()

	return item, nil
}

// UpdateQuantity changes the quantity of a cart line
func (c *ShoppingCart) UpdateQuantity(itemID uuid.UUID, quantity int) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			if err := c.Items[i].changeQuantity(quantity); err != nil {
				return err
			}
			c.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem removes a line from the cart
func (c *ShoppingCart) RemoveItem(itemID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes all lines from the cart
func (c *ShoppingCart) Clear() {
	c.Items = nil
	c.touch()
}

// IsEmpty returns true if the cart has no lines
func (c *ShoppingCart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total returns the sum of line subtotals
func (c *ShoppingCart) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Subtotal())
	}
	return total
}

// AttachToUser assigns an anonymous cart to a user at login
func (c *ShoppingCart) AttachToUser(userID uuid.UUID) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER_ID", "User ID cannot be empty")
	}
	if c.UserID != nil {
		return shared.NewDomainError("CART_ALREADY_OWNED", "Cart already belongs to a user")
	}

	c.UserID = &userID
	c.touch()

	return nil
}

// Merge moves the lines of another cart into this one. Lines for a
// product already present bump the quantity, keeping this cart's
// captured price.
func (c *ShoppingCart) Merge(other *ShoppingCart) {
	if other == nil {
		return
	}

	for _, item := range other.Items {
		absorbed := false
		if item.ProductID != nil {
			for i := range c.Items {
				if c.Items[i].ProductID != nil && *c.Items[i].ProductID == *item.ProductID {
					_ = c.Items[i].changeQuantity(c.Items[i].Quantity + item.Quantity)
					absorbed = true
					break
				}
			}
		}
		if !absorbed {
			item.CartID = c.ID
			c.Items = append(c.Items, item)
		}
	}

	c.touch()
}

func (c *ShoppingCart) touch() {
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tienda/backend/internal/domain/cart"
	"github.com/tienda/backend/internal/domain/catalog"
	"github.com/tienda/backend/internal/domain/design"
	"github.com/tienda/backend/internal/domain/shared"
)

// Owner identifies who a cart belongs to: a registered user or an
// anonymous session, never both
type Owner struct {
	UserID    *uuid.UUID
	SessionID string
}

// UserOwner builds an Owner for a registered user
func UserOwner(userID uuid.UUID) Owner {
	return Owner{UserID: &userID}
}

// SessionOwner builds an Owner for an anonymous session
func SessionOwner(sessionID string) Owner {
	return Owner{SessionID: sessionID}
}

// Service handles shopping cart operations
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
	designRepo  design.Repository
}

// NewService creates a new cart service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository, designRepo design.Repository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		designRepo:  designRepo,
	}
}

// GetOrCreate returns the owner's cart, creating an empty one on first use
func (s *Service) GetOrCreate(ctx context.Context, owner Owner) (*CartResponse, error) {
	shoppingCart, err := s.findOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	response := ToCartResponse(shoppingCart)
	return &response, nil
}

// AddItem adds a product or custom design line to the owner's cart.
// The line price is captured now and does not follow later catalog
// price changes.
func (s *Service) AddItem(ctx context.Context, owner Owner, req AddItemRequest) (*CartResponse, error) {
	if (req.ProductID == nil) == (req.CustomDesignID == nil) {
		return nil, shared.NewDomainError("INVALID_CART_LINE", "A cart line references exactly one of product or custom design")
	}

	shoppingCart, err := s.findOrCreate(ctx, owner)
	if err != nil {
		return nil, err
	}

	switch {
	case req.ProductID != nil:
		product, err := s.productRepo.FindByID(ctx, *req.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := shoppingCart.AddProduct(product, req.Quantity); err != nil {
			return nil, err
		}
	case req.CustomDesignID != nil:
		customDesign, err := s.designRepo.FindByID(ctx, *req.CustomDesignID)
		if err != nil {
			return nil, err
		}
		if customDesign.BaseProduct == nil {
			baseProduct, err := s.productRepo.FindByID(ctx, customDesign.BaseProductID)
			if err != nil {
				return nil, err
			}
			customDesign.BaseProduct = baseProduct
		}
		if owner.UserID != nil && customDesign.UserID != *owner.UserID {
			return nil, shared.NewDomainError("FORBIDDEN", "Design belongs to another user")
		}
		if _, err := shoppingCart.AddDesign(customDesign, req.Quantity); err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.Save(ctx, shoppingCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(shoppingCart)
	return &response, nil
}

// UpdateQuantity changes the quantity of a cart line
func (s *Service) UpdateQuantity(ctx context.Context, owner Owner, itemID uuid.UUID, req UpdateQuantityRequest) (*CartResponse, error) {
	shoppingCart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := shoppingCart.UpdateQuantity(itemID, req.Quantity); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, shoppingCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(shoppingCart)
	return &response, nil
}

// RemoveItem removes a line from the owner's cart
func (s *Service) RemoveItem(ctx context.Context, owner Owner, itemID uuid.UUID) (*CartResponse, error) {
	shoppingCart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}

	if err := shoppingCart.RemoveItem(itemID); err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, shoppingCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(shoppingCart)
	return &response, nil
}

// Clear removes every line from the owner's cart
func (s *Service) Clear(ctx context.Context, owner Owner) (*CartResponse, error) {
	shoppingCart, err := s.find(ctx, owner)
	if err != nil {
		return nil, err
	}

	shoppingCart.Clear()

	if err := s.cartRepo.Save(ctx, shoppingCart); err != nil {
		return nil, err
	}

	response := ToCartResponse(shoppingCart)
	return &response, nil
}

// MergeSessionCart absorbs an anonymous session cart into the user's
// cart at login. If the user has no cart yet, the session cart is
// attached to the user instead.
func (s *Service) MergeSessionCart(ctx context.Context, userID uuid.UUID, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.cartRepo.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return s.GetOrCreate(ctx, UserOwner(userID))
		}
		return nil, err
	}

	userCart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		// No user cart yet: the session cart becomes the user's
		if err := sessionCart.AttachToUser(userID); err != nil {
			return nil, err
		}
		if err := s.cartRepo.Save(ctx, sessionCart); err != nil {
			return nil, err
		}
		response := ToCartResponse(sessionCart)
		return &response, nil
	}

	userCart.Merge(sessionCart)

	if err := s.cartRepo.Save(ctx, userCart); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(ctx, sessionCart.ID); err != nil {
		return nil, err
	}

	response := ToCartResponse(userCart)
	return &response, nil
}

func (s *Service) find(ctx context.Context, owner Owner) (*cart.ShoppingCart, error) {
	if owner.UserID != nil {
		return s.cartRepo.FindByUser(ctx, *owner.UserID)
	}
	if owner.SessionID != "" {
		return s.cartRepo.FindBySession(ctx, owner.SessionID)
	}
	return nil, shared.NewDomainError("INVALID_CART_OWNER", "A cart owner needs a user or a session")
}

func (s *Service) findOrCreate(ctx context.Context, owner Owner) (*cart.ShoppingCart, error) {
	shoppingCart, err := s.find(ctx, owner)
	if err == nil {
		return shoppingCart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if owner.UserID != nil {
		shoppingCart, err = cart.NewUserCart(*owner.UserID)
	} else {
		shoppingCart, err = cart.NewSessionCart(owner.SessionID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.Save(ctx, shoppingCart); err != nil {
		return nil, err
	}

	return shoppingCart, nil
}

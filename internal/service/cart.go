package service

import (
	"context"
	"lpg-marketplace/internal/dto"
	"lpg-marketplace/internal/model"
	"lpg-marketplace/internal/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*dto.CartResponse, error)
	AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateItem(ctx context.Context, userID, itemID string, qty int64) (*dto.CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartResponse, error)
	Clear(ctx context.Context, userID string) error
}

type cartServiceImpl struct {
	db       *gorm.DB
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
) CartService {
	return &cartServiceImpl{
		db:       db,
		cartRepo: cartRepo,
		itemRepo: itemRepo,
	}
}

func toCartResponse(userID string, cart *model.Cart) *dto.CartResponse {
	if cart == nil {
		return &dto.CartResponse{UserID: userID, Items: []model.CartItem{}, Subtotal: cart.Subtotal()}
	}

	items := cart.Items
	if items == nil {
		items = []model.CartItem{}
	}
	return &dto.CartResponse{
		ID:       cart.ID,
		UserID:   cart.UserID,
		Items:    items,
		Subtotal: cart.Subtotal(),
	}
}

// Get never fails for a user without a cart; it returns an empty one.
func (s *cartServiceImpl) Get(ctx context.Context, userID string) (*dto.CartResponse, error) {
	cart, err := s.cartRepo.FindByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return toCartResponse(userID, nil), nil
		}
		return nil, err
	}

	return toCartResponse(userID, cart), nil
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if req.ItemID == "" {
		return nil, model.ErrInvalidItem
	}
	if req.Qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	var cart *model.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.itemRepo.FindByID(ctx, tx, req.ItemID)
		if err != nil {
			return err
		}
		if !item.IsActive() {
			return model.ErrItemInactive
		}

		cart, err = s.cartRepo.GetOrCreate(ctx, tx, userID)
		if err != nil {
			return errors.Wrap(err, "load cart")
		}

		if err := s.cartRepo.UpsertItem(ctx, tx, cart.ID, item.ID, req.Qty); err != nil {
			return errors.Wrap(err, "add cart item")
		}

		cart, err = s.cartRepo.FindByUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return toCartResponse(userID, cart), nil
}

func (s *cartServiceImpl) UpdateItem(ctx context.Context, userID, itemID string, qty int64) (*dto.CartResponse, error) {
	if qty < 1 {
		return nil, model.ErrInvalidQuantity
	}

	var cart *model.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.cartRepo.FindByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrCartNotFound) {
				return model.ErrCartItemNotFound
			}
			return err
		}

		if err := s.cartRepo.SetItemQty(ctx, tx, current.ID, itemID, qty); err != nil {
			return err
		}

		cart, err = s.cartRepo.FindByUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return toCartResponse(userID, cart), nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID string) (*dto.CartResponse, error) {
	var cart *model.Cart
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.cartRepo.FindByUser(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, model.ErrCartNotFound) {
				return model.ErrCartItemNotFound
			}
			return err
		}

		if err := s.cartRepo.RemoveItem(ctx, tx, current.ID, itemID); err != nil {
			return err
		}

		cart, err = s.cartRepo.FindByUser(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return toCartResponse(userID, cart), nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.FindByUser(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, model.ErrCartNotFound) {
			return nil
		}
		return err
	}

	return s.cartRepo.Clear(ctx, nil, cart.ID)
}

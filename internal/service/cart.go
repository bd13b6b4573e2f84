package service

import (
	"context"
	"database/sql"
	"errors"

	"toolshare-backend/internal/domain"
	"toolshare-backend/internal/repository"
	"toolshare-backend/internal/utils"
)

var ErrItemNotInCart = errors.New("item not in cart")

type cartService struct {
	cartRepo repository.CartRepository
	toolRepo repository.ToolRepository
}

func NewCartService(cartRepo repository.CartRepository, toolRepo repository.ToolRepository) CartService {
	return &cartService{cartRepo: cartRepo, toolRepo: toolRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
	}
	return cart, err
}

// loadOrCreate fetches the user's live cart, lazily creating an empty one
// on first use.
func (s *cartService) loadOrCreate(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUserID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		cart = &domain.Cart{UserID: userID}
		if err := s.cartRepo.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	return cart, err
}

func (s *cartService) AddItem(ctx context.Context, userID, toolID, quantity, rentalDays int32, insurance bool) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	if _, err := s.toolRepo.GetByID(ctx, toolID); err != nil {
		return nil, err
	}

	cart, err := s.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ToolID == toolID {
			cart.Items[i].Quantity += quantity
			cart.Items[i].RentalDays = rentalDays
			cart.Items[i].Insurance = insurance
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{
			ToolID:     toolID,
			Quantity:   quantity,
			RentalDays: rentalDays,
			Insurance:  insurance,
		})
	}

	return s.writeBack(ctx, cart)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, toolID, quantity, rentalDays int32, insurance bool) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}
	cart, err := s.cartRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotInCart
		}
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ToolID == toolID {
			cart.Items[i].Quantity = quantity
			cart.Items[i].RentalDays = rentalDays
			cart.Items[i].Insurance = insurance
			found = true
			break
		}
	}
	if !found {
		return nil, ErrItemNotInCart
	}

	return s.writeBack(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, toolID int32) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotInCart
		}
		return nil, err
	}

	kept := cart.Items[:0]
	found := false
	for _, it := range cart.Items {
		if it.ToolID == toolID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		return nil, ErrItemNotInCart
	}
	cart.Items = kept

	return s.writeBack(ctx, cart)
}

func (s *cartService) ClearCart(ctx context.Context, userID int32) (*domain.Cart, error) {
	cart, err := s.cartRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.Cart{UserID: userID, Items: []domain.CartItem{}}, nil
		}
		return nil, err
	}
	cart.Items = nil
	return s.writeBack(ctx, cart)
}

// writeBack re-prices every line from the current tool price, recomputes
// the total and persists. Derived state is never trusted across requests.
func (s *cartService) writeBack(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	for i := range cart.Items {
		tool, err := s.toolRepo.GetByID(ctx, cart.Items[i].ToolID)
		if err != nil {
			return nil, err
		}
		cart.Items[i].PriceCents = tool.PriceCents
		cart.Items[i].Tool = tool
	}
	cart.TotalCents = utils.CartTotalCents(cart.Items)
	if err := s.cartRepo.Update(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/satancra/bookstore/pkg/bookclient"
	"github.com/satancra/bookstore/pkg/events"
	"github.com/satancra/bookstore/services/cart/internal/models"
	"github.com/satancra/bookstore/services/cart/internal/repo"
)

// BookPricer resolves current price and display metadata of a book.
// Implemented by pkg/bookclient against the catalog service.
type BookPricer interface {
	GetBookDetails(ctx context.Context, bookID uint) (*bookclient.BookDetails, error)
}

type CartService struct {
	Repo     *repo.GormRepo
	Books    BookPricer
	Producer *events.Producer

	checkouts *userLocks
}

func NewCartService(r *repo.GormRepo, books BookPricer, producer *events.Producer) *CartService {
	return &CartService{
		Repo:      r,
		Books:     books,
		Producer:  producer,
		checkouts: newUserLocks(),
	}
}

// CartLine is a cart item together with the book display data the catalog
// service returned for it.
type CartLine struct {
	models.CartItem
	Book *bookclient.BookDetails `json:"book,omitempty"`
}

func (s *CartService) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user_id required: %w", ErrValidation)
	}
	return s.Repo.GetCart(ctx, userID)
}

// AddToCart applies a signed quantity delta to the user's cart line for the
// book; a resulting quantity of zero or less removes the line. Returns nil
// when no line remains.
func (s *CartService) AddToCart(ctx context.Context, userID, bookID uint, quantity int) (*CartLine, error) {
	if userID == 0 || bookID == 0 {
		return nil, fmt.Errorf("user_id and book_id required: %w", ErrValidation)
	}
	if quantity == 0 {
		return nil, fmt.Errorf("quantity must not be zero: %w", ErrValidation)
	}

	book, err := s.lookupBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.UpsertItem(ctx, userID, bookID, quantity)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	return &CartLine{CartItem: *item, Book: book}, nil
}

// UpdateQuantity replaces the quantity of a cart item; a final quantity of
// zero or less removes it. Returns nil when the item was removed.
func (s *CartService) UpdateQuantity(ctx context.Context, cartItemID uint, finalQuantity int) (*models.CartItem, error) {
	if cartItemID == 0 {
		return nil, fmt.Errorf("cart item id required: %w", ErrValidation)
	}

	item, err := s.Repo.SetQuantity(ctx, cartItemID, finalQuantity)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
	}
	return item, err
}

func (s *CartService) RemoveItem(ctx context.Context, cartItemID uint) error {
	if cartItemID == 0 {
		return fmt.Errorf("cart item id required: %w", ErrValidation)
	}
	return s.Repo.DeleteItem(ctx, cartItemID)
}

func (s *CartService) lookupBook(ctx context.Context, bookID uint) (*bookclient.BookDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, pricingTimeout)
	defer cancel()

	book, err := s.Books.GetBookDetails(ctx, bookID)
	switch {
	case errors.Is(err, bookclient.ErrNotFound):
		return nil, fmt.Errorf("book %d: %w", bookID, ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("book %d: %w: %v", bookID, ErrUpstream, err)
	}
	return book, nil
}

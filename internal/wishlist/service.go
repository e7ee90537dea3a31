package wishlist

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
)

const defaultListLimit = 100

// ProductFinder is the slice of the product repository the wishlist needs to
// validate additions and hydrate responses.
type ProductFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

// Service manages a user's saved products.
type Service interface {
	List(ctx context.Context, userID int64, skip, limit int) ([]WishlistDTO, error)
	Add(ctx context.Context, userID, productID int64) (*WishlistDTO, error)
	Remove(ctx context.Context, userID, productID int64) error
}

type service struct {
	repo     *Repository
	products ProductFinder
}

func NewService(repo *Repository, products ProductFinder) (Service, error) {
	if repo == nil {
		return nil, errors.New("wishlist repository required")
	}
	if products == nil {
		return nil, errors.New("product finder required")
	}
	return &service{repo: repo, products: products}, nil
}

// List returns the user's wishlist with product details.
func (s *service) List(ctx context.Context, userID int64, skip, limit int) ([]WishlistDTO, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	if skip < 0 {
		skip = 0
	}
	rows, err := s.repo.ListByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list wishlist")
	}
	out := make([]WishlistDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewWishlistDTO(&rows[i]))
	}
	return out, nil
}

// Add saves a product for the user. Duplicate additions are rejected so the
// client can distinguish "already saved" from success.
func (s *service) Add(ctx context.Context, userID, productID int64) (*WishlistDTO, error) {
	if _, err := s.repo.FindEntry(ctx, userID, productID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product already in wishlist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check wishlist entry")
	}

	prod, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}

	entry, err := s.repo.Create(ctx, &models.Wishlist{UserID: userID, ProductID: productID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert wishlist entry")
	}
	entry.Product = prod
	return NewWishlistDTO(entry), nil
}

// Remove deletes the user's wishlist entry for the product.
func (s *service) Remove(ctx context.Context, userID, productID int64) error {
	deleted, err := s.repo.DeleteEntry(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete wishlist entry")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found in wishlist")
	}
	return nil
}

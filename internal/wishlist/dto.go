package wishlist

import (
	product "github.com/marivelle/catalog-backend/internal/products"
	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// WishlistDTO is one saved product for the requesting user.
type WishlistDTO struct {
	ID        int64               `json:"id"`
	UserID    int64               `json:"user_id"`
	ProductID int64               `json:"product_id"`
	Product   *product.ProductDTO `json:"product"`
}

func NewWishlistDTO(entry *models.Wishlist) *WishlistDTO {
	if entry == nil {
		return nil
	}
	dto := &WishlistDTO{
		ID:        entry.ID,
		UserID:    entry.UserID,
		ProductID: entry.ProductID,
	}
	if entry.Product != nil {
		dto.Product = product.NewProductDTO(entry.Product)
	}
	return dto
}

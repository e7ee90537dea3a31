package product

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/pkg/db"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/pagination"
)

// TrendingLimitMax caps the trending endpoint page size.
const TrendingLimitMax = 20

// Service exposes catalog product operations.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	Trending(ctx context.Context, limit int) ([]ProductDTO, error)
	Create(ctx context.Context, input CreateInput) (*ProductDTO, error)
	Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error)
	Delete(ctx context.Context, id int64) error
}

// VariantInput holds one validated variant payload.
type VariantInput struct {
	SKU           string
	Size          string
	Color         string
	StockQuantity int
	PriceOverride *decimal.Decimal
}

// CreateInput holds the validated payload to create a product.
type CreateInput struct {
	Name              string
	Slug              string
	Description       string
	BasePrice         decimal.Decimal
	IsActive          bool
	CategoryID        *int64
	Variants          []VariantInput
	Images            []ImageInput
	UploadedImageURLs []string
}

// UpdateInput holds optional mutation values for a product. Nil fields are
// left untouched; a nil Images list leaves the gallery alone apart from
// appended uploads.
type UpdateInput struct {
	Name              *string
	Slug              *string
	Description       *string
	BasePrice         *decimal.Decimal
	IsActive          *bool
	CategoryID        *int64
	Variants          *[]VariantInput
	Images            *[]ImageInput
	UploadedImageURLs []string
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, errors.New("product repository required")
	}
	if dbClient == nil {
		return nil, errors.New("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// List runs the filtered/sorted/paginated browse query.
func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, page, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *NewProductDTO(&rows[i]))
	}
	return &ListResult{
		Items: items,
		Total: total,
		Page:  page.Page,
		Size:  page.Size,
		Pages: pagination.Pages(total, page.Size),
	}, nil
}

// Get loads one product with its variants and ordered gallery.
func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	return NewProductDTO(product), nil
}

// Trending returns the newest active products, limit clamped to [1, 20].
func (s *service) Trending(ctx context.Context, limit int) ([]ProductDTO, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > TrendingLimitMax {
		limit = TrendingLimitMax
	}
	rows, err := s.repo.Trending(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: trending products")
	}
	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *NewProductDTO(&rows[i]))
	}
	return items, nil
}

// Create inserts the product with variants and gallery in one transaction.
func (s *service) Create(ctx context.Context, input CreateInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if strings.TrimSpace(input.Slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	var createdID int64
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:        strings.TrimSpace(input.Name),
			Slug:        strings.TrimSpace(input.Slug),
			Description: input.Description,
			BasePrice:   input.BasePrice,
			IsActive:    input.IsActive,
			CategoryID:  input.CategoryID,
		}
		created, err := txRepo.Create(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeValidation, "product with this slug already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if len(input.Variants) > 0 {
			variants := buildVariantRows(created.ID, input.Variants)
			if err := txRepo.ReplaceVariants(ctx, created.ID, variants); err != nil {
				if db.IsUniqueViolation(err, "product_variants_sku_key") {
					return pkgerrors.New(pkgerrors.CodeValidation, "variant with this sku already exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variants")
			}
		}

		images := BuildCreateImages(input.UploadedImageURLs, input.Images)
		for i := range images {
			images[i].ProductID = created.ID
		}
		if err := txRepo.CreateImages(ctx, images); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert images")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.Get(ctx, createdID)
}

// Update mutates the product row, replaces variants when supplied, and
// reconciles the gallery against the supplied image list.
func (s *service) Update(ctx context.Context, id int64, input UpdateInput) (*ProductDTO, error) {
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindBare(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
		}

		applyUpdate(product, input)
		if _, err := txRepo.Save(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "products_slug_key") {
				return pkgerrors.New(pkgerrors.CodeValidation, "product with this slug already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}

		if input.Variants != nil {
			variants := buildVariantRows(product.ID, *input.Variants)
			if err := txRepo.ReplaceVariants(ctx, product.ID, variants); err != nil {
				if db.IsUniqueViolation(err, "product_variants_sku_key") {
					return pkgerrors.New(pkgerrors.CodeValidation, "variant with this sku already exists")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
			}
		}

		if input.Images != nil || len(input.UploadedImageURLs) > 0 {
			if err := s.applyImageChanges(ctx, txRepo, product.ID, input); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.Get(ctx, id)
}

// Delete removes the product; variants and images cascade.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindBare(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	return nil
}

func (s *service) applyImageChanges(ctx context.Context, txRepo *Repository, productID int64, input UpdateInput) error {
	var existing []models.ProductImage
	if err := txRepo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&existing).
		Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load images")
	}

	if input.Images == nil {
		// Uploads only: append, first upload primary when nothing is.
		hasPrimary := false
		for _, img := range existing {
			if img.IsPrimary {
				hasPrimary = true
				break
			}
		}
		rows := make([]models.ProductImage, 0, len(input.UploadedImageURLs))
		for i, url := range input.UploadedImageURLs {
			rows = append(rows, models.ProductImage{
				ProductID: productID,
				ImageURL:  url,
				IsPrimary: !hasPrimary && i == 0,
			})
		}
		if err := txRepo.CreateImages(ctx, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append images")
		}
		return nil
	}

	plan := ReconcileImages(existing, *input.Images, input.UploadedImageURLs)
	if err := txRepo.DeleteImages(ctx, plan.DeleteIDs); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete images")
	}
	if err := txRepo.SetPrimaryImage(ctx, productID, plan.PrimaryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set primary image")
	}
	for i := range plan.NewImages {
		plan.NewImages[i].ProductID = productID
	}
	if err := txRepo.CreateImages(ctx, plan.NewImages); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append images")
	}
	return nil
}

func buildVariantRows(productID int64, inputs []VariantInput) []models.ProductVariant {
	rows := make([]models.ProductVariant, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, models.ProductVariant{
			ProductID:     productID,
			SKU:           strings.TrimSpace(in.SKU),
			Size:          in.Size,
			Color:         in.Color,
			StockQuantity: in.StockQuantity,
			PriceOverride: in.PriceOverride,
		})
	}
	return rows
}

func applyUpdate(product *models.Product, input UpdateInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Slug != nil {
		product.Slug = strings.TrimSpace(*input.Slug)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.BasePrice != nil {
		product.BasePrice = *input.BasePrice
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
}

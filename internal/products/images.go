package product

import (
	"sort"
	"strings"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

// ImageInput is one entry of a client-supplied image list.
type ImageInput struct {
	ImageURL  string `json:"image_url" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

// BuildCreateImages assembles the gallery rows for a new product. Uploaded
// files precede URL-supplied entries; the first uploaded file becomes
// primary. With no uploads, a URL entry flagged is_primary wins, otherwise
// the first URL entry is promoted.
func BuildCreateImages(uploaded []string, urls []ImageInput) []models.ProductImage {
	images := make([]models.ProductImage, 0, len(uploaded)+len(urls))
	for i, url := range uploaded {
		images = append(images, models.ProductImage{ImageURL: url, IsPrimary: i == 0})
	}

	flagged := false
	for _, entry := range urls {
		if entry.IsPrimary {
			flagged = true
			break
		}
	}
	for i, entry := range urls {
		primary := false
		if len(uploaded) == 0 {
			if flagged {
				primary = entry.IsPrimary
			} else {
				primary = i == 0
			}
		}
		images = append(images, models.ProductImage{ImageURL: entry.ImageURL, IsPrimary: primary})
	}
	return images
}

// ReconcilePlan is the outcome of matching an update's image list against the
// stored gallery. The repository applies it clear-then-set inside one
// transaction.
type ReconcilePlan struct {
	// DeleteIDs are stored images absent from the supplied list.
	DeleteIDs []int64
	// PrimaryID is the surviving image to promote, 0 when the gallery is
	// empty or a new upload takes primary instead.
	PrimaryID int64
	// NewImages are uploaded files appended after reconciliation.
	NewImages []models.ProductImage
}

// ReconcileImages matches stored images against the supplied keep list by
// normalized path, deletes the unmatched, picks the primary (explicit flag
// wins, else the first kept image), and appends uploads. The first upload is
// primary only when nothing kept claims it. Existing must be ordered by id
// ascending.
func ReconcileImages(existing []models.ProductImage, keep []ImageInput, uploaded []string) ReconcilePlan {
	var plan ReconcilePlan
	var kept []models.ProductImage
	var explicit int64

	for _, img := range existing {
		matched := false
		for _, entry := range keep {
			if sameImage(img.ImageURL, entry.ImageURL) {
				matched = true
				if entry.IsPrimary && explicit == 0 {
					explicit = img.ID
				}
				break
			}
		}
		if matched {
			kept = append(kept, img)
		} else {
			plan.DeleteIDs = append(plan.DeleteIDs, img.ID)
		}
	}

	switch {
	case explicit != 0:
		plan.PrimaryID = explicit
	case len(kept) > 0:
		plan.PrimaryID = kept[0].ID
	}

	for i, url := range uploaded {
		primary := plan.PrimaryID == 0 && i == 0
		plan.NewImages = append(plan.NewImages, models.ProductImage{ImageURL: url, IsPrimary: primary})
	}
	return plan
}

// sameImage reports whether two URLs address the same stored file. Comparison
// is on normalized paths so absolute and relative forms of one URL still
// match.
func sameImage(a, b string) bool {
	pa, pb := canonicalImagePath(a), canonicalImagePath(b)
	if pa == "" || pb == "" {
		return pa == pb
	}
	if pa == pb {
		return true
	}
	return strings.HasSuffix(pa, "/"+pb) || strings.HasSuffix(pb, "/"+pa)
}

// canonicalImagePath strips the scheme, host, query, and leading slashes.
func canonicalImagePath(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+3:]
		if slash := strings.IndexByte(s, '/'); slash >= 0 {
			s = s[slash:]
		} else {
			s = ""
		}
	}
	if cut := strings.IndexAny(s, "?#"); cut >= 0 {
		s = s[:cut]
	}
	return strings.TrimLeft(s, "/")
}

// SortImagesPrimaryFirst stable-sorts a gallery so the primary image comes
// first, ties broken by id ascending.
func SortImagesPrimaryFirst(images []models.ProductImage) {
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].IsPrimary != images[j].IsPrimary {
			return images[i].IsPrimary
		}
		return images[i].ID < images[j].ID
	})
}

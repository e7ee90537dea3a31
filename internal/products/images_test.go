package product

import (
	"testing"

	"github.com/marivelle/catalog-backend/pkg/db/models"
)

func TestBuildCreateImagesUploadsTakePrimary(t *testing.T) {
	images := BuildCreateImages(
		[]string{"/uploads/a.jpg", "/uploads/b.jpg"},
		[]ImageInput{{ImageURL: "https://cdn.example.com/c.jpg", IsPrimary: true}},
	)

	if len(images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(images))
	}
	if images[0].ImageURL != "/uploads/a.jpg" || !images[0].IsPrimary {
		t.Fatalf("expected first upload primary, got %+v", images[0])
	}
	if images[1].IsPrimary || images[2].IsPrimary {
		t.Fatalf("only the first upload should be primary: %+v", images)
	}
}

func TestBuildCreateImagesURLFlagWins(t *testing.T) {
	images := BuildCreateImages(nil, []ImageInput{
		{ImageURL: "a.jpg"},
		{ImageURL: "b.jpg", IsPrimary: true},
	})

	if images[0].IsPrimary {
		t.Fatalf("first entry should not be primary when another is flagged")
	}
	if !images[1].IsPrimary {
		t.Fatalf("flagged entry should be primary")
	}
}

func TestBuildCreateImagesFirstURLDefaultPrimary(t *testing.T) {
	images := BuildCreateImages(nil, []ImageInput{
		{ImageURL: "a.jpg"},
		{ImageURL: "b.jpg"},
	})

	if !images[0].IsPrimary || images[1].IsPrimary {
		t.Fatalf("expected first URL primary by default, got %+v", images)
	}
}

func TestSameImageToleratesAbsoluteVsRelative(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"https://cdn.example.com/uploads/x.jpg", "/uploads/x.jpg", true},
		{"/uploads/x.jpg", "uploads/x.jpg", true},
		{"https://cdn.example.com/uploads/x.jpg?v=2", "/uploads/x.jpg", true},
		{"/uploads/x.jpg", "/uploads/y.jpg", false},
		{"/uploads/box.jpg", "/uploads/x.jpg", false},
		{"", "", true},
		{"", "/uploads/x.jpg", false},
	}
	for _, tc := range cases {
		if got := sameImage(tc.a, tc.b); got != tc.want {
			t.Errorf("sameImage(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestReconcileImagesDeletesUnmatched(t *testing.T) {
	existing := []models.ProductImage{
		{ID: 1, ImageURL: "/uploads/keep.jpg", IsPrimary: true},
		{ID: 2, ImageURL: "/uploads/drop.jpg"},
	}
	plan := ReconcileImages(existing, []ImageInput{
		{ImageURL: "https://cdn.example.com/uploads/keep.jpg"},
	}, nil)

	if len(plan.DeleteIDs) != 1 || plan.DeleteIDs[0] != 2 {
		t.Fatalf("expected image 2 deleted, got %v", plan.DeleteIDs)
	}
	if plan.PrimaryID != 1 {
		t.Fatalf("expected image 1 promoted, got %d", plan.PrimaryID)
	}
	if len(plan.NewImages) != 0 {
		t.Fatalf("expected no new images")
	}
}

func TestReconcileImagesExplicitPrimaryWins(t *testing.T) {
	existing := []models.ProductImage{
		{ID: 1, ImageURL: "/uploads/a.jpg", IsPrimary: true},
		{ID: 2, ImageURL: "/uploads/b.jpg"},
	}
	plan := ReconcileImages(existing, []ImageInput{
		{ImageURL: "/uploads/a.jpg"},
		{ImageURL: "/uploads/b.jpg", IsPrimary: true},
	}, nil)

	if plan.PrimaryID != 2 {
		t.Fatalf("expected explicit flag to win, got %d", plan.PrimaryID)
	}
	if len(plan.DeleteIDs) != 0 {
		t.Fatalf("expected nothing deleted, got %v", plan.DeleteIDs)
	}
}

func TestReconcileImagesPromotesFirstKept(t *testing.T) {
	existing := []models.ProductImage{
		{ID: 5, ImageURL: "/uploads/a.jpg"},
		{ID: 6, ImageURL: "/uploads/b.jpg", IsPrimary: true},
	}
	plan := ReconcileImages(existing, []ImageInput{
		{ImageURL: "/uploads/a.jpg"},
		{ImageURL: "/uploads/b.jpg"},
	}, nil)

	if plan.PrimaryID != 5 {
		t.Fatalf("expected first kept image promoted, got %d", plan.PrimaryID)
	}
}

func TestReconcileImagesUploadPrimaryOnlyWhenGalleryEmpties(t *testing.T) {
	existing := []models.ProductImage{
		{ID: 1, ImageURL: "/uploads/old.jpg", IsPrimary: true},
	}

	// everything deleted, upload takes primary
	plan := ReconcileImages(existing, []ImageInput{}, []string{"/uploads/new.jpg"})
	if len(plan.DeleteIDs) != 1 {
		t.Fatalf("expected old image deleted, got %v", plan.DeleteIDs)
	}
	if plan.PrimaryID != 0 {
		t.Fatalf("expected no surviving primary, got %d", plan.PrimaryID)
	}
	if len(plan.NewImages) != 1 || !plan.NewImages[0].IsPrimary {
		t.Fatalf("expected upload to become primary, got %+v", plan.NewImages)
	}

	// kept image holds primary, upload appended non-primary
	plan = ReconcileImages(existing, []ImageInput{
		{ImageURL: "/uploads/old.jpg"},
	}, []string{"/uploads/new.jpg"})
	if plan.PrimaryID != 1 {
		t.Fatalf("expected kept image to stay primary, got %d", plan.PrimaryID)
	}
	if plan.NewImages[0].IsPrimary {
		t.Fatalf("upload should not be primary while a kept image holds it")
	}
}

func TestSortImagesPrimaryFirst(t *testing.T) {
	images := []models.ProductImage{
		{ID: 3},
		{ID: 1},
		{ID: 2, IsPrimary: true},
	}
	SortImagesPrimaryFirst(images)

	if images[0].ID != 2 {
		t.Fatalf("expected primary first, got id %d", images[0].ID)
	}
	if images[1].ID != 1 || images[2].ID != 3 {
		t.Fatalf("expected id-ascending tie break, got %+v", images)
	}
}

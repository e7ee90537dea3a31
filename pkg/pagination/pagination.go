package pagination

const (
	// DefaultPageSize is the standard page size when none is provided.
	DefaultPageSize = 20
	// MaxPageSize caps how many rows any listing can request.
	MaxPageSize = 100
)

// Params holds raw pagination inputs from controllers. Page/PageSize are the
// primary interface; Skip/Limit are the legacy offset interface kept for
// backward compatibility with older API clients.
type Params struct {
	Page     *int
	PageSize *int
	Skip     *int
	Limit    *int
}

// Normalized is a resolved page request.
type Normalized struct {
	Page int
	Size int
}

// Offset returns the row offset for the resolved page.
func (n Normalized) Offset() int {
	return (n.Page - 1) * n.Size
}

// Normalize resolves the two parameter styles into a single page request.
// When the legacy skip/limit pair is present it is converted:
// page = skip/limit + 1 (integer division) and page_size = limit. The result
// is clamped to page >= 1 and 1 <= size <= MaxPageSize.
func Normalize(p Params) Normalized {
	size := DefaultPageSize
	if p.PageSize != nil && *p.PageSize > 0 {
		size = *p.PageSize
	}
	if p.Limit != nil && *p.Limit > 0 {
		size = *p.Limit
	}

	page := 1
	if p.Page != nil && *p.Page > 0 {
		page = *p.Page
	}
	if p.Skip != nil && *p.Skip > 0 {
		page = *p.Skip/size + 1
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}

	return Normalized{Page: page, Size: size}
}

// Pages computes the page count for a total row count: ceil(total/size),
// or 0 when the result set is empty.
func Pages(total int64, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return int(pages)
}

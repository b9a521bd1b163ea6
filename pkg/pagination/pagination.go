package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any page query can request.
	MaxLimit = 100
)

// Params holds page pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Page describes the pagination metadata returned alongside a result set.
type Page struct {
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	TotalCount  int64 `json:"total_count"`
}

// Normalize enforces the configured default and maximum limits and a
// one-based page number.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	norm := Normalize(p)
	return (norm.Page - 1) * norm.Limit
}

// Build computes the page metadata for a total row count.
func Build(p Params, total int64) Page {
	norm := Normalize(p)
	totalPages := int((total + int64(norm.Limit) - 1) / int64(norm.Limit))
	return Page{
		TotalPages:  totalPages,
		CurrentPage: norm.Page,
		TotalCount:  total,
	}
}

package pagination

const (
	// DefaultPageSize is the standard page size when one is not provided.
	DefaultPageSize = 12
	// MaxPageSize caps how many items any page can request.
	MaxPageSize = 50
)

// Page holds normalized page-number pagination inputs.
type Page struct {
	Number int
	Size   int
}

// Result describes one resolved page of a larger sequence.
type Result struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Normalize enforces defaults and caps on raw page inputs.
func Normalize(number, size int) Page {
	if number <= 0 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

// Slice resolves one page of items. A page past the end of the sequence
// resets to page 1 instead of returning an empty page, so a filter change
// that shrinks the result set never strands the caller.
func Slice[T any](items []T, p Page) ([]T, Result) {
	p = Normalize(p.Number, p.Size)
	total := len(items)
	totalPages := (total + p.Size - 1) / p.Size
	if totalPages == 0 {
		totalPages = 1
	}
	if p.Number > totalPages {
		p.Number = 1
	}

	start := (p.Number - 1) * p.Size
	if start > total {
		start = total
	}
	end := start + p.Size
	if end > total {
		end = total
	}

	return items[start:end], Result{
		Page:       p.Number,
		PageSize:   p.Size,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

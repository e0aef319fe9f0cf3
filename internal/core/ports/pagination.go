package ports

// PageMeta is the pagination envelope returned by every list endpoint.
// TotalPages is always ceil(Total / Limit).
type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// NewPageMeta computes the meta block for a page. Limit must already be
// normalized (>= 1).
func NewPageMeta(total int64, page, limit int) PageMeta {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// NormalizePage clamps raw pagination inputs to the supported range:
// page >= 1 (default 1), 1 <= limit <= 100 (default 10).
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

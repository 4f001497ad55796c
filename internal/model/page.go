package model

// PageRequest describes which slice of a list to return.
type PageRequest struct {
	Page     int
	PageSize int
}

func (p PageRequest) GetPage() int {
	if p.Page < 1 {
		return 1
	}
	return p.Page
}

func (p PageRequest) GetPageSize() int {
	if p.PageSize < 1 {
		return 10
	}
	return p.PageSize
}

func (p PageRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// Pagination holds one page of items plus navigation metadata.
type Pagination[T any] struct {
	Items      []T  `json:"items"`
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_previous"`
}

// NewPagination wraps items fetched for req out of total rows.
func NewPagination[T any](req PageRequest, items []T, total int) *Pagination[T] {
	if items == nil {
		items = make([]T, 0)
	}
	size := req.GetPageSize()
	pages := (total + size - 1) / size
	return &Pagination[T]{
		Items:      items,
		Page:       req.GetPage(),
		PageSize:   size,
		Total:      total,
		TotalPages: pages,
		HasNext:    req.GetPage() < pages,
		HasPrev:    req.GetPage() > 1,
	}
}

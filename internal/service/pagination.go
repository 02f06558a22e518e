package service

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewPagination totalPages = ceil(total/limit)，total=0 时为 0
func NewPagination(page, limit int, total int64) Pagination {
	tp := 0
	if total > 0 {
		tp = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: tp}
}

func clampLimit(limit, def int) int {
	if limit < 1 {
		return def
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

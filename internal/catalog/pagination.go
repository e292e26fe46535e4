package catalog

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Pagination) Validate() error {
	if p.Page < 1 || p.Limit < 1 {
		return ErrInvalidPagination
	}
	return nil
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Sort struct {
	Field string `json:"sortField"`
	Order string `json:"sortOrder"`
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

package catalog

import "skillbridge/internal/domain"

type CreateServiceRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=120"`
	Description string  `json:"description" validate:"max=4000"`
	Category    string  `json:"category" validate:"required,max=64"`
	Price       float64 `json:"price" validate:"gte=0"`
	Location    string  `json:"location" validate:"max=255"`
}

// UpdateServiceRequest: nil fields are left unchanged.
type UpdateServiceRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=3,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=4000"`
	Category    *string  `json:"category" validate:"omitempty,min=1,max=64"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Location    *string  `json:"location" validate:"omitempty,max=255"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

type ListFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type ListResult struct {
	Items  []domain.WorkerService `json:"items"`
	Total  int64                  `json:"total"`
	Limit  int                    `json:"limit"`
	Offset int                    `json:"offset"`
}

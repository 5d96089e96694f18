package review

import "skillbridge/internal/domain"

type CreateReviewRequest struct {
	BookingID int64  `json:"booking_id" validate:"required,gt=0"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment,omitempty" validate:"max=2000"`
}

type RespondRequest struct {
	Response string `json:"response"`
}

type ListResult struct {
	Items  []domain.Review `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

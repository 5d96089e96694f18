package saved

import (
	"time"

	"skillbridge/internal/domain"
)

// SavedResponse is one bookmark with a short view of its service.
type SavedResponse struct {
	ID        int64         `json:"id"`
	ServiceID int64         `json:"service_id"`
	Service   *ServiceBrief `json:"service,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ServiceBrief is the short service info shown in the saved list.
type ServiceBrief struct {
	ID       int64   `json:"id"`
	WorkerID int64   `json:"worker_id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url,omitempty"`
	IsActive bool    `json:"is_active"`
}

type SavedListResponse struct {
	Items      []SavedResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PerPage    int             `json:"per_page"`
	TotalPages int             `json:"total_pages"`
}

type ToggleResponse struct {
	Saved bool `json:"saved"`
}

type CheckResponse struct {
	IsSaved bool `json:"is_saved"`
}

func toSavedResponse(s *domain.SavedService) SavedResponse {
	resp := SavedResponse{
		ID:        s.ID,
		ServiceID: s.ServiceID,
		CreatedAt: s.CreatedAt,
	}
	if s.Service != nil {
		resp.Service = &ServiceBrief{
			ID:       s.Service.ID,
			WorkerID: s.Service.WorkerID,
			Title:    s.Service.Title,
			Category: s.Service.Category,
			Price:    s.Service.Price,
			ImageURL: s.Service.ImageURL,
			IsActive: s.Service.IsActive,
		}
	}
	return resp
}

func toSavedListResponse(rows []domain.SavedService, total int64, page, perPage int) SavedListResponse {
	items := make([]SavedResponse, len(rows))
	for i := range rows {
		items[i] = toSavedResponse(&rows[i])
	}

	totalPages := int(total) / perPage
	if int(total)%perPage > 0 {
		totalPages++
	}

	return SavedListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}

package dto

import (
	"time"

	"github.com/qwego/maintenance-service/internal/domain"
)

// PostAnnouncementRequest payload.
type PostAnnouncementRequest struct {
	Title      string `json:"title"`
	Message    string `json:"message"`
	TargetRole string `json:"target_role"`
}

// AnnouncementResponse is the public view of a broadcast.
type AnnouncementResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Message    string            `json:"message"`
	TargetRole domain.TargetRole `json:"target_role"`
	AuthorID   string            `json:"author_id"`
	CreatedAt  time.Time         `json:"created_at"`
}

// NewAnnouncementResponse maps a domain announcement.
func NewAnnouncementResponse(announcement *domain.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:         announcement.ID,
		Title:      announcement.Title,
		Message:    announcement.Message,
		TargetRole: announcement.TargetRole,
		AuthorID:   announcement.AuthorID,
		CreatedAt:  announcement.CreatedAt,
	}
}

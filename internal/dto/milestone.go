package dto

import (
	"time"

	"github.com/skywalker/milestone_backend/internal/core/domain"
)

// Milestone dates travel as yyyy-MM-dd strings on the wire, matching the
// frontend's date inputs.
const dateLayout = time.DateOnly

// CreateMilestoneRequest is the body for POST /api/milestones.
type CreateMilestoneRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	AchieveDate *string `json:"achieveDate" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateMilestoneRequest is the body for PUT /api/milestones/:id. Pointer
// fields distinguish omitted keys from zero values.
type UpdateMilestoneRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	AchieveDate   *string `json:"achieveDate" binding:"omitempty,datetime=2006-01-02"`
	Completed     *bool   `json:"completed"`
	CompletedDate *string `json:"completedDate" binding:"omitempty,datetime=2006-01-02"`
}

// MilestoneResponse is the public view of a milestone.
type MilestoneResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Completed     bool   `json:"completed"`
	AchieveDate   string `json:"achieveDate,omitempty"`
	CompletedDate string `json:"completedDate,omitempty"`
	CreatedDate   string `json:"createdDate"`
}

// ListMilestonesResponse wraps the list of milestones.
type ListMilestonesResponse struct {
	Milestones []MilestoneResponse `json:"milestones"`
}

// ParseDate parses a yyyy-MM-dd wire date. Callers validate format first via
// binding tags; this is the single place the layout is interpreted.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// ToMilestoneResponse converts a domain.Milestone to its API representation.
func ToMilestoneResponse(m *domain.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:            m.MilestoneID,
		UserID:        m.UserID,
		Title:         m.Title,
		Description:   m.Description,
		Completed:     m.Completed,
		AchieveDate:   formatDate(m.AchieveDate),
		CompletedDate: formatDate(m.CompletedDate),
		CreatedDate:   m.CreatedAt.Format(dateLayout),
	}
}

// ToListMilestonesResponse converts a slice of domain.Milestone.
func ToListMilestonesResponse(ms []domain.Milestone) ListMilestonesResponse {
	responses := make([]MilestoneResponse, len(ms))
	for i := range ms {
		responses[i] = ToMilestoneResponse(&ms[i])
	}
	return ListMilestonesResponse{Milestones: responses}
}

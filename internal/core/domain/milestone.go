package domain

import "time"

// Milestone is a personal goal owned by exactly one user. All reads and
// writes are scoped by (MilestoneID, UserID) so one user can never touch
// another's records.
type Milestone struct {
	MilestoneID   string     `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Completed     bool       `json:"completed"`
	AchieveDate   *time.Time `json:"achieveDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	CreatedAt     time.Time  `json:"createdDate"`
}

package models

import "time"

// Table names a countable record family.
type Table string

const (
	TableEntities    Table = "entities"
	TableFeedback    Table = "feedback"
	TableSubmissions Table = "submissions"
)

// Dimension names a column records can be grouped by.
type Dimension string

const (
	DimEntityType   Dimension = "entity_type"
	DimGovernorate  Dimension = "governorate"
	DimFeedbackType Dimension = "feedback_type"
	DimPriority     Dimension = "priority"
)

// Filter narrows a count. Zero fields do not filter.
type Filter struct {
	Approved *bool
	Status   string
	Since    time.Time
}

func Approved(v bool) Filter { return Filter{Approved: &v} }

func WithStatus(status string) Filter { return Filter{Status: status} }

func CreatedSince(t time.Time) Filter { return Filter{Since: t} }

// EntityStats summarizes entity registrations.
type EntityStats struct {
	TotalEntities         int            `json:"total_entities"`
	ApprovedEntities      int            `json:"approved_entities"`
	PendingEntities       int            `json:"pending_entities"`
	EntitiesByType        map[string]int `json:"entities_by_type"`
	EntitiesByGovernorate map[string]int `json:"entities_by_governorate"`
	RecentSubmissions     int            `json:"recent_submissions"`
}

// FeedbackStats summarizes citizen feedback. In-progress and closed reports
// count toward the total only.
type FeedbackStats struct {
	TotalFeedback      int            `json:"total_feedback"`
	PendingFeedback    int            `json:"pending_feedback"`
	ResolvedFeedback   int            `json:"resolved_feedback"`
	FeedbackByType     map[string]int `json:"feedback_by_type"`
	FeedbackByPriority map[string]int `json:"feedback_by_priority"`
	RecentFeedback     int            `json:"recent_feedback"`
}

// Dashboard is the combined snapshot shown to staff.
type Dashboard struct {
	GovernmentEntities EntityStats   `json:"government_entities"`
	CitizenFeedback    FeedbackStats `json:"citizen_feedback"`
	TotalSubmissions   int           `json:"total_submissions"`
	ActiveUsers        int           `json:"active_users"`
}

package activityapimodels

import (
	"time"

	"hr-requests-backend/models"
	dbmodels "hr-requests-backend/models/db"
)

type ActivityView struct {
	ID        string                `json:"id"`
	Action    models.ActivityAction `json:"action"`
	RequestID string                `json:"request_id,omitempty"`
	Details   string                `json:"details,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}

func ActivityConvert(rec dbmodels.ActivityLog) ActivityView {
	return ActivityView{
		ID:        rec.ID,
		Action:    rec.Action,
		RequestID: rec.RequestID,
		Details:   rec.Details,
		CreatedAt: rec.CreatedAt,
	}
}

package dbmodels

import (
	"hr-requests-backend/models"
)

// ActivityLog - журнал действий, только добавление.
// RequestID намеренно хранится строкой без связи, чтобы запись
// переживала удаление заявки.
type ActivityLog struct {
	BaseModel
	ActorID   string                `gorm:"type:varchar(36);index"`
	Actor     *User                 `gorm:"foreignKey:ActorID"`
	Action    models.ActivityAction `gorm:"type:varchar(50)"`
	RequestID string                `gorm:"type:varchar(36);index"`
	Details   string
}

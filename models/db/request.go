package dbmodels

import (
	"time"

	"gorm.io/gorm"

	"hr-requests-backend/models"
)

type Request struct {
	BaseModel
	Kind         models.RequestKind     `gorm:"type:varchar(20);index"`
	Type         models.RequestType     `gorm:"type:varchar(50)"`
	Title        string                 `gorm:"type:varchar(255)"`
	Description  string
	Priority     models.RequestPriority `gorm:"type:varchar(20)"`
	Status       models.RequestStatus   `gorm:"type:varchar(20);index"`
	DateFrom     *time.Time
	DateTo       *time.Time
	DueDate      *time.Time
	Paid         *bool
	Comment      string
	EmployeeID   string              `gorm:"type:varchar(36);index"`
	Employee     *User               `gorm:"foreignKey:EmployeeID"`
	ManagerID    string              `gorm:"type:varchar(36);index"`
	Manager      *User               `gorm:"foreignKey:ManagerID"`
	SubstituteID *string             `gorm:"type:varchar(36)"`
	Substitute   *User               `gorm:"foreignKey:SubstituteID"`
	Decisions    []Decision          `gorm:"foreignKey:RequestID"`
	Attachments  []RequestAttachment `gorm:"foreignKey:RequestID"`
}

// Решения по заявке удаляются вместе с ней, журнал активности остается.
func (r *Request) AfterDelete(tx *gorm.DB) (err error) {
	if r.ID == "" {
		return nil
	}
	tx.Where("request_id = ?", r.ID).Delete(&Decision{})
	tx.Where("request_id = ?", r.ID).Delete(&RequestAttachment{})
	return
}

type Decision struct {
	BaseModel
	RequestID string                `gorm:"type:varchar(36);index"`
	ActorID   string                `gorm:"type:varchar(36)"`
	Actor     *User                 `gorm:"foreignKey:ActorID"`
	Action    models.DecisionAction `gorm:"type:varchar(20)"`
	Comment   string
}

type RequestAttachment struct {
	BaseModel
	RequestID  string `gorm:"type:varchar(36);index"`
	UploaderID string `gorm:"type:varchar(36)"`
	FileName   string `gorm:"type:varchar(255)"`
	ObjectKey  string `gorm:"type:varchar(64)"`
	Size       int64
}

package dbmodels

import (
	"hr-requests-backend/models"
	"time"
)

type User struct {
	BaseModel
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Name      string          `gorm:"type:varchar(255)"`
	Password  string          `gorm:"type:varchar(128)"`
	Role      models.UserRole `gorm:"type:varchar(50)"`
	LastLogin time.Time
}

func (r User) IsManager() bool {
	return r.Role.IsManager()
}

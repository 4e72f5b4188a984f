package decisionstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Decision) (id string, err error)
	ListByRequest(requestID string) (list []dbmodels.Decision, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Decision) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.Decision, err error) {
	list = []dbmodels.Decision{}
	err = i.db.
		Model(&dbmodels.Decision{}).
		Where("request_id = ?", requestID).
		Order("created_at desc").
		Preload("Actor").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

package activitylogstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ActivityLog) (id string, err error)
	ListByUser(userID string, limit int) (list []dbmodels.ActivityLog, err error)
	ListByRequest(requestID string) (list []dbmodels.ActivityLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ActivityLog) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByUser(userID string, limit int) (list []dbmodels.ActivityLog, err error) {
	list = []dbmodels.ActivityLog{}
	tx := i.db.
		Model(&dbmodels.ActivityLog{}).
		Where("actor_id = ?", userID).
		Order("created_at desc")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByRequest(requestID string) (list []dbmodels.ActivityLog, err error) {
	list = []dbmodels.ActivityLog{}
	err = i.db.
		Model(&dbmodels.ActivityLog{}).
		Where("request_id = ?", requestID).
		Order("created_at desc").
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

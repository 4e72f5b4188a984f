package subscriptionstore

import (
	"strings"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Set(watcherID, watchedID string) error
	Remove(watcherID, watchedID string) error
	Exist(watcherID, watchedID string) (bool, error)
	ListByWatcher(watcherID string) (list []dbmodels.Subscription, err error)
	ListWatcherIDs(watchedID string) (ids []string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Set создает подписку. Повторная подписка не считается ошибкой.
func (i impl) Set(watcherID, watchedID string) error {
	rec := dbmodels.Subscription{
		WatcherID: watcherID,
		WatchedID: watchedID,
	}
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		if isDuplicate(err) {
			return nil
		}
		return errors.Wrap(err, "ошибка оформления подписки")
	}
	return nil
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "(SQLSTATE 23505)")
}

func (i impl) Remove(watcherID, watchedID string) error {
	rec := dbmodels.Subscription{}
	err := i.db.Model(&dbmodels.Subscription{}).
		Where("watcher_id = ?", watcherID).
		Where("watched_id = ?", watchedID).
		Delete(&rec).Error
	if err != nil {
		return errors.Wrap(err, "ошибка отмены подписки")
	}
	return nil
}

func (i impl) Exist(watcherID, watchedID string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.Subscription{}).
		Where("watcher_id = ?", watcherID).
		Where("watched_id = ?", watchedID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (i impl) ListByWatcher(watcherID string) (list []dbmodels.Subscription, err error) {
	list = []dbmodels.Subscription{}
	err = i.db.
		Model(&dbmodels.Subscription{}).
		Where("watcher_id = ?", watcherID).
		Order("created_at desc").
		Preload("Watched").
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

func (i impl) ListWatcherIDs(watchedID string) (ids []string, err error) {
	ids = []string{}
	err = i.db.
		Model(&dbmodels.Subscription{}).
		Where("watched_id = ?", watchedID).
		Pluck("watcher_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

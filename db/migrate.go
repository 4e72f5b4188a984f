package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "hr-requests-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Request{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Request")
	}
	if err := DB.AutoMigrate(&dbmodels.Decision{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Decision")
	}
	if err := DB.AutoMigrate(&dbmodels.ActivityLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ActivityLog")
	}
	if err := DB.AutoMigrate(&dbmodels.Subscription{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Subscription")
	}
	if err := DB.AutoMigrate(&dbmodels.RequestAttachment{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры RequestAttachment")
	}
	log.Info("Миграция прошла успешно")
	return nil
}

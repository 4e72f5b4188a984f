package db

import (
	log "github.com/sirupsen/logrus"

	"hr-requests-backend/config"
	usersstore "hr-requests-backend/lib/users/store"
	authutils "hr-requests-backend/lib/utils/auth-utils"
	"hr-requests-backend/models"
	dbmodels "hr-requests-backend/models/db"
)

func InitPreload() {
	addDefaultManager()
}

func addDefaultManager() {
	if config.Conf.Admin.Email == "" {
		log.Warn("руководитель по умолчанию не добавлен, отсутсвует настройка ADMIN_EMAIL")
		return
	}
	store := usersstore.NewInstance(DB)
	existedRec, err := store.FindByEmail(config.Conf.Admin.Email)
	if err != nil {
		log.WithError(err).Error("ошибка добавления руководителя по умолчанию")
		return
	}
	if existedRec != nil {
		return
	}
	rec := dbmodels.User{
		Email:    config.Conf.Admin.Email,
		Name:     config.Conf.Admin.Name,
		Password: authutils.GetMD5Hash(config.Conf.Admin.Password),
		Role:     models.UserRoleManager,
	}
	_, err = store.Create(rec)
	if err != nil {
		log.WithError(err).Error("ошибка добавления руководителя по умолчанию")
	}
}

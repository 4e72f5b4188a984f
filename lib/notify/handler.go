// Package notifyhandler рассылает уведомления о событиях по заявкам.
// Рассылка выполняется после фиксации транзакции и не влияет на результат операции.
package notifyhandler

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"hr-requests-backend/config"
	"hr-requests-backend/db"
	"hr-requests-backend/lib/smtp"
	subscriptionstore "hr-requests-backend/lib/subscription/store"
	usersstore "hr-requests-backend/lib/users/store"
	connectionhub "hr-requests-backend/lib/ws/hub/connection-hub"
	dbmodels "hr-requests-backend/models/db"
	wsmodels "hr-requests-backend/models/ws"
)

type Provider interface {
	RequestCreated(req dbmodels.Request)
	RequestDecided(req dbmodels.Request, actorName string)
	RequestForwarded(req dbmodels.Request, newManagerID, actorName string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore:         usersstore.NewInstance(db.DB),
		subscriptionStore: subscriptionstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore         usersstore.Provider
	subscriptionStore subscriptionstore.Provider
}

func (i impl) RequestCreated(req dbmodels.Request) {
	go func() {
		msg := fmt.Sprintf("Новая заявка: %v", requestTitle(req))
		i.notifyUser(req.ManagerID, wsmodels.CodeRequestCreated, req.ID, msg, "Новая заявка")
	}()
}

func (i impl) RequestDecided(req dbmodels.Request, actorName string) {
	go func() {
		msg := fmt.Sprintf("По заявке \"%v\" принято решение: %v (%v)", requestTitle(req), req.Status.ToHuman(), actorName)
		subject := "Решение по заявке"
		i.notifyUser(req.EmployeeID, wsmodels.CodeRequestDecided, req.ID, msg, subject)

		watcherIDs, err := i.subscriptionStore.ListWatcherIDs(req.EmployeeID)
		if err != nil {
			log.WithError(err).Error("ошибка получения списка подписчиков")
			return
		}
		for _, watcherID := range watcherIDs {
			i.notifyUser(watcherID, wsmodels.CodeRequestDecided, req.ID, msg, subject)
		}
	}()
}

func (i impl) RequestForwarded(req dbmodels.Request, newManagerID, actorName string) {
	go func() {
		msg := fmt.Sprintf("Заявка \"%v\" передана вам на рассмотрение (%v)", requestTitle(req), actorName)
		i.notifyUser(newManagerID, wsmodels.CodeRequestForwarded, req.ID, msg, "Заявка передана")
	}()
}

func (i impl) notifyUser(userID, code, requestID, msg, subject string) {
	logger := log.
		WithField("user_id", userID).
		WithField("request_id", requestID)

	if connectionhub.Instance != nil {
		connectionhub.Instance.SendMessage(wsmodels.ServerMessage{
			ToUserID:  userID,
			Time:      time.Now().Format("02.01.2006 15:04:05"),
			Code:      code,
			RequestID: requestID,
			Msg:       msg,
		})
	}

	if smtp.Instance == nil {
		return
	}
	user, err := i.userStore.GetByID(userID)
	if err != nil || user == nil {
		logger.WithError(err).Error("ошибка получения получателя уведомления")
		return
	}
	err = smtp.Instance.SendEMail(config.Conf.Smtp.From, user.Email, msg, subject)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки почтового уведомления")
	}
}

func requestTitle(req dbmodels.Request) string {
	if req.Title != "" {
		return req.Title
	}
	return req.Type.ToHuman()
}

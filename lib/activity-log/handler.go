package activityloghandler

import (
	"sync/atomic"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hr-requests-backend/db"
	activitylogstore "hr-requests-backend/lib/activity-log/store"
	"hr-requests-backend/models"
	activityapimodels "hr-requests-backend/models/api/activity"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	// Append пишет запись в журнал. Сбой записи не прерывает операцию,
	// ошибка фиксируется в логе и счетчике потерянных записей.
	Append(actorID string, action models.ActivityAction, requestID, details string)
	ListForUser(userID string, limit int) (list []activityapimodels.ActivityView, err error)
	ListForRequest(requestID string) (list []activityapimodels.ActivityView, err error)
}

var Instance Provider

// DroppedCount - количество записей журнала, потерянных из-за ошибок БД.
var DroppedCount atomic.Int64

func NewHandler() {
	Instance = impl{
		store: activitylogstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: activitylogstore.NewInstance(tx),
	}
}

type impl struct {
	store activitylogstore.Provider
}

func (i impl) Append(actorID string, action models.ActivityAction, requestID, details string) {
	rec := dbmodels.ActivityLog{
		ActorID:   actorID,
		Action:    action,
		RequestID: requestID,
		Details:   details,
	}
	_, err := i.store.Create(rec)
	if err != nil {
		DroppedCount.Add(1)
		log.
			WithError(err).
			WithField("actor_id", actorID).
			WithField("action", action).
			Error("ошибка записи в журнал активности")
	}
}

func (i impl) ListForUser(userID string, limit int) ([]activityapimodels.ActivityView, error) {
	recs, err := i.store.ListByUser(userID, limit)
	if err != nil {
		return nil, err
	}
	return convertList(recs), nil
}

func (i impl) ListForRequest(requestID string) ([]activityapimodels.ActivityView, error) {
	recs, err := i.store.ListByRequest(requestID)
	if err != nil {
		return nil, err
	}
	return convertList(recs), nil
}

func convertList(recs []dbmodels.ActivityLog) []activityapimodels.ActivityView {
	list := make([]activityapimodels.ActivityView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, activityapimodels.ActivityConvert(rec))
	}
	return list
}

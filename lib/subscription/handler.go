package subscriptionhandler

import (
	"hr-requests-backend/db"
	subscriptionstore "hr-requests-backend/lib/subscription/store"
	usersstore "hr-requests-backend/lib/users/store"
	"hr-requests-backend/models"
	subscriptionapimodels "hr-requests-backend/models/api/subscription"
)

type Provider interface {
	Subscribe(watcherID, watchedID string) error
	Unsubscribe(watcherID, watchedID string) error
	List(watcherID string) (list []subscriptionapimodels.SubscriptionView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     subscriptionstore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     subscriptionstore.Provider
	userStore usersstore.Provider
}

func (i impl) Subscribe(watcherID, watchedID string) error {
	if watcherID == watchedID {
		return models.NewValidationError("нельзя подписаться на самого себя")
	}
	watched, err := i.userStore.GetByID(watchedID)
	if err != nil {
		return err
	}
	if watched == nil {
		return models.ErrNotFound
	}
	exist, err := i.store.Exist(watcherID, watchedID)
	if err != nil {
		return err
	}
	if exist {
		return nil
	}
	return i.store.Set(watcherID, watchedID)
}

func (i impl) Unsubscribe(watcherID, watchedID string) error {
	return i.store.Remove(watcherID, watchedID)
}

func (i impl) List(watcherID string) ([]subscriptionapimodels.SubscriptionView, error) {
	recs, err := i.store.ListByWatcher(watcherID)
	if err != nil {
		return nil, err
	}
	list := make([]subscriptionapimodels.SubscriptionView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, subscriptionapimodels.SubscriptionConvert(rec))
	}
	return list, nil
}

package subscriptionapimodels

import (
	"hr-requests-backend/models"
	usersapimodels "hr-requests-backend/models/api/users"
	dbmodels "hr-requests-backend/models/db"
)

type SubscriptionData struct {
	WatchedID string `json:"watched_id"` // за кем наблюдать
}

func (r SubscriptionData) Validate() error {
	if r.WatchedID == "" {
		return models.NewValidationError("не указан пользователь")
	}
	return nil
}

type SubscriptionView struct {
	ID      string                   `json:"id"`
	Watched *usersapimodels.UserView `json:"watched,omitempty"`
}

func SubscriptionConvert(rec dbmodels.Subscription) SubscriptionView {
	return SubscriptionView{
		ID:      rec.ID,
		Watched: usersapimodels.UserConvertPtr(rec.Watched),
	}
}

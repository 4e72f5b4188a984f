package usershandler

import (
	"gorm.io/gorm"

	"hr-requests-backend/db"
	usersstore "hr-requests-backend/lib/users/store"
	"hr-requests-backend/models"
	usersapimodels "hr-requests-backend/models/api/users"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	GetByID(id string) (view usersapimodels.UserView, err error)
	List() (list []usersapimodels.UserView, err error)
	ListManagers() (list []usersapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	return impl{
		store: usersstore.NewInstance(tx),
	}
}

type impl struct {
	store usersstore.Provider
}

func (i impl) GetByID(id string) (usersapimodels.UserView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return usersapimodels.UserView{}, err
	}
	if rec == nil {
		return usersapimodels.UserView{}, models.ErrNotFound
	}
	return usersapimodels.UserConvert(*rec), nil
}

func (i impl) List() ([]usersapimodels.UserView, error) {
	recs, err := i.store.List()
	if err != nil {
		return nil, err
	}
	return convertList(recs), nil
}

func (i impl) ListManagers() ([]usersapimodels.UserView, error) {
	recs, err := i.store.ListManagers()
	if err != nil {
		return nil, err
	}
	return convertList(recs), nil
}

func convertList(recs []dbmodels.User) []usersapimodels.UserView {
	list := make([]usersapimodels.UserView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, usersapimodels.UserConvert(rec))
	}
	return list
}

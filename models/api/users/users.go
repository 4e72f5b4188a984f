package usersapimodels

import (
	dbmodels "hr-requests-backend/models/db"
)

type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func UserConvert(rec dbmodels.User) UserView {
	return UserView{
		ID:    rec.ID,
		Email: rec.Email,
		Name:  rec.Name,
		Role:  string(rec.Role),
	}
}

func UserConvertPtr(rec *dbmodels.User) *UserView {
	if rec == nil {
		return nil
	}
	view := UserConvert(*rec)
	return &view
}

package authhandler

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"hr-requests-backend/db"
	usersstore "hr-requests-backend/lib/users/store"
	authutils "hr-requests-backend/lib/utils/auth-utils"
	"hr-requests-backend/models"
	authapimodels "hr-requests-backend/models/api/auth"
	usersapimodels "hr-requests-backend/models/api/users"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (resp authapimodels.JWTResponse, err error)
	Register(data authapimodels.RegisterRequest) (resp authapimodels.JWTResponse, hMsg string, err error)
	Me(userID string) (view usersapimodels.UserView, err error)
	RefreshToken(refreshToken string) (resp authapimodels.JWTResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store usersstore.Provider
}

var errWrongCredentials = errors.New("неверный email или пароль")

func (i impl) Login(data authapimodels.LoginRequest) (authapimodels.JWTResponse, error) {
	user, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil || user.Password != authutils.GetMD5Hash(data.Password) {
		return authapimodels.JWTResponse{}, errWrongCredentials
	}
	now := time.Now()
	err = i.store.Update(user.ID, map[string]interface{}{"last_login": now})
	if err != nil {
		log.WithError(err).WithField("user_id", user.ID).Error("ошибка обновления времени входа")
	}
	return i.tokens(user)
}

func (i impl) Register(data authapimodels.RegisterRequest) (resp authapimodels.JWTResponse, hMsg string, err error) {
	email := strings.ToLower(data.Email)
	exist, err := i.store.ExistByEmail(email)
	if err != nil {
		return authapimodels.JWTResponse{}, "", err
	}
	if exist {
		return authapimodels.JWTResponse{}, "пользователь с таким email уже зарегистрирован", nil
	}
	user := dbmodels.User{
		Email:    email,
		Name:     data.Name,
		Password: authutils.GetMD5Hash(data.Password),
		Role:     models.UserRoleEmployee,
	}
	id, err := i.store.Create(user)
	if err != nil {
		return authapimodels.JWTResponse{}, "", errors.Wrap(err, "ошибка регистрации пользователя")
	}
	user.ID = id
	resp, err = i.tokens(&user)
	return resp, "", err
}

func (i impl) Me(userID string) (usersapimodels.UserView, error) {
	user, err := i.store.GetByID(userID)
	if err != nil {
		return usersapimodels.UserView{}, err
	}
	if user == nil {
		return usersapimodels.UserView{}, models.ErrNotFound
	}
	return usersapimodels.UserConvert(*user), nil
}

func (i impl) RefreshToken(refreshToken string) (authapimodels.JWTResponse, error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.New("недействительный refresh token")
	}
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return authapimodels.JWTResponse{}, errors.New("недействительный refresh token")
	}
	user, err := i.store.GetByID(userID)
	if err != nil {
		return authapimodels.JWTResponse{}, err
	}
	if user == nil {
		return authapimodels.JWTResponse{}, models.ErrNotFound
	}
	return i.tokens(user)
}

func (i impl) tokens(user *dbmodels.User) (authapimodels.JWTResponse, error) {
	accessToken, err := authutils.GetToken(user.ID, user.Name, user.Role)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска токена")
	}
	refreshToken, err := authutils.GetRefreshToken(user.ID, user.Name)
	if err != nil {
		return authapimodels.JWTResponse{}, errors.Wrap(err, "ошибка выпуска refresh токена")
	}
	return authapimodels.JWTResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

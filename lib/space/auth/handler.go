package spaceauthhandler

import (
	"time"
	"wfm-tools-backend/db"
	spaceusersstore "wfm-tools-backend/lib/space/users/store"
	authutils "wfm-tools-backend/lib/utils/auth-utils"
	"wfm-tools-backend/models"
	authapimodels "wfm-tools-backend/models/api/auth"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Provider interface {
	Login(data authapimodels.LoginRequest) (resp authapimodels.TokenResponse, err error)
	Refresh(refreshToken string) (resp authapimodels.TokenResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore spaceusersstore.Provider
}

var errInvalidCredentials = models.NewDomainError("invalid email or password")

func (i impl) Login(data authapimodels.LoginRequest) (authapimodels.TokenResponse, error) {
	logger := log.WithField("email", data.Email)
	rec, err := i.userStore.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("failed to find user")
		return authapimodels.TokenResponse{}, err
	}
	if rec == nil || !rec.IsActive {
		return authapimodels.TokenResponse{}, errInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.Password), []byte(data.Password)) != nil {
		return authapimodels.TokenResponse{}, errInvalidCredentials
	}
	resp, err := i.issueTokens(rec.ID, rec.GetFullName(), rec.SpaceID, rec.Role)
	if err != nil {
		logger.WithError(err).Error("failed to issue tokens")
		return authapimodels.TokenResponse{}, err
	}
	if err := i.userStore.SetLastLogin(rec.ID, time.Now()); err != nil {
		logger.WithError(err).Warn("failed to record last login")
	}
	logger.Info("user logged in")
	return resp, nil
}

func (i impl) Refresh(refreshToken string) (authapimodels.TokenResponse, error) {
	userID, err := authutils.ParseRefreshToken(refreshToken)
	if err != nil {
		return authapimodels.TokenResponse{}, models.NewDomainError("invalid refresh token")
	}
	rec, err := i.userStore.FindByID(userID)
	if err != nil {
		return authapimodels.TokenResponse{}, err
	}
	if rec == nil || !rec.IsActive {
		return authapimodels.TokenResponse{}, models.NewDomainError("user not found")
	}
	return i.issueTokens(rec.ID, rec.GetFullName(), rec.SpaceID, rec.Role)
}

func (i impl) issueTokens(userID, name, spaceID string, role models.UserRole) (authapimodels.TokenResponse, error) {
	accessToken, err := authutils.GetToken(userID, name, spaceID, role)
	if err != nil {
		return authapimodels.TokenResponse{}, err
	}
	refreshToken, err := authutils.GetRefreshToken(userID, name)
	if err != nil {
		return authapimodels.TokenResponse{}, err
	}
	return authapimodels.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

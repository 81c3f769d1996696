package service

import (
	"time"

	"crewbase/internal/entity"
	"crewbase/internal/utils"
)

type JWTAccessIssuer struct {
	Manager *utils.JWTManager
}

func (j JWTAccessIssuer) IssueAccessToken(user *entity.User) (string, time.Duration, error) {
	if j.Manager == nil {
		return "", 0, utils.ErrInvalidToken
	}
	return j.Manager.IssueAccessToken(user.ID, user.Email, int(user.Role))
}

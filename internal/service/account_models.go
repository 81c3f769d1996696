package service

import "crewbase/internal/entity"

// Claims is the verified identity attached by the access-guard middleware.
// Service methods trust it; they never parse raw tokens themselves.
type Claims struct {
	UserID uint
	Email  string
	Role   entity.Role
}

type RegisterInput struct {
	Name      string
	LastName  string
	Email     string
	Password  string
	Birthdate string
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress *string
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
}

// ProfileUpdateInput carries optional fields; nil means keep the stored value.
type ProfileUpdateInput struct {
	Name      *string
	LastName  *string
	Birthdate *string
}

type Profile struct {
	ID        uint
	Name      string
	LastName  string
	Email     string
	Birthdate string
	Role      entity.Role
}

func profileFromEntity(user *entity.User) *Profile {
	return &Profile{
		ID:        user.ID,
		Name:      user.Name,
		LastName:  user.LastName,
		Email:     user.Email,
		Birthdate: user.Birthdate,
		Role:      user.Role,
	}
}

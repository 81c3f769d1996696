package dto

import (
	"crewbase/internal/service"
)

type RegisterRequest struct {
	Name      string `json:"name" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Birthdate string `json:"birthdate" validate:"required,datetime=02/01/2006"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

type CreatePasswordResetTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UpdateUserRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Birthdate *string `json:"birthdate" validate:"omitempty,datetime=02/01/2006"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required,min=8"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type AddAdminRequest struct {
	ID uint `json:"id" validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenClaimsResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  int    `json:"role"`
}

type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Birthdate string `json:"birthdate"`
	Role      int    `json:"role"`
}

func UserResponseFromProfile(profile *service.Profile) UserResponse {
	return UserResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		LastName:  profile.LastName,
		Email:     profile.Email,
		Birthdate: profile.Birthdate,
		Role:      int(profile.Role),
	}
}

func UserResponsesFromProfiles(profiles []service.Profile) []UserResponse {
	responses := make([]UserResponse, 0, len(profiles))
	for i := range profiles {
		responses = append(responses, UserResponseFromProfile(&profiles[i]))
	}
	return responses
}

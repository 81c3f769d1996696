package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"crewbase/api/middleware"
	"crewbase/internal/dto"
	"crewbase/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	Service  *service.AccountService
	Validate *validator.Validate
}

func NewAuthHandler(svc *service.AccountService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{
		Service:  svc,
		Validate: validate,
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.RegisterInput{
		Name:      req.Name,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Birthdate: req.Birthdate,
	}
	message, err := h.Service.Register(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: stringPtr(c.RealIP()),
	}
	result, err := h.Service.Login(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     result.AccessToken,
		ExpiresIn: result.ExpiresIn,
	})
}

func (h *AuthHandler) CreatePasswordResetToken(c echo.Context) error {
	var req dto.CreatePasswordResetTokenRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.RequestPasswordReset(c.Request().Context(), req.Email, stringPtr(c.RealIP())); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "reset token sent"})
}

func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req dto.PasswordResetRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.ConsumePasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

// VerifyToken echoes the verified claims back to the caller; reaching it at
// all means the access guard accepted the token.
func (h *AuthHandler) VerifyToken(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return c.JSON(http.StatusOK, dto.TokenClaimsResponse{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  int(claims.Role),
	})
}

func (h *AuthHandler) GetUser(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	profile, err := h.Service.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromProfile(profile))
}

func (h *AuthHandler) UpdateUser(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpdateUserRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	input := service.ProfileUpdateInput{
		Name:      req.Name,
		LastName:  req.LastName,
		Birthdate: req.Birthdate,
	}
	profile, err := h.Service.UpdateProfile(c.Request().Context(), claims.UserID, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromProfile(profile))
}

func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.UpdatePasswordRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.Service.UpdatePassword(c.Request().Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "password updated"})
}

func (h *AuthHandler) GetWorkers(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	profiles, err := h.Service.ListWorkers(c.Request().Context(), claims)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromProfiles(profiles))
}

func (h *AuthHandler) AddAdmin(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	var req dto.AddAdminRequest
	if err := decodeJSON(c, &req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if err := h.validate(req); err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	profile, err := h.Service.PromoteToAdmin(c.Request().Context(), claims, req.ID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromProfile(profile))
}

func (h *AuthHandler) validate(payload any) error {
	if h.Validate == nil {
		return nil
	}
	return h.Validate.Struct(payload)
}

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrResetTokenExpired):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrWrongPassword):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, service.ErrRegistration), errors.Is(err, service.ErrEmailDelivery):
		status = http.StatusInternalServerError
	default:
		return writeError(c, status, errors.New("internal server error"))
	}
	return writeError(c, status, err)
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-service/internal/api/metrics"
	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	FirstName string `json:"first_name" example:"Abraham"`
	LastName  string `json:"last_name" example:"Ventura"`
	Email     string `json:"email" example:"amsventura.95@gmail.com"`
	Password  string `json:"password" example:"pasS!123"`
}

type loginRequest struct {
	Email    string `json:"email" example:"amsventura.95@gmail.com"`
	Password string `json:"password" example:"pasS!123"`
}

type profileResponse struct {
	User *domain.Profile `json:"user"`
}

// Register creates a new user account after eligibility screening.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorsResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{msgInvalidPayload}})
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusBadRequest, errorsResponse{Errors: ve.Messages()})
		case errors.Is(err, domain.ErrDuplicateEmail):
			metrics.RegistrationsTotal.WithLabelValues("duplicate").Inc()
			return c.JSON(http.StatusBadRequest, errorsResponse{Errors: []string{msgDuplicateEmail}})
		case errors.Is(err, domain.ErrBlacklisted):
			metrics.RegistrationsTotal.WithLabelValues("blacklisted").Inc()
			return c.JSON(http.StatusBadRequest, messageResponse{Message: msgBlacklisted})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgRegisterUnavailable})
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message: msgRegistered,
		Auth:    tokenResponse{Token: res.Token, Type: res.Type},
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidPayload})
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: msgWrongCredentials})
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{
		Message: msgLoggedIn,
		Auth:    tokenResponse{Token: res.Token, Type: res.Type},
	})
}

// Profile returns the authenticated user without identifiers or password digest.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       / [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	email, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Profile(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: msgUnauthorized})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgInternal})
	}

	return c.JSON(http.StatusOK, profileResponse{User: profile})
}

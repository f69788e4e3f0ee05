package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "alumnidir/internal/errors"
	"alumnidir/internal/model"
	"alumnidir/internal/service"
)

// UserHandler serves the user directory endpoints.
type UserHandler struct {
	users    service.UserService
	profiles service.ProfileService
	redact   bool
}

// NewUserHandler creates a handler layer. With redact set, 500 responses
// carry a generic message instead of the store error.
func NewUserHandler(users service.UserService, profiles service.ProfileService, redact bool) *UserHandler {
	return &UserHandler{users: users, profiles: profiles, redact: redact}
}

// CreateUserResponse is returned after a successful add.
type CreateUserResponse struct {
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
}

// UpdateUserResponse is returned after a successful profile save.
type UpdateUserResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse carries a single confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, apperrors.ErrInvalidID
	}
	return uint(id), nil
}

// ListUsers godoc
// @Summary List users
// @Description Summary rows for every user, in insertion order.
// @Tags users
// @Produce json
// @Success 200 {array} model.UserSummary
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, users)
}

// ListDirectory godoc
// @Summary List the directory
// @Description Users joined to their programme and branch names. A null exam_prep reads "N/A".
// @Tags users
// @Produce json
// @Success 200 {array} model.DirectoryEntry
// @Failure 500 {object} errors.ErrorResponse
// @Router /directory [get]
func (h *UserHandler) ListDirectory(c echo.Context) error {
	entries, err := h.users.ListDirectory(c.Request().Context())
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, entries)
}

// GetUser godoc
// @Summary Get a user's profile
// @Description User fields with programme and branch names, internships and projects.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	profile, err := h.profiles.GetProfile(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetUserRecord godoc
// @Summary Get a user record
// @Description The stored user row without joins.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/record [get]
func (h *UserHandler) GetUserRecord(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	user, err := h.users.GetUser(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser godoc
// @Summary Add a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body model.NewUser true "User payload"
// @Success 201 {object} CreateUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req model.NewUser
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	user, err := h.users.AddUser(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusCreated, CreateUserResponse{
		Message: "User added successfully",
		UserID:  user.UserID,
	})
}

// UpdateUser godoc
// @Summary Save a user's profile
// @Description Overwrites every editable field. Omitted fields are stored empty; admission_year is kept.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body model.UserUpdate true "Profile fields"
// @Success 200 {object} UpdateUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, h.redact)
	}

	var req model.UserUpdate
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := h.users.UpdateUser(c.Request().Context(), id, req); err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, UpdateUserResponse{
		Success: true,
		Message: "Profile saved successfully!",
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Succeeds whether or not the user exists.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return respondError(c, err, h.redact)
	}
	if err := h.users.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "User deleted successfully"})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"alumnidir/internal/service"
)

// LookupHandler serves the programme and branch tables.
type LookupHandler struct {
	lookups service.LookupService
	redact  bool
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(lookups service.LookupService, redact bool) *LookupHandler {
	return &LookupHandler{lookups: lookups, redact: redact}
}

// ListProgrammes godoc
// @Summary List programmes
// @Tags lookups
// @Produce json
// @Success 200 {array} model.Programme
// @Failure 500 {object} errors.ErrorResponse
// @Router /programmes [get]
func (h *LookupHandler) ListProgrammes(c echo.Context) error {
	programmes, err := h.lookups.ListProgrammes(c.Request().Context())
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, programmes)
}

// ListBranches godoc
// @Summary List branches
// @Tags lookups
// @Produce json
// @Success 200 {array} model.Branch
// @Failure 500 {object} errors.ErrorResponse
// @Router /branches [get]
func (h *LookupHandler) ListBranches(c echo.Context) error {
	branches, err := h.lookups.ListBranches(c.Request().Context())
	if err != nil {
		return respondError(c, err, h.redact)
	}
	return c.JSON(http.StatusOK, branches)
}

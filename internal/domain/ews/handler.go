package ews

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/wardwatch/wardwatch/internal/domain/vitals"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Direct snapshot scoring (vitals supplied in the request body)
	api.POST("/ews/news2", h.ScoreNEWS2)
	api.POST("/ews/qsofa", h.ScoreQSOFA)
	api.POST("/ews/fall-risk", h.ScoreFallRisk)
	api.POST("/ews/deterioration", h.ScoreDeterioration)

	// Scoring against stored patient data
	api.GET("/patients/:id/trends", h.PatientTrends)
	api.GET("/patients/:id/assessment", h.PatientAssessment)
}

func (h *Handler) ScoreNEWS2(c echo.Context) error {
	var v vitals.VitalSigns
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Engine().NEWS2(&v))
}

func (h *Handler) ScoreQSOFA(c echo.Context) error {
	var v vitals.VitalSigns
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Engine().QSOFA(&v))
}

// fallRiskRequest pairs a snapshot with an inline patient context.
type fallRiskRequest struct {
	Vitals  vitals.VitalSigns      `json:"vitals"`
	Context *vitals.PatientContext `json:"context,omitempty"`
}

func (h *Handler) ScoreFallRisk(c echo.Context) error {
	var req fallRiskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Engine().FallRisk(&req.Vitals, req.Context))
}

// deteriorationRequest pairs a snapshot with optional inline history and
// context.
type deteriorationRequest struct {
	Vitals  vitals.VitalSigns      `json:"vitals"`
	History []*vitals.VitalSigns   `json:"history,omitempty"`
	Context *vitals.PatientContext `json:"context,omitempty"`
}

func (h *Handler) ScoreDeterioration(c echo.Context) error {
	var req deteriorationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, h.svc.Engine().Deterioration(&req.Vitals, req.History, req.Context))
}

func (h *Handler) PatientTrends(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	trends, err := h.svc.TrendsForPatient(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, trends)
}

func (h *Handler) PatientAssessment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	a, err := h.svc.AssessPatient(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, vitals.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no vitals recorded for patient")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

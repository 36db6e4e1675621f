package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/randomtoy/roulette/internal/app"
	"github.com/randomtoy/roulette/internal/domain"
)

type Handler struct {
	svc    *app.RouletteService
	logger *slog.Logger
}

func NewHandler(svc *app.RouletteService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = newPageRenderer()

	e.GET("/", h.Index)
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/categories", h.Categories)
	e.POST("/v1/draw", h.Draw)
	e.GET("/v1/spin/ws", h.Spin)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, pageTemplate, pageData{
		Categories:  h.svc.Categories(),
		Placeholder: domain.Placeholder,
	})
}

func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, CategoriesResponse{Categories: h.svc.Categories()})
}

func (h *Handler) Draw(c echo.Context) error {
	var req DrawRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.Draw(c.Request().Context(), req.Category)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, DrawResponse{Category: resp.Category, Value: resp.Value})
}

func (h *Handler) mapError(c echo.Context, err error) error {
	logger := requestLogger(c, h.logger)

	switch {
	case errors.Is(err, domain.ErrNoCategory):
		logger.Info("draw rejected", "error", err)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrCategoryNotFound):
		logger.Info("draw rejected", "error", err)
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyCategory):
		logger.Info("draw rejected", "error", err)
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("internal error", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

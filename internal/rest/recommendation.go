package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sukiMarket/business/reco"
	"sukiMarket/domain"
	"sukiMarket/pkg/logger"
	"sukiMarket/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate    *validator.Validate
		recoService RecommendationService
		timeout     time.Duration
	}

	RecommendationService interface {
		RecommendProducts(ctx context.Context, req domain.RecommendationRequest) (domain.RecommendationPage, error)
		Greet(ctx context.Context, authorization string) (string, error)
	}

	RecommendQuery struct {
		Page         *int   `query:"page" validate:"omitempty,min=1"`
		PageSize     *int   `query:"page_size" validate:"omitempty,min=1,max=50"`
		RandomCount  *int   `query:"random_count" validate:"omitempty,min=0,max=50"`
		LookbackDays *int   `query:"lookback_days" validate:"omitempty,min=1,max=365"`
		Seed         *int64 `query:"seed"`
	}
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func NewRecommendationHandler(svc RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		validate:    validator.New(),
		recoService: svc,
		timeout:     30 * time.Second,
	}
}

// Recommend handles GET /recommendations/products.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	started := time.Now()
	metrics.RecommendRequests.Inc()

	authorization := c.Request().Header.Get("Authorization")
	if authorization == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "Missing Authorization header"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	page := 1
	if q.Page != nil {
		page = *q.Page
	}
	pageSize := reco.DefaultPageSize
	if q.PageSize != nil {
		pageSize = *q.PageSize
	}
	randomCount := reco.DefaultRandomCount
	if q.RandomCount != nil {
		randomCount = *q.RandomCount
	}
	lookbackDays := reco.DefaultLookbackDays
	if q.LookbackDays != nil {
		lookbackDays = *q.LookbackDays
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recoService.RecommendProducts(ctx, domain.RecommendationRequest{
		Authorization: authorization,
		Page:          page,
		PageSize:      pageSize,
		RandomCount:   randomCount,
		LookbackDays:  lookbackDays,
		Seed:          q.Seed,
	})
	if err != nil {
		status, message := statusFromError(err)
		logger.Error("Failed to build recommendation page",
			"trace_id", c.Get("trace_id"),
			"status", status,
			"error", err,
		)
		return c.JSON(status, ResponseError{Message: message})
	}

	metrics.RecommendLatency.Observe(time.Since(started).Seconds())

	return c.JSON(http.StatusOK, result)
}

// Greet handles GET /hi, a quick end-to-end check of the identity path.
func (h *RecommendationHandler) Greet(c echo.Context) error {
	authorization := c.Request().Header.Get("Authorization")
	if authorization == "" {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "Missing Authorization header"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	greeting, err := h.recoService.Greet(ctx, authorization)
	if err != nil {
		status, message := statusFromError(err)
		return c.JSON(status, ResponseError{Message: message})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": greeting})
}

// statusFromError maps typed pipeline errors onto HTTP statuses.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingAuthorization),
		errors.Is(err, domain.ErrInvalidUser):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrForbiddenRole):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, err.Error()
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		// the identity service answered: relay its verdict, so an invalid
		// credential stays a 401 instead of becoming a gateway error
		status := http.StatusBadGateway
		if upstream.Status != 0 {
			status = upstream.Status
		}
		message := upstream.Error()
		if upstream.Body != "" {
			message = upstream.Body
		}
		return status, message
	}

	var missingTable *domain.MissingTableError
	if errors.As(err, &missingTable) {
		return http.StatusServiceUnavailable, missingTable.Error()
	}

	return http.StatusInternalServerError, "internal server error"
}

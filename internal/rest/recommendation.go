package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"aidMatch/business/recommendation"
	"aidMatch/domain"
	"aidMatch/internal/middleware"
	"aidMatch/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
)

type (
	RecommendationService interface {
		Recommend(ctx context.Context, in recommendation.RecommendInput) ([]domain.Recommendation, error)
		ProvideFeedback(ctx context.Context, in recommendation.FeedbackInput) (float64, error)
		Statistics() domain.Statistics
		SetABVariant(variant string) error
	}

	// EventRecorder persists the audit trail. It is optional.
	EventRecorder interface {
		SaveRecommendationEvent(ctx context.Context, event *domain.RecommendationEvent) error
		SaveFeedbackEvent(ctx context.Context, event *domain.FeedbackEvent) error
	}

	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		events   EventRecorder
		timeout  time.Duration
	}
)

type (
	RecommendRequest struct {
		Individual *domain.Individual `json:"individual" validate:"required"`
		Shelters   []ResourceRequest  `json:"shelters" validate:"dive"`
		Jobs       []ResourceRequest  `json:"jobs" validate:"dive"`
		Programs   []ResourceRequest  `json:"programs" validate:"dive"`
		TopK       *int               `json:"top_k" validate:"omitempty,min=1,max=100"`
		UseBandit  *bool              `json:"use_bandit"`
	}

	RecommendResponse struct {
		Recommendations []RecommendationItem `json:"recommendations"`
		IndividualID    string               `json:"individual_id"`
		ResourceType    domain.ResourceType  `json:"resource_type"`
	}

	FeedbackRequest struct {
		ResourceType string   `json:"resource_type" validate:"required"`
		ResourceID   string   `json:"resource_id" validate:"required"`
		Success      *bool    `json:"success"`
		OutcomeScore *float64 `json:"outcome_score" validate:"omitempty,gte=0,lte=1"`
	}

	FeedbackResponse struct {
		Message      string              `json:"message"`
		ResourceType domain.ResourceType `json:"resource_type"`
		ResourceID   string              `json:"resource_id"`
		Reward       float64             `json:"reward"`
	}

	ABTestRequest struct {
		Variant string `json:"variant"`
	}

	ABTestResponse struct {
		Message string `json:"message"`
		Variant string `json:"variant"`
	}
)

func NewRecommendationHandler(service RecommendationService, events EventRecorder) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		events:   events,
		timeout:  10 * time.Second,
	}
}

// POST /api/v1/recommend/:type
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	resourceType, err := domain.ParseResourceType(c.Param("type"))
	if err != nil {
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	}

	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	topK := recommendation.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	useBandit := true
	if req.UseBandit != nil {
		useBandit = *req.UseBandit
	}

	candidates := req.candidates(resourceType)
	in := recommendation.RecommendInput{
		Individual:   *req.Individual,
		Resources:    toResources(candidates),
		ResourceType: resourceType,
		TopK:         topK,
		UseBandit:    useBandit,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.Recommend(ctx, in)
	if err != nil {
		logger.Error("failed to build recommendations", "resource_type", resourceType, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	h.recordRecommendation(ctx, in, recs)

	items, err := toRecommendationItems(recs, candidates)
	if err != nil {
		logger.Error("failed to encode recommendations", "resource_type", resourceType, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "internal server error"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(RecommendResponse{
		Recommendations: items,
		IndividualID:    in.Individual.ID,
		ResourceType:    resourceType,
	}))
}

// POST /api/v1/feedback
func (h *RecommendationHandler) Feedback(c echo.Context) error {
	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Success == nil && req.OutcomeScore == nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: recommendation.ErrMissingOutcome.Error()})
	}

	resourceType, err := domain.ParseResourceType(req.ResourceType)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reward, err := h.service.ProvideFeedback(ctx, recommendation.FeedbackInput{
		ResourceType: resourceType,
		ResourceID:   req.ResourceID,
		Success:      req.Success,
		OutcomeScore: req.OutcomeScore,
	})
	if err != nil {
		logger.Error("failed to record feedback", "resource_type", resourceType, "resource_id", req.ResourceID, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	h.recordFeedback(ctx, resourceType, req, reward)

	return c.JSON(http.StatusOK, fres.Response.StatusOK(FeedbackResponse{
		Message:      "Feedback recorded successfully",
		ResourceType: resourceType,
		ResourceID:   req.ResourceID,
		Reward:       reward,
	}))
}

// GET /api/v1/statistics
func (h *RecommendationHandler) Statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.service.Statistics()))
}

// POST /api/v1/ab-test
func (h *RecommendationHandler) SetABTest(c echo.Context) error {
	var req ABTestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if req.Variant == "" {
		req.Variant = recommendation.VariantA
	}

	if err := h.service.SetABVariant(req.Variant); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	variant := h.service.Statistics().ABTestVariant
	return c.JSON(http.StatusOK, fres.Response.StatusOK(ABTestResponse{
		Message: "A/B test variant set to " + variant,
		Variant: variant,
	}))
}

func (r RecommendRequest) candidates(t domain.ResourceType) []ResourceRequest {
	switch t {
	case domain.ResourceShelter:
		return r.Shelters
	case domain.ResourceJob:
		return r.Jobs
	default:
		return r.Programs
	}
}

func (h *RecommendationHandler) recordRecommendation(ctx context.Context, in recommendation.RecommendInput, recs []domain.Recommendation) {
	if h.events == nil {
		return
	}

	items, err := json.Marshal(recs)
	if err != nil {
		logger.Warn("failed to encode recommendation event", "error", err)
		return
	}

	event := &domain.RecommendationEvent{
		TraceID:      middleware.TraceIDFromContext(ctx),
		IndividualID: in.Individual.ID,
		ResourceType: in.ResourceType,
		TopK:         in.TopK,
		UseBandit:    in.UseBandit,
		Items:        datatypes.JSON(items),
	}
	if err := h.events.SaveRecommendationEvent(ctx, event); err != nil {
		logger.Warn("failed to save recommendation event", "trace_id", event.TraceID, "error", err)
	}
}

func (h *RecommendationHandler) recordFeedback(ctx context.Context, resourceType domain.ResourceType, req FeedbackRequest, reward float64) {
	if h.events == nil {
		return
	}

	feedbackCtx := datatypes.JSONMap{}
	if req.Success != nil {
		feedbackCtx["success"] = *req.Success
	}
	if req.OutcomeScore != nil {
		feedbackCtx["outcome_score"] = *req.OutcomeScore
	}

	event := &domain.FeedbackEvent{
		TraceID:      middleware.TraceIDFromContext(ctx),
		ResourceType: resourceType,
		ResourceID:   req.ResourceID,
		Reward:       reward,
		Context:      feedbackCtx,
	}
	if err := h.events.SaveFeedbackEvent(ctx, event); err != nil {
		logger.Warn("failed to save feedback event", "trace_id", event.TraceID, "error", err)
	}
}

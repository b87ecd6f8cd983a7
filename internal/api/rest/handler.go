package rest

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-model-indexer/internal/api/shared/dto"
	"github.com/feral-file/ff-model-indexer/internal/api/shared/executor"
	"github.com/feral-file/ff-model-indexer/internal/domain"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetModel retrieves a model with its cached metadata
	// GET /api/v1/chains/:chain/models/:model_id
	GetModel(c *gin.Context)

	// GetEntitlement resolves the rights of an address on a model, with ETag support
	// GET /api/v1/chains/:chain/models/:model_id/entitlements/:address
	GetEntitlement(c *gin.Context)

	// GetSplitter retrieves the split configuration and balances of a model
	// GET /api/v1/models/:model_id/splitter
	GetSplitter(c *gin.Context)

	// GetPayoutAddress returns the predicted splitter address of a model
	// GET /api/v1/models/:model_id/payout-address
	GetPayoutAddress(c *gin.Context)

	// TriggerReindex starts a reindex workflow (requires authentication)
	// POST /api/v1/chains/:chain/models/:model_id/reindex
	TriggerReindex(c *gin.Context)

	// ConfigureSplit configures or re-configures a split (requires authentication)
	// POST /api/v1/models/:model_id/splitter
	ConfigureSplit(c *gin.Context)

	// RegisterPayment enqueues a payment (requires authentication)
	// POST /api/v1/payments
	RegisterPayment(c *gin.Context)

	// ProcessPayments distributes queued payments (requires authentication)
	// POST /api/v1/payments/process
	ProcessPayments(c *gin.Context)

	// Withdraw zeroes the balance of an address (requires authentication)
	// POST /api/v1/balances/:address/withdraw
	Withdraw(c *gin.Context)

	// ListCursors lists every stream cursor (requires authentication)
	// GET /api/v1/cursors
	ListCursors(c *gin.Context)

	// ResetCursor moves a stream cursor (requires authentication and confirm=true)
	// POST /api/v1/chains/:chain/streams/:stream/cursor/reset
	ResetCursor(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) GetModel(c *gin.Context) {
	model, err := h.executor.GetModel(c.Request.Context(), domain.Chain(c.Param("chain")), c.Param("model_id"))
	if err != nil {
		respondError(c, err, "Failed to get model")
		return
	}
	if model == nil {
		respondNotFound(c, "Model not found")
		return
	}

	c.JSON(http.StatusOK, model)
}

func (h *handler) GetEntitlement(c *gin.Context) {
	entitlement, err := h.executor.GetEntitlement(c.Request.Context(),
		domain.Chain(c.Param("chain")), c.Param("model_id"), c.Param("address"))
	if err != nil {
		respondError(c, err, "Failed to resolve entitlement")
		return
	}

	etag := `"` + entitlement.ContentHash + `"`
	c.Header("ETag", etag)
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, entitlement)
}

// etagMatches checks an If-None-Match header, which may list several tags or use weak tags
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

func (h *handler) GetSplitter(c *gin.Context) {
	status, err := h.executor.GetSplitter(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err, "Failed to get splitter")
		return
	}

	c.JSON(http.StatusOK, status)
}

func (h *handler) GetPayoutAddress(c *gin.Context) {
	resp, err := h.executor.GetPayoutAddress(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err, "Failed to get payout address")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) TriggerReindex(c *gin.Context) {
	resp, err := h.executor.TriggerReindex(c.Request.Context(), domain.Chain(c.Param("chain")), c.Param("model_id"))
	if err != nil {
		respondError(c, err, "Failed to trigger reindex")
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

func (h *handler) ConfigureSplit(c *gin.Context) {
	var req dto.ConfigureSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.ConfigureSplit(c.Request.Context(), c.Param("model_id"), &req)
	if err != nil {
		respondError(c, err, "Failed to configure split")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RegisterPayment(c *gin.Context) {
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.RegisterPayment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to register payment")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) ProcessPayments(c *gin.Context) {
	var req dto.ProcessPaymentsRequest
	// an empty body processes the default batch
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.ProcessPayments(c.Request.Context(), req.Limit)
	if err != nil {
		respondError(c, err, "Failed to process payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) Withdraw(c *gin.Context) {
	resp, err := h.executor.Withdraw(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err, "Failed to withdraw")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ListCursors(c *gin.Context) {
	resp, err := h.executor.ListCursors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list cursors")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) ResetCursor(c *gin.Context) {
	var req dto.ResetCursorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.ResetCursor(c.Request.Context(),
		domain.Chain(c.Param("chain")), domain.Stream(c.Param("stream")), &req)
	if err != nil {
		respondError(c, err, "Failed to reset cursor")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}

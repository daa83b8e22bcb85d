package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-protocol/noah-client/internal/api/shared/constants"
	"github.com/noah-protocol/noah-client/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetArk returns the contract view of an owner's ark
	// GET /api/v1/arks/:address
	GetArk(c *gin.Context)

	// GetActivity returns an owner's activity feed
	// GET /api/v1/activity/:address?chain_id=<id>
	GetActivity(c *gin.Context)

	// GetAllowances reports which tokens allow the Noah contract to move them
	// GET /api/v1/allowances/:address?tokens=<address1>,<address2>
	GetAllowances(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

func (h *handler) GetArk(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Address is required")
		return
	}

	ark, err := h.executor.GetArk(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get ark")
		return
	}

	if ark == nil {
		respondNotFound(c, "Ark not found")
		return
	}

	c.JSON(http.StatusOK, ark)
}

func (h *handler) GetActivity(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Address is required")
		return
	}

	queryParams, err := ParseGetActivityQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	activity, err := h.executor.GetActivity(c.Request.Context(), address, queryParams.ChainID)
	if err != nil {
		respondError(c, err, "Failed to get activity")
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (h *handler) GetAllowances(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Address is required")
		return
	}

	queryParams, err := ParseGetAllowancesQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	allowances, err := h.executor.GetAllowances(c.Request.Context(), address, queryParams.Tokens)
	if err != nil {
		respondError(c, err, "Failed to get allowances")
		return
	}

	c.JSON(http.StatusOK, allowances)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}

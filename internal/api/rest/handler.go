package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veritrace/veritrace/internal/api/executor"
	"github.com/veritrace/veritrace/internal/api/middleware"
	"github.com/veritrace/veritrace/internal/domain"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetTracing retrieves a single tracing code by inner or outer code
	// GET /api/v1/tracings/:key
	GetTracing(c *gin.Context)

	// ListTracings retrieves tracing codes with filters and pagination
	// GET /api/v1/tracings?owner=<id>&factory=<id>&order_id=<id>&state=<s1>,<s2>&limit=<limit>&offset=<offset>&sort=<column>
	ListTracings(c *gin.Context)

	// UpdateTracing applies one lifecycle transition (bind/send/express/receive)
	// PUT /api/v1/tracings
	UpdateTracing(c *gin.Context)

	// TriggerIssuance starts the code issuance workflow for a paid order
	// POST /api/v1/tracings
	TriggerIssuance(c *gin.Context)

	// DeleteTracing hard-deletes a tracing code (administrative)
	// DELETE /api/v1/tracings/:key
	DeleteTracing(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// legRecordBody is the wire shape of a transition record. Field names keep
// the platform's historical spelling; scanners depend on it.
type legRecordBody struct {
	ReceiverType    string `json:"reciver_type"`
	Receiver        string `json:"reciver"`
	ReceiverName    string `json:"reciver_name"`
	ReceiverPhone   string `json:"reciver_phone"`
	ReceiverAddress string `json:"reciver_address"`
	ExpressNo       string `json:"express_no"`
	ExpressName     string `json:"express_name"`
}

// updateTracingBody is the PUT request body
type updateTracingBody struct {
	Operation        string         `json:"operation" binding:"required"`
	Key              string         `json:"key" binding:"required"`
	Record           *legRecordBody `json:"record"`
	Products         []string       `json:"products"`
	TracingProducts  []string       `json:"tracing_products"`
	IsFactoryTracing bool           `json:"isFactoryTracing"`
}

// triggerIssuanceBody is the POST request body
type triggerIssuanceBody struct {
	Order string `json:"order" binding:"required"`
}

// GetTracing retrieves a single tracing code by inner or outer code
func (h *handler) GetTracing(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		respondValidationError(c, "key is required")
		return
	}

	result, err := h.executor.GetTracing(c.Request.Context(), key)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListTracings retrieves tracing codes with filters and pagination
func (h *handler) ListTracings(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, domain.ErrNotPermitted.Code, "Authentication required")
		return
	}

	queryParams, err := ParseListTracingsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	params := executor.ListParams{
		OrderID: queryParams.OrderID,
		Factory: queryParams.Factory,
		Owner:   queryParams.Owner,
		States:  queryParams.States,
		Limit:   queryParams.Limit,
		Offset:  queryParams.Offset,
		Sort:    queryParams.Sort,
	}

	response, err := h.executor.ListTracings(c.Request.Context(), actor, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateTracing applies one lifecycle transition
func (h *handler) UpdateTracing(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, domain.ErrNotPermitted.Code, "Authentication required")
		return
	}

	var body updateTracingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	req := executor.UpdateRequest{
		Operation:        domain.Operation(body.Operation),
		Key:              body.Key,
		Products:         body.Products,
		TracingProducts:  body.TracingProducts,
		IsFactoryTracing: body.IsFactoryTracing,
	}
	if body.Record != nil {
		req.Record = &executor.LegRecord{
			ReceiverType:    domain.ReceiverType(body.Record.ReceiverType),
			Receiver:        body.Record.Receiver,
			ReceiverName:    body.Record.ReceiverName,
			ReceiverPhone:   body.Record.ReceiverPhone,
			ReceiverAddress: body.Record.ReceiverAddress,
			ExpressNo:       body.Record.ExpressNo,
			ExpressName:     body.Record.ExpressName,
		}
	}

	result, err := h.executor.UpdateTracing(c.Request.Context(), actor, req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// TriggerIssuance starts the code issuance workflow for a paid order
func (h *handler) TriggerIssuance(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, domain.ErrNotPermitted.Code, "Authentication required")
		return
	}

	var body triggerIssuanceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	if err := h.executor.TriggerIssuance(c.Request.Context(), actor, body.Order); err != nil {
		respondDomainError(c, err)
		return
	}

	// Issuance runs asynchronously; success is an empty acknowledgement.
	c.JSON(http.StatusOK, nil)
}

// DeleteTracing hard-deletes a tracing code
func (h *handler) DeleteTracing(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		respondWithError(c, http.StatusUnauthorized, domain.ErrNotPermitted.Code, "Authentication required")
		return
	}

	id := c.Param("key")
	if id == "" {
		respondValidationError(c, "id is required")
		return
	}

	if err := h.executor.DeleteTracing(c.Request.Context(), actor, id); err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, nil)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "veritrace-api",
	})
}

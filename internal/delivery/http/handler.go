package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proteinscan/backend/internal/domain"
	"github.com/proteinscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	gateway domain.ProductGateway
	scans   *usecase.ScanManager
	session *usecase.ViewSession
}

// NewHandler creates a new HTTP handler
func NewHandler(gateway domain.ProductGateway, scans *usecase.ScanManager, session *usecase.ViewSession) *Handler {
	return &Handler{
		gateway: gateway,
		scans:   scans,
		session: session,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "proteinscan-backend",
		"version": "1.0.0",
	})
}

// GetProduct looks a product up by decoded barcode
func (h *Handler) GetProduct(c *gin.Context) {
	if err := h.session.BeginLookup(); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "a lookup is already in progress"})
		return
	}
	defer h.session.EndLookup()

	record, err := h.gateway.LookupByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// SearchProduct runs a manual free-text search and, on success, moves the
// session home -> result and records the product into history
func (h *Handler) SearchProduct(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	h.session.SetQuery(query)

	if err := h.session.BeginLookup(); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "a lookup is already in progress"})
		return
	}
	defer h.session.EndLookup()

	record, err := h.gateway.SearchByName(c.Request.Context(), query)
	if err != nil {
		h.renderLookupError(c, err)
		return
	}

	if err := h.session.RecordSearchResult(record); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// StartScanSession begins a barcode scan: home -> scanner, then a new scan
// session that the shell drives with decode events
func (h *Handler) StartScanSession(c *gin.Context) {
	if err := h.session.StartScan(); err != nil {
		switch {
		case errors.Is(err, domain.ErrOffline):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scanning requires a connection"})
		case errors.Is(err, domain.ErrLookupInFlight):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "a lookup is already in progress"})
		default:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		}
		return
	}

	scan, err := h.scans.StartSession(c.Request.Context())
	if err != nil {
		h.session.ScanFailed()
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": scan.ID(),
		"state":     scan.State(),
		"formats":   domain.SupportedFormats,
	})
}

// decodedRequest carries the decoded barcode from the shell's decode library
type decodedRequest struct {
	Code string `json:"code" binding:"required"`
}

// ScanDecoded receives a decoded barcode: the session stops, the gateway
// lookup runs, and on success the view moves scanner -> result with the
// record prepended to history. NotFound sends the view back home.
func (h *Handler) ScanDecoded(c *gin.Context) {
	var req decodedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decoded code is required"})
		return
	}

	if err := h.session.BeginLookup(); err != nil {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "a lookup is already in progress"})
		return
	}
	defer h.session.EndLookup()

	record, err := h.scans.CompleteScan(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
			return
		}
		h.session.ScanFailed()
		h.renderLookupError(c, err)
		return
	}

	if err := h.session.RecordScanResult(record); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// ScanFailed receives a camera-denial or decoder-init failure from the shell.
// The session fails, the view returns home, and no lookup is made.
func (h *Handler) ScanFailed(c *gin.Context) {
	if err := h.scans.FailSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
		return
	}
	h.session.ScanFailed()
	c.JSON(http.StatusOK, gin.H{"view": h.session.Snapshot().View})
}

// CancelScanSession stops a scan on user cancel and returns the view home
func (h *Handler) CancelScanSession(c *gin.Context) {
	if err := h.scans.CancelSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
		return
	}
	h.session.CancelScan()
	c.Status(http.StatusNoContent)
}

// GetSession returns the current session snapshot
func (h *Handler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// GetHistory returns the recent lookups, most recent first
func (h *Handler) GetHistory(c *gin.Context) {
	history := h.session.History()
	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

// Back handles the explicit back action from result or history
func (h *Handler) Back(c *gin.Context) {
	if err := h.session.Back(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// OpenHistory moves home -> history when history is non-empty
func (h *Handler) OpenHistory(c *gin.Context) {
	if err := h.session.OpenHistory(); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// selectRequest addresses one history entry by position
type selectRequest struct {
	Index *int `json:"index" binding:"required"`
}

// SelectHistory re-displays a past entry without re-fetching
func (h *Handler) SelectHistory(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index is required"})
		return
	}

	if err := h.session.SelectHistory(*req.Index); err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "index out of range"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// connectivityRequest carries the shell's online/offline events
type connectivityRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// SetConnectivity records the shell-reported connectivity flag
func (h *Handler) SetConnectivity(c *gin.Context) {
	var req connectivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "online flag is required"})
		return
	}
	h.session.SetOnline(*req.Online)
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// installabilityRequest carries the shell's install-prompt lifecycle events
type installabilityRequest struct {
	Installable *bool `json:"installable" binding:"required"`
}

// SetInstallability records whether the install affordance should show
func (h *Handler) SetInstallability(c *gin.Context) {
	var req installabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "installable flag is required"})
		return
	}
	h.session.SetInstallable(*req.Installable)
	c.JSON(http.StatusOK, h.session.Snapshot())
}

// renderLookupError maps gateway errors to responses. NotFound and transport
// failure are both non-fatal and user-visible.
func (h *Handler) renderLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found, try a manual search"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": "food database is unreachable, try again"})
	}
}

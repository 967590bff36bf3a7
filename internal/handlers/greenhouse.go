package handlers

import (
	"errors"
	"net/http"

	"greenhouse_control/internal/protocol"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK       = "ok"
	statusEnabled  = "enabled"
	statusDisabled = "disabled"
	statusApplied  = "applied"

	errEnable          = "failed to enable controller"
	errDisable         = "failed to disable controller"
	errGetState        = "failed to load state"
	errApplyCommand    = "failed to apply command"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Respond with a status and include the current controller status if available.
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	ctx := c.Request.Context()
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	st, err := h.services.Monitoring.GetStatus(ctx)
	if err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

type commandRequest struct {
	Frame string `json:"frame" binding:"required"`
}

// CommandRequest is an exported model for Swagger docs of the command payload.
type CommandRequest struct {
	// One protocol frame: tag, up to 8 digits, 'A' terminator (E, e, C and c take no digits).
	Frame string `json:"frame" example:"O20A"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Get controller status
// @Description  Last published tick: sensors, actuators, configuration, clock and link status
// @Tags         greenhouse
// @Produce      json
// @Success      200  {object}  models.Status
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouse/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Monitoring.GetStatus(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "greenhouse_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Enable controller
// @Description  Same effect as an 'E' frame from the mobile client
// @Tags         greenhouse
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouse/enable [post]
// @Security     BearerAuth
func (h *Handler) enable(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Greenhouse.Enable(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errEnable, "greenhouse_enable_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusEnabled, gin.H{})
}

// @Summary      Disable controller
// @Description  Same effect as an 'e' frame; both relays switch off on the next tick
// @Tags         greenhouse
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "status, state"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/greenhouse/disable [post]
// @Security     BearerAuth
func (h *Handler) disable(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.services.Greenhouse.Disable(ctx); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDisable, "greenhouse_disable_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusDisabled, gin.H{})
}

// @Summary      Send command frame
// @Description  Applies one frame exactly as if it arrived over the mobile link
// @Tags         greenhouse
// @Accept       json
// @Produce      json
// @Param        body  body   CommandRequest  true  "Command frame"
// @Success      200   {object}  map[string]interface{}  "status, command, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/greenhouse/command [post]
// @Security     BearerAuth
func (h *Handler) sendCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	cmd, err := h.services.Greenhouse.ApplyFrame(ctx, []byte(req.Frame))
	switch {
	case err == nil:
	case errors.Is(err, protocol.ErrConfigOutOfRange):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case errors.Is(err, protocol.ErrMalformedCommand), errors.Is(err, protocol.ErrUnknownCommand):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errApplyCommand, "greenhouse_command_failed", err, "frame", req.Frame)
		return
	}
	h.respondWithStatusAndState(c, statusApplied, gin.H{"command": cmd.String()})
}

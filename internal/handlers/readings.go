package handlers

import (
	"net/http"
	"strconv"

	"greenhouse_control/internal/service"

	"github.com/gin-gonic/gin"
)

const errLimitInvalid = "invalid 'limit'; use a positive integer"

// @Summary      Sensor history
// @Description  Sampled readings, oldest first. Same date formats as /api/v1/logs. limit defaults to 500 and is capped at 5000.
// @Tags         readings
// @Produce      json
// @Param        from   query   string  false  "Start of range"  example(2025-08-01)
// @Param        to     query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        limit  query   int     false  "Maximum rows"  example(100)
// @Success      200    {object}  map[string]interface{}  "count, readings"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/readings [get]
// @Security     BearerAuth
func (h *Handler) getReadings(c *gin.Context) {
	from, to, ok := h.bindTimeRange(c)
	if !ok {
		return
	}
	limit := 0
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		limit = n
	}
	readings, err := h.services.Readings.History(c.Request.Context(), service.ReadingFilter{
		From:  from,
		To:    to,
		Limit: limit,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load readings", "readings_list_failed", err,
			"from", from, "to", to, "limit", limit)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(readings),
		"readings": readings,
	})
}

package v1

import (
	"net/http"

	"hireova-backend/internal/delivery/http/response"
	"hireova-backend/internal/domain"
	"hireova-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	appName  string
	healthUC usecase.HealthUsecase
}

// Welcome godoc
// @Summary      API welcome
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       / [get]
func (h *HealthHandler) Welcome(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	response.Success(c, http.StatusOK, "Welcome to "+h.appName, gin.H{
		"version": status.Version,
		"docs":    "/api/docs/index.html",
	})
}

// Live godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=usecase.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Live(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", h.healthUC.Check(c.Request.Context()))
}

// Ready godoc
// @Summary      Readiness probe
// @Description  503 when storage is unreachable. A failing cache only degrades the status.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=usecase.HealthStatus}
// @Failure      503  {object}  response.Response{data=usecase.HealthStatus}
// @Router       /health/ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	status, ready := h.healthUC.Ready(c.Request.Context())
	if !ready {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success:   false,
			Message:   "Storage unavailable",
			Data:      status,
			RequestID: c.GetString(string(domain.KeyRequestID)),
		})
		return
	}
	response.Success(c, http.StatusOK, "System ready", status)
}

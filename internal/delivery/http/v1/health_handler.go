package v1

import (
	"net/http"

	"agentai-website-api/internal/delivery/http/response"
	"agentai-website-api/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Service health
// @Description  Reports whether the email provider is configured and bot verification is on. Never reports secrets.
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response{data=usecase.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	response.Success(c, http.StatusOK, status.Status, status)
}

package v1

import (
	"net/http"

	"agentai-website-api/internal/delivery/http/middleware"
	"agentai-website-api/internal/delivery/http/response"
	"agentai-website-api/internal/domain"
	"agentai-website-api/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps a submission body. The largest valid form is well under it.
const MaxBodyBytes = 64 << 10

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
	// Preflights are answered by the CORS middleware; the route only has to exist
	public.OPTIONS("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })
}

// SubmitContact godoc
// @Summary      Submit a website form
// @Description  Validates a contact, demo or about form submission, checks the bot-verification token and emails it to the team.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        submission  body      domain.Submission  true  "Form fields"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.ErrorResponse
// @Failure      500         {object}  response.ErrorResponse
// @Failure      503         {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	var sub domain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		// Parser detail stays server-side
		_ = c.Error(apperror.New(http.StatusBadRequest, "Invalid request", err))
		return
	}

	client := domain.ClientInfo{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString(middleware.RequestIDKey),
	}

	if err := h.contactUC.Submit(c.Request.Context(), &sub, client); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, sub.Template.OrDefault().ThankYou(), nil)
}

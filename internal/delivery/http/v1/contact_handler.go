package v1

import (
	"errors"
	"net/http"

	"davinci-contact-api/internal/delivery/http/response"
	"davinci-contact-api/internal/domain"
	"davinci-contact-api/pkg/apperror"
	"davinci-contact-api/pkg/validation"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, extra ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", append(extra, handler.SubmitContact)...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form message by email to the agency inbox. Public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      413      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = c.Error(apperror.New(http.StatusRequestEntityTooLarge, "Request body too large", err))
			return
		}
		_ = c.Error(apperror.BadRequest("Invalid contact form data").WithDetails(validation.FormatValidationErrors(err)...))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidContact):
			_ = c.Error(apperror.BadRequest("Invalid contact form data"))
		case errors.Is(err, domain.ErrEmailServiceNotConfigured):
			_ = c.Error(apperror.ServiceUnavailable("Contact service temporarily unavailable", err))
		default:
			_ = c.Error(apperror.DeliveryFailure(err))
		}
		return
	}

	response.Success(c, http.StatusOK, "Email sent successfully", nil)
}

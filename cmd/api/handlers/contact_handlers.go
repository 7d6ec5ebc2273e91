package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/services"
	"portfolio-api/dto"
)

// ListContactSubmissionsHandler godoc
// @Summary      List contact submissions
// @Tags         contact
// @Produce      json
// @Success      200  {array}   dto.ContactSubmissionDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /contact [get]
func ListContactSubmissionsHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// CreateContactSubmissionHandler godoc
// @Summary      Submit the contact form
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateContactSubmissionRequest  true  "Message"
// @Success      201   {object}  dto.ContactSubmissionDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /contact [post]
func CreateContactSubmissionHandler(svc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateContactSubmissionRequest
		if !bindJSON(c, &req) {
			return
		}
		item, err := svc.Submit(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

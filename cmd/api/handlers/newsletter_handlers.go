package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/services"
	"portfolio-api/dto"
)

// ListNewsletterSubscribersHandler godoc
// @Summary      List newsletter subscribers
// @Tags         newsletter
// @Produce      json
// @Success      200  {array}   dto.NewsletterSubscriberDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /newsletter [get]
func ListNewsletterSubscribersHandler(svc *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// SubscribeHandler godoc
// @Summary      Subscribe to the newsletter
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SubscribeRequest  true  "Email"
// @Success      201   {object}  dto.NewsletterSubscriberDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /newsletter [post]
func SubscribeHandler(svc *services.NewsletterService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SubscribeRequest
		if !bindJSON(c, &req) {
			return
		}
		sub, err := svc.Subscribe(c.Request.Context(), req.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sub)
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/cmd/api/services"
	"portfolio-api/dto"
)

// GetBlogHandler godoc
// @Summary      List blog posts or get one by slug
// @Description  Without slug, lists posts newest first; status "all" and category "All" do not filter.
// @Description  With slug (or an _id), returns that post and counts the view; a miss returns null.
// @Tags         blog
// @Param        slug      query  string  false  "Post slug or _id"
// @Param        status    query  string  false  "draft | published | all"
// @Param        category  query  string  false  "Category, or All"
// @Produce      json
// @Success      200  {array}   dto.BlogPostDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blog [get]
func GetBlogHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slug := c.Query("slug"); slug != "" {
			post, err := svc.GetBySlug(c.Request.Context(), slug)
			if err != nil {
				respondError(c, err)
				return
			}
			if post == nil {
				c.JSON(http.StatusOK, nil)
				return
			}
			c.JSON(http.StatusOK, post)
			return
		}

		posts, err := svc.List(c.Request.Context(), services.ListBlogPostsInput{
			Status:   c.Query("status"),
			Category: c.Query("category"),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// CreateBlogPostHandler godoc
// @Summary      Create a blog post
// @Description  Slug is derived from title; views start at 0.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateBlogPostRequest  true  "Post fields"
// @Success      201   {object}  dto.BlogPostDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /blog [post]
func CreateBlogPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreateBlogPostRequest
		if !bindJSON(c, &req) {
			return
		}
		post, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// UpdateBlogPostHandler godoc
// @Summary      Update a blog post
// @Description  Overwrites the fields present in the body and refreshes updatedAt.
// @Tags         blog
// @Accept       json
// @Produce      json
// @Param        id    query     string                     true  "Post _id"
// @Param        body  body      dto.UpdateBlogPostRequest  true  "Fields to change"
// @Success      200   {object}  dto.SuccessResponseDTO
// @Failure      400   {object}  dto.ErrorResponseDTO
// @Failure      500   {object}  dto.ErrorResponseDTO
// @Router       /blog [put]
func UpdateBlogPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Query("id")
		var req dto.UpdateBlogPostRequest
		if id != "" && !bindJSON(c, &req) {
			return
		}
		ok, err := svc.Update(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: ok})
	}
}

// DeleteBlogPostHandler godoc
// @Summary      Delete a blog post
// @Tags         blog
// @Produce      json
// @Param        id   query     string  true  "Post _id"
// @Success      200  {object}  dto.SuccessResponseDTO
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      500  {object}  dto.ErrorResponseDTO
// @Router       /blog [delete]
func DeleteBlogPostHandler(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := svc.Delete(c.Request.Context(), c.Query("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.SuccessResponseDTO{Success: ok})
	}
}

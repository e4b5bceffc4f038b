package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptum/internal/adapters/httpapi/middleware"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	actor := middleware.CurrentActor(c)
	postID := c.Param("id")
	if _, err := ctl.cc.CreateComment(c.Request.Context(), actor, postID, req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+postID)
}

// EditForm returns the comment to edit, owner-only.
func (ctl *CommentController) EditForm(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	comment, err := ctl.cc.GetComment(c.Request.Context(), actor, c.Param("id"), c.Param("comment_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	actor := middleware.CurrentActor(c)
	postID := c.Param("id")
	if _, err := ctl.cc.UpdateComment(c.Request.Context(), actor, postID, c.Param("comment_id"), req.Text); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+postID)
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	postID := c.Param("id")
	if err := ctl.cc.DeleteComment(c.Request.Context(), actor, postID, c.Param("comment_id")); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+postID)
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"scriptum/internal/adapters/httpapi/middleware"
	"scriptum/internal/core/access"
	postPort "scriptum/internal/ports/post"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

type postRequest struct {
	Title       string    `json:"title" binding:"required"`
	Text        string    `json:"text" binding:"required"`
	ImageURL    string    `json:"image_url"`
	PubDate     time.Time `json:"pub_date"`
	IsPublished bool      `json:"is_published"`
	CategoryID  string    `json:"category_id"`
	LocationID  string    `json:"location_id"`
}

func (r postRequest) toInput() postPort.PostInput {
	return postPort.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		ImageURL:    r.ImageURL,
		PubDate:     r.PubDate,
		IsPublished: r.IsPublished,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
	}
}

// Index is the paginated listing of publicly visible posts.
func (ctl *PostController) Index(c *gin.Context) {
	page, err := ctl.pc.ListPublished(c.Request.Context(), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (ctl *PostController) CategoryPosts(c *gin.Context) {
	cat, page, err := ctl.pc.ListByCategory(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "posts": page})
}

// Profile lists an author's posts. The owner sees the full list including
// unpublished and future-dated posts.
func (ctl *PostController) Profile(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	profile, page, err := ctl.pc.ListByAuthor(c.Request.Context(), c.Param("username"), actor, pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile, "posts": page})
}

func (ctl *PostController) Detail(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	post, comments, err := ctl.pc.GetDetail(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "comments": comments, "comment_count": len(comments)})
}

// CreateForm returns a blank form document with the selectable categories
// and locations.
func (ctl *PostController) CreateForm(c *gin.Context) {
	cats, locs, err := ctl.pc.FormOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats, "locations": locs})
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	actor := middleware.CurrentActor(c)
	if _, err := ctl.pc.CreatePost(c.Request.Context(), actor, req.toInput()); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+actor.Username)
}

// EditForm returns the post to edit plus the form options, author-only.
func (ctl *PostController) EditForm(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	post, _, err := ctl.pc.GetDetail(c.Request.Context(), c.Param("id"), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	if post.Author == nil || !access.CanModify(actor, uuid.FromStringOrNil(post.Author.ID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	cats, locs, err := ctl.pc.FormOptions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "categories": cats, "locations": locs})
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	actor := middleware.CurrentActor(c)
	id := c.Param("id")
	if _, err := ctl.pc.UpdatePost(c.Request.Context(), actor, id, req.toInput()); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts/"+id)
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if err := ctl.pc.DeletePost(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"scriptum/internal/adapters/httpapi/middleware"
	"scriptum/internal/core/access"
	categoryPort "scriptum/internal/ports/category"
	commentPort "scriptum/internal/ports/comment"
	postPort "scriptum/internal/ports/post"
	userPort "scriptum/internal/ports/user"
)

// Inbound ports: what the controllers need from the use-case layer.

type UserUseCase interface {
	RegisterUser(ctx context.Context, username, firstName, lastName, email, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	GetProfile(ctx context.Context, username string) (*userPort.UserDTO, error)
	UpdateProfile(ctx context.Context, actor access.Actor, username, firstName, lastName, email string) (*userPort.UserDTO, error)
}

type PostUseCase interface {
	ListPublished(ctx context.Context, page int) (*postPort.PageDTO, error)
	ListByCategory(ctx context.Context, slug string, page int) (*categoryPort.CategoryDTO, *postPort.PageDTO, error)
	ListByAuthor(ctx context.Context, username string, viewer access.Actor, page int) (*userPort.UserDTO, *postPort.PageDTO, error)
	GetDetail(ctx context.Context, id string, viewer access.Actor) (*postPort.PostDTO, []*commentPort.CommentDTO, error)
	CreatePost(ctx context.Context, actor access.Actor, in postPort.PostInput) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, actor access.Actor, id string, in postPort.PostInput) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, actor access.Actor, id string) error
	FormOptions(ctx context.Context) ([]*categoryPort.CategoryDTO, []*categoryPort.LocationDTO, error)
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, actor access.Actor, postID, text string) (*commentPort.CommentDTO, error)
	GetComment(ctx context.Context, actor access.Actor, postID, commentID string) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, actor access.Actor, postID, commentID, text string) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, actor access.Actor, postID, commentID string) error
}

// SetupRoutes wires the controllers onto the gin engine. Use cases are
// injected from outside.
func SetupRoutes(
	userUC UserUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
	auth *middleware.Auth,
) *gin.Engine {
	r := gin.Default()
	uc := NewUserController(userUC)
	pc := NewPostController(postUC)
	cc := NewCommentController(commentUC)

	required := auth.Required()
	optional := auth.Optional()

	r.POST("/register", uc.Register)
	r.POST("/login", uc.Login)
	r.GET("/login", uc.LoginForm)

	r.GET("/", optional, pc.Index)
	r.GET("/category/:slug", optional, pc.CategoryPosts)
	r.GET("/profile/:username", optional, pc.Profile)

	r.GET("/user/edit", required, uc.EditProfileForm)
	r.POST("/user/edit", required, uc.UpdateProfile)

	r.GET("/posts/create", required, pc.CreateForm)
	r.POST("/posts/create", required, pc.CreatePost)
	r.GET("/posts/:id", optional, pc.Detail)
	r.GET("/posts/:id/edit", required, pc.EditForm)
	r.POST("/posts/:id/edit", required, pc.UpdatePost)
	r.POST("/posts/:id/delete", required, pc.DeletePost)

	r.POST("/posts/:id/comment", required, cc.CreateComment)
	r.GET("/posts/:id/edit_comment/:comment_id", required, cc.EditForm)
	r.POST("/posts/:id/edit_comment/:comment_id", required, cc.UpdateComment)
	r.POST("/posts/:id/delete_comment/:comment_id", required, cc.DeleteComment)

	return r
}

package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptum/internal/adapters/httpapi/middleware"
)

type UserController struct{ uc UserUseCase }

func NewUserController(uc UserUseCase) *UserController { return &UserController{uc: uc} }

func (ctl *UserController) Register(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Username, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (ctl *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}
	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// LoginForm is the target of the unauthenticated redirect.
func (ctl *UserController) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": gin.H{"fields": []string{"username", "password"}}})
}

// EditProfileForm returns the actor's own profile for editing. Any path
// or query hints are ignored: the target is always the acting user.
func (ctl *UserController) EditProfileForm(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	u, err := ctl.uc.GetProfile(c.Request.Context(), actor.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": u})
}

func (ctl *UserController) UpdateProfile(c *gin.Context) {
	var req struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	actor := middleware.CurrentActor(c)
	u, err := ctl.uc.UpdateProfile(c.Request.Context(), actor, req.Username, req.FirstName, req.LastName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/profile/"+u.Username)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"scriptum/internal/config"
	"scriptum/internal/core/access"
	userPort "scriptum/internal/ports/user"
)

// ActorKey is the gin context key under which the resolved actor is stored.
const ActorKey = "actor"

// Auth resolves the acting user from a Bearer token. Required sends
// anonymous requests to /login; Optional lets them through as Anonymous.
type Auth struct {
	Users userPort.UserRepository
}

func NewAuth(users userPort.UserRepository) *Auth {
	return &Auth{Users: users}
}

func (a *Auth) actorFromRequest(c *gin.Context) (access.Actor, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return access.Anonymous(), false
	}
	tokenString := strings.TrimPrefix(header, "Bearer ")

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.C.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return access.Anonymous(), false
	}

	u, err := a.Users.FindByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return access.Anonymous(), false
	}

	return access.Actor{
		ID:            u.ID,
		Username:      u.Username,
		IsStaff:       u.IsStaff,
		Authenticated: true,
	}, true
}

// Required aborts anonymous requests with a redirect to the login page.
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := a.actorFromRequest(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// Optional resolves the actor when a valid token is present and falls back
// to Anonymous otherwise.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := a.actorFromRequest(c)
		c.Set(ActorKey, actor)
		c.Next()
	}
}

// CurrentActor returns the actor resolved by Required or Optional.
func CurrentActor(c *gin.Context) access.Actor {
	if v, exists := c.Get(ActorKey); exists {
		if actor, ok := v.(access.Actor); ok {
			return actor
		}
	}
	return access.Anonymous()
}

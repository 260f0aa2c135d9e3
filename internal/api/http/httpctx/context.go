// Package httpctx stores the authenticated caller on the request
// context.
package httpctx

import (
	"github.com/gin-gonic/gin"

	"github.com/akorchagin/taskvault/internal/model"
)

const userKey = "taskvault/auth-user"

// SetUser attaches the resolved user to the request context.
func SetUser(c *gin.Context, user model.User) {
	c.Set(userKey, user)
}

// User returns the authenticated user, if any. Absence means the
// request is unauthenticated.
func User(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

package middleware

import (
	"net/http"

	"github.com/Laib363/E-Commerce-Project/flash"
	"github.com/Laib363/E-Commerce-Project/models"
	"github.com/Laib363/E-Commerce-Project/repository"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CurrentUserKey is where the resolved user lives on the request context.
const CurrentUserKey = "currentUser"

// sessionUserKey is where the user's hex id lives in the session.
const sessionUserKey = "userID"

// EstablishSession binds the session to the given user.
func EstablishSession(c *gin.Context, user *models.User) error {
	s := sessions.Default(c)
	s.Set(sessionUserKey, user.ID.Hex())
	return s.Save()
}

// DestroySession drops the session's authentication. It always succeeds from
// the caller's point of view.
func DestroySession(c *gin.Context) {
	s := sessions.Default(c)
	s.Delete(sessionUserKey)
	_ = s.Save()
}

// CurrentUser resolves the session's user id to a full user record and binds
// it to the request context. Unauthenticated requests pass through with no
// user bound; there is no ambient global state.
func CurrentUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		if raw, ok := s.Get(sessionUserKey).(string); ok {
			if id, err := primitive.ObjectIDFromHex(raw); err == nil {
				if user, err := users.FindByID(c, id); err == nil {
					c.Set(CurrentUserKey, user)
				}
			}
		}
		c.Next()
	}
}

// UserFrom returns the request's current user, if any.
func UserFrom(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// RequireAuthenticated short-circuits to /login when no user is bound to the
// request.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserFrom(c); !ok {
			flash.Error(c, "You must be logged in")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthor loads the listing from the :id param and short-circuits
// unless the current user is its author. A missing listing is its own branch
// (not found), never a dereference fault.
func RequireAuthor(listings repository.ListingRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			flash.Error(c, "Invalid listing id")
			c.Redirect(http.StatusFound, "/listings")
			c.Abort()
			return
		}

		listing, err := listings.FindByID(c, id)
		if err != nil {
			flash.Error(c, "Listing not found")
			c.Redirect(http.StatusFound, "/listings")
			c.Abort()
			return
		}

		user, ok := UserFrom(c)
		if !ok || listing.Author != user.ID {
			flash.Error(c, "You do not have permission to do that!")
			c.Redirect(http.StatusFound, "/listings/"+id.Hex())
			c.Abort()
			return
		}
		c.Next()
	}
}

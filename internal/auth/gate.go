package auth

import (
	"context"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/constructtrack/constructtrack-backend/internal/users"
)

// TokenVerifier checks an ID token. *fbauth.Client satisfies it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// UserEnsurer records an owner and returns its database id.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// Gate resolves the workspace owner of a request.
//
// With a verifier, a Bearer ID token is required and its uid becomes the
// owner. Without one the gate is a stub: X-User-Id is trusted and falls back
// to DemoOwner. When ensurer is non-nil the owner is upserted into users.
func Gate(verifier TokenVerifier, ensurer UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, email, ok := resolve(c, verifier)
		if !ok {
			return
		}

		if ensurer != nil {
			id, err := ensurer.EnsureUser(c.Request.Context(), users.UpsertUser{
				UID:         owner,
				Email:       email,
				DisplayName: c.GetHeader("X-User-Name"),
			})
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
				return
			}
			c.Set(CtxUserDBID, id)
		}

		c.Set(CtxOwnerID, owner)
		if email != "" {
			c.Set(CtxEmail, email)
		}
		c.Next()
	}
}

func resolve(c *gin.Context, verifier TokenVerifier) (owner, email string, ok bool) {
	if verifier == nil {
		owner = strings.TrimSpace(c.GetHeader("X-User-Id"))
		if owner == "" {
			owner = DemoOwner
		}
		return owner, strings.TrimSpace(c.GetHeader("X-User-Email")), true
	}

	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
		return "", "", false
	}
	decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
		return "", "", false
	}
	email, _ = decoded.Claims["email"].(string)
	return decoded.UID, email, true
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Session answers the login screen with the resolved identity.
func Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"ownerId": OwnerID(c),
		"userId":  UserDBID(c),
		"email":   c.GetString(CtxEmail),
	})
}

package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxOwnerID  = "owner_id"
	CtxUserDBID = "user_db_id"
	CtxEmail    = "email"

	// DemoOwner is used when no identity is presented and verification is off.
	DemoOwner = "demo-user"
)

// OwnerID returns the workspace owner resolved by Gate.
func OwnerID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxOwnerID))
}

// UserDBID returns the users table id, empty when no user store is wired.
func UserDBID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserDBID))
}

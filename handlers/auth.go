package handlers

import (
	"net/http"

	"sanctuary/auth"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the credential pair submitted by the admin console.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login validates the admin credential and issues the auth cookie.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, CodeInvalidRequest, "username and password are required")
		return
	}

	if !auth.Login(req.Username, req.Password) {
		fail(c, http.StatusUnauthorized, CodeUnauthorized, "invalid credentials")
		return
	}

	auth.SetAuthCookie(c)
	ok(c, gin.H{"authenticated": true})
}

// Logout clears the auth cookie.
func Logout(c *gin.Context) {
	auth.ClearAuthCookie(c)
	ok(c, gin.H{"authenticated": false})
}

// CheckAuth reports whether the caller holds a valid admin cookie.
func CheckAuth(c *gin.Context) {
	ok(c, gin.H{"authenticated": auth.CheckAuth(c)})
}

// RequireAdmin rejects requests without a valid admin cookie before any
// handler runs. Privileged writes never reach the database unauthenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.CheckAuth(c) {
			fail(c, http.StatusUnauthorized, CodeUnauthorized, "admin authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

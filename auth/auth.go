package auth

import (
	"crypto/subtle"
	"strings"

	"sanctuary/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// CookieName signals admin status. Presence plus the expected value is the
// sole authorization signal; there is no server-side session store.
const CookieName = "sanctuary_admin"

const cookieValue = "authenticated"

// CookieMaxAge is seven days, in seconds.
const CookieMaxAge = 7 * 24 * 60 * 60

// Login validates the submitted credential pair against the configured
// admin secret. Wrong credentials simply return false; no rate limiting,
// lockout, or audit trail.
func Login(username, password string) bool {
	expected := config.Settings.AdminPassword
	if expected == "" {
		// Refuse all logins until a credential is configured.
		return false
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(config.Settings.AdminUsername)) == 1

	var passOK bool
	if strings.HasPrefix(expected, "$2a$") || strings.HasPrefix(expected, "$2b$") || strings.HasPrefix(expected, "$2y$") {
		passOK = bcrypt.CompareHashAndPassword([]byte(expected), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(expected)) == 1
	}

	return userOK && passOK
}

// SetAuthCookie issues the admin cookie: whole-site path, 7-day expiry,
// httpOnly, Secure in production.
func SetAuthCookie(c *gin.Context) {
	c.SetCookie(CookieName, cookieValue, CookieMaxAge, "/", "", config.Settings.Production, true)
}

// ClearAuthCookie logs out by overwriting the cookie with an expired one.
func ClearAuthCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", config.Settings.Production, true)
}

// CheckAuth reports whether the request carries a valid admin cookie.
func CheckAuth(c *gin.Context) bool {
	value, err := c.Cookie(CookieName)
	return err == nil && value == cookieValue
}

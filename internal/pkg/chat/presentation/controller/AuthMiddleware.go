package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidhika-anjne/Alumini-Platform/internal/auth"
)

const principalKey = "auth.principal"

// Authenticate is a fail-open middleware: a valid bearer token binds a
// principal to the request, a missing or invalid one lets the request
// through anonymous. Endpoints that need an identity reject anonymous
// requests themselves, which keeps public reads usable without a token.
func Authenticate(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			token = c.Query("token")
		}
		if token != "" {
			if principal, err := verifier.Verify(token); err == nil {
				c.Set(principalKey, principal)
			}
		}
		c.Next()
	}
}

// CurrentPrincipal returns the request's bound principal, if any.
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// requirePrincipal aborts with 401 when the request carries no identity.
func requirePrincipal(c *gin.Context) (auth.Principal, bool) {
	p, ok := CurrentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	}
	return p, ok
}

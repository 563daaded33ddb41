package middleware

import (
	"net/http"
	"strconv"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/david-solomon-henshaw/app/internal/config"
)

// CasbinMW wraps the casbin enforcer and ownership rules for middleware
type CasbinMW struct {
	enforcer *casbin.Enforcer
	rules    []config.OwnershipRule
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer, rules []config.OwnershipRule) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, rules: rules}
}

// Enforce returns the casbin authorization middleware. Role policies
// are checked first; when they deny, a request matching an ownership
// rule for the caller's own record is retried as role_owner.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		rawID, userExists := c.Get("user_id")
		rawRole, roleExists := c.Get("user_role")
		if !userExists || !roleExists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in token"})
			c.Abort()
			return
		}

		userID, ok := rawID.(uint)
		role, rok := rawRole.(string)
		if !ok || !rok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User identity not found in token"})
			c.Abort()
			return
		}
		tokenUserID := strconv.FormatUint(uint64(userID), 10)

		path := c.Request.URL.Path
		method := c.Request.Method

		// Ownership match against the configured rules; rules are keyed
		// on the route pattern, not the concrete path.
		isOwner := false
		for _, rule := range mw.rules {
			if rule.Path == c.FullPath() && rule.Method == method {
				requestUserID := extractUserID(c, rule.Source, rule.ParamName)
				if requestUserID != "" && requestUserID == tokenUserID {
					isOwner = true
					break
				}
			}
		}

		// The primary role goes first so admins bypass ownership checks.
		casbinRole := "role_" + role
		allowed, err := mw.enforcer.Enforce(casbinRole, path, method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}

		if !allowed && isOwner {
			allowed, err = mw.enforcer.Enforce("role_owner", path, method)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
				c.Abort()
				return
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}

package httpserver

import (
	"net/http"
	"strings"

	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
	"github.com/gin-gonic/gin"
)

const (
	accountCtxKey = "account"
	tokenCtxKey   = "sessionToken"
	sessionCookie = "session"
)

// authMiddleware resolves the session token (Authorization header or
// cookie) to an account and stores it in the request context. Requests
// without a valid session are rejected.
func authMiddleware(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(sessionCookie); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		account, err := svc.LookupSession(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(accountCtxKey, account)
		c.Set(tokenCtxKey, token)
		c.Next()
	}
}

// requireRole gates a route group on the account's typed role. The role
// check happens here once, not inside individual handlers.
func requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		if account == nil || account.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentAccount(c *gin.Context) *domain.Account {
	v, ok := c.Get(accountCtxKey)
	if !ok {
		return nil
	}
	account, ok := v.(*domain.Account)
	if !ok {
		return nil
	}
	return account
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signupHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req accountsvc.SignupInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		account, err := svc.Signup(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"account": account})
	}
}

func loginHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		account, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.SetCookie(sessionCookie, token, svc.SessionTTLSeconds(), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{
			"account":   account,
			"token":     token,
			"expiresIn": svc.SessionTTLSeconds(),
		})
	}
}

func logoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Get(tokenCtxKey)
		if tok, ok := token.(string); ok && tok != "" {
			if err := deps.AccountSvc.Logout(c.Request.Context(), tok); err != nil {
				respondError(c, err)
				return
			}
		}
		if deps.ClearCartOnLogout {
			if account := currentAccount(c); account != nil {
				_ = deps.CartSvc.Clear(c.Request.Context(), account.ID)
			}
		}
		c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

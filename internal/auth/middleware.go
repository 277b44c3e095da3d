package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type loginDTO struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

type Handlers struct {
	store AccountStore
}

func NewHandlers(store AccountStore) *Handlers {
	return &Handlers{store: store}
}

func (h *Handlers) LoginHandler(c *gin.Context) {
	var dto loginDTO
	if err := c.ShouldBind(&dto); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := Authenticate(c.Request.Context(), h.store, dto.Email, dto.Password)
	if err != nil {
		if errors.Is(err, ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Printf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	tok, err := GenerateToken(a)
	if err != nil {
		log.Printf("token generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.SetCookie(CookieName, tok, defaultSessionHours*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token": tok,
		"user": gin.H{
			"id":           a.ID.Hex(),
			"email":        a.Email,
			"profileImage": a.ProfileImage,
		},
	})
}

// SessionHandler reports the current session. An absent or invalid token is
// not an error; the client sees a null user and decides what to do.
func (h *Handlers) SessionHandler(c *gin.Context) {
	tokenStr := tokenFromRequest(c)
	if tokenStr == "" {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	claims, err := ParseToken(tokenStr)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"user": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":           claims.AccountID,
			"email":        claims.Email,
			"profileImage": claims.ProfileImage,
		},
		"expires": claims.ExpiresAt,
	})
}

func (h *Handlers) LogoutHandler(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func HomeHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{"title": "Blogpress"})
}

func LoginFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"title": "Log in"})
}

func SignupFormHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "signup.html", gin.H{"title": "Sign up"})
}

// DashboardHandler sits behind auth.RequireSession, which fills the
// account_* keys or redirects before this runs.
func DashboardHandler(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":        "Dashboard",
		"email":        c.GetString("account_email"),
		"profileImage": c.GetString("account_image"),
	})
}

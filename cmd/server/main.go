package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sovannra/blogpress-core/internal/accounts"
	"github.com/sovannra/blogpress-core/internal/auth"
	"github.com/sovannra/blogpress-core/internal/cloudinary"
	"github.com/sovannra/blogpress-core/internal/database"
	"github.com/sovannra/blogpress-core/internal/pages"
	"github.com/sovannra/blogpress-core/internal/posts"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded, continuing with environment variables")
	}

	if m := os.Getenv("GIN_MODE"); m != "" {
		gin.SetMode(m)
	}

	ctx := context.Background()

	store, err := database.Connect(ctx)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	uploader := cloudinary.NewClient(cloudinary.NewConfig())

	authHandlers := auth.NewHandlers(store)
	accountCtrl := accounts.NewController(store, uploader)
	postCtrl := posts.NewController(store, uploader)

	r := gin.Default()
	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Pages
	r.GET("/", pages.HomeHandler)
	r.GET("/login", pages.LoginFormHandler)
	r.GET("/signup", pages.SignupFormHandler)
	r.GET("/dashboard", auth.RequireSession(), pages.DashboardHandler)

	// Auth routes
	r.POST("/api/auth/signup", accountCtrl.SignupHandler)
	r.POST("/api/auth/login", authHandlers.LoginHandler)
	r.GET("/api/auth/session", authHandlers.SessionHandler)
	r.POST("/api/auth/logout", authHandlers.LogoutHandler)

	// Blog routes; reads are public, writes need a session
	r.GET("/api/blog", postCtrl.ListHandler)
	r.POST("/api/blog", auth.RequireSession(), postCtrl.CreateHandler)
	r.PUT("/api/blog", auth.RequireSession(), postCtrl.UpdateHandler)
	r.DELETE("/api/blog", auth.RequireSession(), postCtrl.DeleteHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		log.Printf("listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("database close: %v", err)
	}
}

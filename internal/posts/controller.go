package posts

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sovannra/blogpress-core/internal/cloudinary"
)

type Store interface {
	ListPosts(ctx context.Context) ([]Post, error)
	InsertPost(ctx context.Context, p *Post) error
	UpdatePost(ctx context.Context, id string, upd PostUpdate) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

type Uploader interface {
	Upload(ctx context.Context, data []byte, folder, filename string) (*cloudinary.UploadResponse, error)
}

type Controller struct {
	store    Store
	uploader Uploader
}

func NewController(store Store, uploader Uploader) *Controller {
	return &Controller{store: store, uploader: uploader}
}

func (ct *Controller) ListHandler(c *gin.Context) {
	list, err := ct.store.ListPosts(c.Request.Context())
	if err != nil {
		log.Printf("list posts failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blogs"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ct *Controller) CreateHandler(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	image, fileErr := c.FormFile("image")

	if title == "" || description == "" || fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	ctx := c.Request.Context()

	data, err := cloudinary.ReadFormFile(image)
	if err != nil {
		log.Printf("create blog read upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	uploaded, err := ct.uploader.Upload(ctx, data, cloudinary.FolderBlogImage, image.Filename)
	if err != nil {
		log.Printf("create blog upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	post := Post{
		Title:       title,
		Description: description,
		Image:       uploaded.SecureURL,
	}

	if err := ct.store.InsertPost(ctx, &post); err != nil {
		log.Printf("create blog insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Blog created", "blog": post})
}

func (ct *Controller) UpdateHandler(c *gin.Context) {
	id := c.PostForm("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Blog ID is required"})
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}

	ctx := c.Request.Context()
	upd := PostUpdate{Title: title, Description: description}

	// The image is optional on update; a request without one keeps the
	// stored URL. When present, only the hosted secure URL is persisted.
	if image, err := c.FormFile("image"); err == nil {
		data, err := cloudinary.ReadFormFile(image)
		if err != nil {
			log.Printf("update blog read upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog"})
			return
		}
		uploaded, err := ct.uploader.Upload(ctx, data, cloudinary.FolderBlogImage, image.Filename)
		if err != nil {
			log.Printf("update blog upload failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog"})
			return
		}
		upd.Image = uploaded.SecureURL
	}

	post, err := ct.store.UpdatePost(ctx, id, upd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Blog not found"})
			return
		}
		log.Printf("update blog failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update blog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog updated", "blog": post})
}

func (ct *Controller) DeleteHandler(c *gin.Context) {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Blog ID is required"})
		return
	}

	if err := ct.store.DeletePost(c.Request.Context(), body.ID); err != nil {
		log.Printf("delete blog failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete blog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
}

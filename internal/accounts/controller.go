package accounts

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/sovannra/blogpress-core/internal/cloudinary"
)

type Store interface {
	FindAccountByEmail(ctx context.Context, email string) (*Account, error)
	InsertAccount(ctx context.Context, a *Account) error
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

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), 10)
	return string(b), err
}

// SignupHandler registers a new account from a multipart form carrying
// email, password, and a profileImage file. The response never includes the
// password hash.
func (ct *Controller) SignupHandler(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	profileImage, fileErr := c.FormFile("profileImage")

	if email == "" || password == "" || fileErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := ct.store.FindAccountByEmail(ctx, email); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists", "status": 400})
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		log.Printf("signup lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Printf("signup hash failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	data, err := cloudinary.ReadFormFile(profileImage)
	if err != nil {
		log.Printf("signup read upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	uploaded, err := ct.uploader.Upload(ctx, data, cloudinary.FolderProfilePictures, profileImage.Filename)
	if err != nil {
		log.Printf("signup image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	account := Account{
		Email:        email,
		Password:     hashed,
		ProfileImage: uploaded.SecureURL,
	}

	if err := ct.store.InsertAccount(ctx, &account); err != nil {
		// A concurrent signup can win the race past the pre-check; the
		// unique email index settles it.
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists", "status": 400})
			return
		}
		log.Printf("signup insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"status":  201,
		"user": gin.H{
			"id":           account.ID.Hex(),
			"email":        account.Email,
			"profileImage": account.ProfileImage,
		},
	})
}

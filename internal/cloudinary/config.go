package cloudinary

import "os"

const BaseURL = "https://api.cloudinary.com/v1_1"

// Upload folders. The profile folder is fixed at signup; blog images all
// land in FolderBlogImage.
const (
	FolderProfilePictures = "profile_pictures"
	FolderBlogImage       = "blog_image"
)

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string
}

func NewConfig() *Config {
	return &Config{
		CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		BaseURL:   BaseURL,
	}
}

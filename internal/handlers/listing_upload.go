package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"timevault/internal/models"
)

/*
=======================
  INPUT STRUCT
=======================
*/

type MultipartListingInput struct {
	Title           string
	TitleSet        bool
	Brand           string
	BrandSet        bool
	Category        string
	CategorySet     bool
	Gender          string
	GenderSet       bool
	Price           float64
	PriceSet        bool
	SerialNumber    string
	SerialNumberSet bool
	Condition       string
	ConditionSet    bool
	Description     string
	DescriptionSet  bool
	ImagePath       string
	ImageSet        bool
}

/*
=======================
  PARSER
=======================
*/

func parseMultipartListingRequest(c *gin.Context) (MultipartListingInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		log.Println("PARSE ERROR:", err)
		return MultipartListingInput{}, err
	}

	input := MultipartListingInput{}

	// ---- STRING FIELDS ----

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}

	if value, ok := c.GetPostForm("brand"); ok {
		input.Brand = strings.TrimSpace(value)
		input.BrandSet = true
	}

	if value, ok := c.GetPostForm("category"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}

	if value, ok := c.GetPostForm("gender"); ok {
		input.Gender = strings.TrimSpace(value)
		input.GenderSet = true
	}

	if value, ok := c.GetPostForm("serialNumber"); ok {
		input.SerialNumber = strings.TrimSpace(value)
		input.SerialNumberSet = true
	}

	if value, ok := c.GetPostForm("condition"); ok {
		input.Condition = strings.TrimSpace(value)
		input.ConditionSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return MultipartListingInput{}, err
		}
		input.Price = parsed
		input.PriceSet = true
	}

	// ---- IMAGE FILE ----

	file, err := c.FormFile("image")
	if err == nil {
		imagePath, err := saveWatchImage(file)
		if err != nil {
			return MultipartListingInput{}, err
		}
		input.ImagePath = imagePath
		input.ImageSet = true
	} else {
		// missing file errors differ between gin versions
		if !errors.Is(err, http.ErrMissingFile) &&
			!strings.Contains(err.Error(), "no such file") {
			return MultipartListingInput{}, err
		}
	}

	return input, nil
}

/*
=======================
  IMAGE SAVE
=======================
*/

func saveWatchImage(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	allowedExtensions := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".webp": {},
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	const maxImageSize = 5 << 20
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}

	filename := primitive.NewObjectID().Hex() + extension

	dir := filepath.Join(publicRootDir, "uploads", "watches")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("[UPLOAD] saveWatchImage: failed to create directory %s: %v", dir, err)
		return "", err
	}

	fullPath := filepath.Join(dir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] saveWatchImage: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] saveWatchImage: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] saveWatchImage: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", "watches", filename)), nil
}

/*
=======================
  HANDLER
=======================
*/

// POST /user/listings — authenticated sellers list their own watches
func CreateListing(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /user/listings"
		defer handlePanic(c, route)

		sellerID, ok := userIDFromContext(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		input, err := parseMultipartListingRequest(c)
		if err != nil {
			respondMultipartError(c, err)
			return
		}

		if !input.TitleSet || input.Title == "" {
			respondWithError(c, http.StatusBadRequest, route, "title is required")
			return
		}
		if !input.BrandSet || input.Brand == "" {
			respondWithError(c, http.StatusBadRequest, route, "brand is required")
			return
		}
		if !input.PriceSet || input.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "price must be greater than 0")
			return
		}

		watch := models.Watch{
			Title:        input.Title,
			Brand:        input.Brand,
			Category:     input.Category,
			Gender:       input.Gender,
			Price:        input.Price,
			SerialNumber: input.SerialNumber,
			Condition:    input.Condition,
			ImageURL:     models.ImageRef(input.ImagePath),
			SellerID:     &sellerID,
			Description:  input.Description,
			CreatedAt:    time.Now(),
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("watches").InsertOne(ctx, watch)
		if err != nil {
			if input.ImageSet {
				if cleanupErr := safeDeleteUpload(input.ImagePath); cleanupErr != nil {
					log.Printf("[%s] orphan image cleanup failed: %v", route, cleanupErr)
				}
			}
			if mongo.IsDuplicateKeyError(err) {
				respondWithError(c, http.StatusConflict, route, "serial number already listed")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		log.Printf("[%s] listing created: %s by seller %s", route, id.Hex(), sellerID.Hex())
		c.JSON(http.StatusCreated, gin.H{"id": id.Hex(), "message": "listing created"})
	}
}

func respondMultipartError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

package main

import (
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/unibudget/unibudget_backend/config"
	"github.com/unibudget/unibudget_backend/models"
	"github.com/unibudget/unibudget_backend/utils"
)

const maxUploadSizeBytes int64 = 5 * 1024 * 1024

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// uploadProfileImageHandler accepts a multipart "image" field, stores the
// original and a 200px thumbnail in GCS, and saves the URL on the profile.
func uploadProfileImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		userId := sessionUserId(c)

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if fileHeader.Size > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadSizeBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		if int64(len(data)) > maxUploadSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file size exceeds 5MB limit"})
			return
		}
		mimeType := http.DetectContentType(data)
		if !imageMimeTypes[mimeType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}

		ext := ".jpg"
		if mimeType == "image/png" {
			ext = ".png"
		}
		objectKey := path.Join("avatars", utils.GenerateUniqueFilename()+ext)

		ctx := c.Request.Context()
		if err := utils.UploadFileToGCS(ctx, objectKey, bytes.NewReader(data)); err != nil {
			config.LogError(logger, "uploads.go", "uploadProfileImageHandler", "UploadFileToGCS", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store image, try again"})
			return
		}

		thumbnailKey, err := createThumbnail(c, data, objectKey)
		if err != nil {
			config.LogError(logger, "uploads.go", "uploadProfileImageHandler", "createThumbnail", objectKey, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not process image, try again"})
			return
		}

		imageUrl := utils.PublicObjectURL(objectKey)
		if err := models.SetUserImage(ctx, userId, imageUrl); err != nil {
			respondError(c, err, "could not update profile, try again")
			return
		}

		logger.WithFields(logrus.Fields{
			"user_id":    userId,
			"object_key": objectKey,
		}).Info("[upload.complete]")

		c.JSON(http.StatusOK, gin.H{
			"image_url":     imageUrl,
			"thumbnail_url": utils.PublicObjectURL(thumbnailKey),
		})
	}
}

func createThumbnail(c *gin.Context, data []byte, objectKey string) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	thumbnail := imaging.Resize(img, 200, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", err
	}

	thumbnailKey := thumbnailObjectKey(objectKey)
	if err := utils.UploadFileToGCS(c.Request.Context(), thumbnailKey, &buf); err != nil {
		return "", err
	}
	return thumbnailKey, nil
}

func thumbnailObjectKey(objectKey string) string {
	dir := path.Dir(objectKey)
	filename := strings.TrimSuffix(path.Base(objectKey), path.Ext(objectKey)) + ".jpg"
	return path.Join(dir, "thumbnails", filename)
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresignMediaWithoutClient(t *testing.T) {
	// Sans MinIO configuré, l'URL stockée repart telle quelle
	assert.Nil(t, MinioClient)

	raw := "http://minio.local/notifications/1234.png"
	assert.Equal(t, &raw, presignMedia(context.Background(), &raw))
	assert.Nil(t, presignMedia(context.Background(), nil))
}

func TestGenerateSignedURLWithoutClient(t *testing.T) {
	_, err := GenerateSignedURL(context.Background(), "http://minio.local/notifications/x", 0)
	assert.Error(t, err)
}

package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"
)

// GenerateSignedURL signe l'accès temporaire à un média de notification.
// La base ne stocke que l'URL canonique de l'objet ; le bucket reste privé
// et chaque lecture passe par une URL présignée.
func GenerateSignedURL(ctx context.Context, objectURL string, duration time.Duration) (string, error) {
	if MinioClient == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	reqParams := make(url.Values)

	// Ne garder que le chemin de l'objet relatif au bucket
	prefix := fmt.Sprintf("http://%s/%s/", os.Getenv("MINIO_ENDPOINT"), NotificationBucket)
	key := strings.TrimPrefix(objectURL, prefix)

	presignedURL, err := MinioClient.PresignedGetObject(ctx, NotificationBucket, key, duration, reqParams)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

// presignMedia remplace l'URL canonique d'un média par une URL signée d'une
// heure pour le fil de notifications. Sans MinIO ou en cas d'échec, l'URL
// stockée part telle quelle.
func presignMedia(ctx context.Context, raw *string) *string {
	if raw == nil || MinioClient == nil {
		return raw
	}
	signed, err := GenerateSignedURL(ctx, *raw, time.Hour)
	if err != nil {
		log.Println("⚠️ Signature du média impossible :", err)
		return raw
	}
	return &signed
}

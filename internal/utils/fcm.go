package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const fcmScope = "https://www.googleapis.com/auth/firebase.messaging"

var (
	fcmOnce   sync.Once
	fcmSource oauth2.TokenSource
)

func fcmTokenSource() oauth2.TokenSource {
	fcmOnce.Do(func() {
		credsPath := os.Getenv("FCM_CREDENTIALS_FILE")
		if credsPath == "" {
			return
		}
		data, err := os.ReadFile(credsPath)
		if err != nil {
			log.Println("⚠️ FCM non configuré :", err)
			return
		}
		creds, err := google.CredentialsFromJSON(context.Background(), data, fcmScope)
		if err != nil {
			log.Println("⚠️ FCM credentials invalides :", err)
			return
		}
		fcmSource = creds.TokenSource
	})
	return fcmSource
}

// SendPush envoie une notification push FCM (API HTTP v1), best-effort : un
// échec est journalisé, jamais remonté au client.
func SendPush(deviceToken, title, body string) {
	source := fcmTokenSource()
	projectID := os.Getenv("FCM_PROJECT_ID")
	if source == nil || projectID == "" || deviceToken == "" {
		return
	}

	payload := map[string]any{
		"message": map[string]any{
			"token": deviceToken,
			"notification": map[string]string{
				"title": title,
				"body":  body,
			},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	token, err := source.Token()
	if err != nil {
		log.Println("❌ Erreur jeton FCM:", err)
		return
	}

	url := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", projectID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		log.Println("❌ Erreur envoi push FCM:", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("⚠️ FCM a renvoyé %d", resp.StatusCode)
		return
	}
	log.Println("📱 Push FCM envoyé")
}

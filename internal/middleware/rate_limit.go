package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/cache"
)

const (
	LoginMaxAttempts = 5
	OTPMaxAttempts   = 3

	LoginCooldown = 15 * time.Minute
	OTPCooldown   = 10 * time.Minute
)

// LoginRateLimit limite les tentatives de connexion par email, compteur
// Redis avec expiration. Sans Redis, la limite est désactivée.
func LoginRateLimit() gin.HandlerFunc {
	return rateLimit("login", "email", LoginMaxAttempts, LoginCooldown)
}

// PhoneLoginRateLimit : même garde-fou, compté par numéro de téléphone.
func PhoneLoginRateLimit() gin.HandlerFunc {
	return rateLimit("login", "phone", LoginMaxAttempts, LoginCooldown)
}

// OTPRateLimit limite les demandes de code de connexion par email.
func OTPRateLimit() gin.HandlerFunc {
	return rateLimit("otp", "email", OTPMaxAttempts, OTPCooldown)
}

func rateLimit(kind, field string, maxAttempts int, cooldown time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cache.RedisClient == nil {
			c.Next()
			return
		}

		// Lire le body sans le consommer
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input map[string]string
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input[field] == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := fmt.Sprintf("ratelimit:%s:%s", kind, input[field])
		count, err := cache.RedisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			cache.RedisClient.Expire(ctx, key, cooldown)
		}
		if count > int64(maxAttempts) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Trop de tentatives, réessayez plus tard",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/utils"
)

// AuthRequired vérifie le jeton Bearer et pose l'identité dans le contexte
// gin (user_id, email, role).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Format Authorization invalide"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user_id manquant"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		if role == models.RoleBlacklist {
			c.JSON(http.StatusForbidden, gin.H{"error": "Compte suspendu"})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("email", claims["email"])
		c.Set("role", role)
		c.Next()
	}
}

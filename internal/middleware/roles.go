package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/models"
)

// RequireStaff réserve la route à l'équipe (Admin ou AdminAssistant).
func RequireStaff(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin && role != models.RoleAdminAssistant {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé à l'équipe"})
		c.Abort()
		return
	}
	c.Next()
}

// RequireAdmin réserve la route aux administrateurs pleins ; les assistants
// n'y passent pas.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}

package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/services"
)

// Notifications : le fil du client, récentes d'abord.
func Notifications(c *gin.Context) {
	pageIndex, pageSize := pagination(c)
	page, err := services.NewNotificationService(database.DB).Feed(c.Request.Context(), c.GetString("user_id"), pageIndex, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// UnreadCount : le badge de l'application.
func UnreadCount(c *gin.Context) {
	count, err := services.NewNotificationService(database.DB).UnreadCount(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func MarkNotificationRead(c *gin.Context) {
	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	if err := services.NewNotificationService(database.DB).MarkRead(c.Request.Context(), notificationID, c.GetString("user_id")); err != nil {
		failOrder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification lue"})
}

func MarkAllNotificationsRead(c *gin.Context) {
	if err := services.NewNotificationService(database.DB).MarkAllRead(c.Request.Context(), c.GetString("user_id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Toutes les notifications sont lues"})
}

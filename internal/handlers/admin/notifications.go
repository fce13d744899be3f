package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/services"
	"lavoir_back_end/internal/utils"
)

// SendNotification envoie une notification à un client, désigné par id ou
// par numéro de téléphone, avec média joint optionnel (multipart). Le
// fichier part dans MinIO, la notification est stockée, le push est
// best-effort.
func SendNotification(c *gin.Context) {
	receiverID := c.PostForm("receiver_id")
	receiverPhone := c.PostForm("receiver_phone")
	title := c.PostForm("title")
	message := c.PostForm("message")
	if (receiverID == "" && receiverPhone == "") || title == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receiver_id ou receiver_phone, title et message sont requis"})
		return
	}

	kind, ok := models.ParseNotificationType(c.DefaultPostForm("type", string(models.NotifMessage)))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type de notification inconnu"})
		return
	}

	var mediaURL *string
	if file, err := c.FormFile("media"); err == nil {
		url, err := services.UploadMedia(services.NotificationBucket, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Échec de l'upload du média"})
			return
		}
		mediaURL = &url
	}

	svc := services.NewNotificationService(database.DB)
	var (
		notification *models.Notification
		err          error
	)
	if receiverID != "" {
		notification, err = svc.Send(c.Request.Context(), c.GetString("user_id"), receiverID, title, message, mediaURL, kind)
	} else {
		notification, err = svc.SendByPhone(c.Request.Context(), c.GetString("user_id"), receiverPhone, title, message, mediaURL, kind)
	}
	if err != nil {
		utils.LogFailedAction(c, "notification.send", "notification", "", err.Error())
		fail(c, err)
		return
	}

	utils.LogAction(c, "notification.send", "notification", notification.ReceiverID, nil, notification)
	c.JSON(http.StatusCreated, notification)
}

// BroadcastNotification diffuse la même notification à tous les comptes.
func BroadcastNotification(c *gin.Context) {
	var input struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := models.NotifMessage
	if input.Type != "" {
		var ok bool
		if kind, ok = models.ParseNotificationType(input.Type); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type de notification inconnu"})
			return
		}
	}

	sent, err := services.NewNotificationService(database.DB).Broadcast(
		c.Request.Context(), c.GetString("user_id"), input.Title, input.Message, kind)
	if err != nil {
		utils.LogFailedAction(c, "notification.broadcast", "notification", "", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogAction(c, "notification.broadcast", "notification", "", nil, gin.H{"title": input.Title, "sent": sent})
	c.JSON(http.StatusCreated, gin.H{"sent": sent})
}

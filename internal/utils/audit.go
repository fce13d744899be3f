package utils

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
)

// LogAction enregistre une action dans les logs d'audit
func LogAction(c *gin.Context, action, resource, resourceID string, oldValue, newValue any) {
	entry := buildAuditLog(c, action, resource, resourceID, oldValue, newValue, true, "")
	go func() {
		if err := writeAuditLog(entry); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// LogFailedAction enregistre une action échouée dans les logs d'audit
func LogFailedAction(c *gin.Context, action, resource, resourceID, errorMsg string) {
	entry := buildAuditLog(c, action, resource, resourceID, nil, nil, false, errorMsg)
	go func() {
		if err := writeAuditLog(entry); err != nil {
			log.Printf("❌ Erreur enregistrement log audit: %v", err)
		}
	}()
}

// buildAuditLog lit le contexte gin sur la goroutine de la requête ; seule
// l'écriture Scylla part en arrière-plan.
func buildAuditLog(c *gin.Context, action, resource, resourceID string, oldValue, newValue any, success bool, errorMsg string) models.AuditLog {
	userID, _ := c.Get("user_id")
	userEmail, _ := c.Get("email")

	var oldValueStr, newValueStr string
	if oldValue != nil {
		if b, err := json.Marshal(oldValue); err == nil {
			oldValueStr = string(b)
		}
	}
	if newValue != nil {
		if b, err := json.Marshal(newValue); err == nil {
			newValueStr = string(b)
		}
	}

	return models.AuditLog{
		ID:         gocql.TimeUUID(),
		UserID:     stringValue(userID),
		UserEmail:  stringValue(userEmail),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		OldValue:   oldValueStr,
		NewValue:   newValueStr,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		Success:    success,
		ErrorMsg:   errorMsg,
		Timestamp:  time.Now(),
	}
}

func writeAuditLog(entry models.AuditLog) error {
	if database.ScyllaSession == nil {
		return nil // audit best-effort: pas de session, pas de journal
	}

	return database.ScyllaSession.Query(`
		INSERT INTO audit_logs (
			id, user_id, user_email, action, resource, resource_id,
			old_value, new_value, ip_address, user_agent, success,
			error_msg, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Resource,
		entry.ResourceID, entry.OldValue, entry.NewValue, entry.IPAddress,
		entry.UserAgent, entry.Success, entry.ErrorMsg, entry.Timestamp,
	).Exec()
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

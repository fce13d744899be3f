package spec

// Spécifications sur les notifications.

// UserNotifications : le fil d'un destinataire, récentes d'abord, paginé.
func UserNotifications(userID string, pageIndex, pageSize int) Spec {
	return New(Where("receiver_id = ?", userID)).
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func UserNotificationCount(userID string) Spec {
	return New(Where("receiver_id = ?", userID))
}

// UserUnreadNotifications : les non-lues d'un destinataire, à marquer lues.
func UserUnreadNotifications(userID string) Spec {
	return New(Where("receiver_id = ?", userID), Where("is_read = FALSE"))
}

func UserUnreadNotificationCount(userID string) Spec {
	return New(Where("receiver_id = ?", userID), Where("is_read = FALSE"))
}

// UserMessages : tout l'échange avec un utilisateur, envoyé ou reçu.
func UserMessages(userID string, pageIndex, pageSize int) Spec {
	return New(Where("(receiver_id = ? OR sender_id = ?)", userID, userID)).
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func UserMessageCount(userID string) Spec {
	return New(Where("(receiver_id = ? OR sender_id = ?)", userID, userID))
}

package services

import (
	"context"
	"database/sql"
	"time"

	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

// NotificationService gère la messagerie interne : notifications stockées,
// avec relais push best-effort.
type NotificationService struct {
	db *sql.DB
}

func NewNotificationService(db *sql.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Send stocke une notification puis relaie en push si le destinataire a un
// appareil enregistré. L'échec du push ne défait jamais la notification.
func (s *NotificationService) Send(ctx context.Context, senderID, receiverID, title, message string, mediaURL *string, kind models.NotificationType) (*models.Notification, error) {
	uow := repository.NewUnitOfWork(s.db)

	receiver, err := repository.For(uow, repository.Users).Get(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, invalidInput("destinataire %s inconnu", receiverID)
	}

	notification := &models.Notification{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Title:      title,
		Message:    message,
		MediaURL:   mediaURL,
		Type:       kind,
		CreatedAt:  time.Now().UTC(),
	}
	repository.For(uow, repository.Notifications).Add(notification)
	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}

	if receiver.FCMToken != nil {
		go utils.SendPush(*receiver.FCMToken, title, message)
	}
	return notification, nil
}

// SendByPhone retrouve le destinataire par numéro avant d'envoyer.
func (s *NotificationService) SendByPhone(ctx context.Context, senderID, phone, title, message string, mediaURL *string, kind models.NotificationType) (*models.Notification, error) {
	uow := repository.NewUnitOfWork(s.db)
	receiver, err := repository.For(uow, repository.Users).GetWithSpec(ctx, spec.UserByPhone(phone))
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, invalidInput("aucun compte avec le numéro %s", phone)
	}
	return s.Send(ctx, senderID, receiver.ID, title, message, mediaURL, kind)
}

// Broadcast stocke la même notification pour tous les comptes en une
// transaction, puis pousse vers chaque appareil enregistré.
func (s *NotificationService) Broadcast(ctx context.Context, senderID, title, message string, kind models.NotificationType) (int, error) {
	uow := repository.NewUnitOfWork(s.db)

	users, err := repository.For(uow, repository.Users).GetAll(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	notifications := repository.For(uow, repository.Notifications)
	for _, u := range users {
		notifications.Add(&models.Notification{
			SenderID:   senderID,
			ReceiverID: u.ID,
			Title:      title,
			Message:    message,
			Type:       kind,
			CreatedAt:  now,
		})
	}
	if err := uow.Complete(ctx); err != nil {
		return 0, err
	}

	for _, u := range users {
		if u.FCMToken != nil {
			go utils.SendPush(*u.FCMToken, title, message)
		}
	}
	return len(users), nil
}

// Feed renvoie les notifications d'un utilisateur, récentes d'abord, avec le
// nom de chaque expéditeur résolu en un seul lot et les médias présignés.
func (s *NotificationService) Feed(ctx context.Context, userID string, pageIndex, pageSize int) (models.Pagination[models.NotificationDto], error) {
	uow := repository.NewUnitOfWork(s.db)
	notifications := repository.For(uow, repository.Notifications)

	ents, err := notifications.GetAllWithSpec(ctx, spec.UserNotifications(userID, pageIndex, pageSize))
	if err != nil {
		return models.Pagination[models.NotificationDto]{}, err
	}
	count, err := notifications.Count(ctx, spec.UserNotificationCount(userID))
	if err != nil {
		return models.Pagination[models.NotificationDto]{}, err
	}

	senders := map[string]string{}
	users := repository.For(uow, repository.Users)
	for _, n := range ents {
		if _, ok := senders[n.SenderID]; ok {
			continue
		}
		sender, err := users.Get(ctx, n.SenderID)
		if err != nil {
			return models.Pagination[models.NotificationDto]{}, err
		}
		name := "Le Lavoir"
		if sender != nil {
			name = sender.FullName()
		}
		senders[n.SenderID] = name
	}

	out := make([]models.NotificationDto, len(ents))
	for i, n := range ents {
		out[i] = models.NotificationDto{
			ID:         n.ID,
			SenderID:   n.SenderID,
			SenderName: senders[n.SenderID],
			Title:      n.Title,
			Message:    n.Message,
			MediaURL:   presignMedia(ctx, n.MediaURL),
			Type:       string(n.Type),
			IsRead:     n.IsRead,
			CreatedAt:  n.CreatedAt,
		}
	}
	return models.NewPagination(pageIndex, pageSize, count, out), nil
}

// UnreadCount : le badge de l'application.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	uow := repository.NewUnitOfWork(s.db)
	return repository.For(uow, repository.Notifications).Count(ctx, spec.UserUnreadNotificationCount(userID))
}

// MarkRead marque une notification comme lue, si elle appartient bien au
// lecteur.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID int64, userID string) error {
	uow := repository.NewUnitOfWork(s.db)
	notifications := repository.For(uow, repository.Notifications)

	n, err := notifications.Get(ctx, notificationID)
	if err != nil {
		return err
	}
	if n == nil || n.ReceiverID != userID {
		return invalidInput("notification %d introuvable", notificationID)
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	notifications.Update(n)
	return uow.Complete(ctx)
}

// MarkAllRead marque toutes les notifications non lues d'un utilisateur.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	uow := repository.NewUnitOfWork(s.db)
	notifications := repository.For(uow, repository.Notifications)

	unread, err := notifications.GetAllWithSpec(ctx, spec.UserUnreadNotifications(userID))
	if err != nil {
		return err
	}
	for _, n := range unread {
		n.IsRead = true
		notifications.Update(n)
	}
	return uow.Complete(ctx)
}

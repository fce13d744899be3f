package models

// Rôles utilisateurs
const (
	RoleAdmin          = "Admin"
	RoleAdminAssistant = "AdminAssistant"
	RoleVip            = "Vip"
	RoleBlacklist      = "Blacklist"
	RoleClient         = "" // rôle par défaut
)

// OrderStatus suit le cycle de vie linéaire d'une commande.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusAccepted       OrderStatus = "Accepted"
	StatusProcessing     OrderStatus = "Processing"
	StatusReadyForPickup OrderStatus = "ReadyForPickup"
	StatusOutForDelivery OrderStatus = "OutForDelivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusPaid           OrderStatus = "Paid"
	StatusCancelled      OrderStatus = "Cancelled"
)

var orderStatuses = map[OrderStatus]bool{
	StatusPending:        true,
	StatusAccepted:       true,
	StatusProcessing:     true,
	StatusReadyForPickup: true,
	StatusOutForDelivery: true,
	StatusDelivered:      true,
	StatusPaid:           true,
	StatusCancelled:      true,
}

// ParseOrderStatus valide une valeur de statut reçue de l'extérieur.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(s)
	return st, orderStatuses[st]
}

// IsTerminal : une commande payée ou annulée ne bouge plus.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// NotificationType décrit le contenu joint à une notification.
type NotificationType string

const (
	NotifMessage     NotificationType = "Message"
	NotifImage       NotificationType = "Image"
	NotifVideo       NotificationType = "Video"
	NotifApplication NotificationType = "Application"
)

var notificationTypes = map[NotificationType]bool{
	NotifMessage:     true,
	NotifImage:       true,
	NotifVideo:       true,
	NotifApplication: true,
}

func ParseNotificationType(s string) (NotificationType, bool) {
	t := NotificationType(s)
	return t, notificationTypes[t]
}

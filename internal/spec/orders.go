package spec

import (
	"github.com/lib/pq"

	"lavoir_back_end/internal/models"
)

// Spécifications nommées sur les commandes. Chacune documente son filtre,
// son tri, ses includes et sa pagination — et rien d'autre.

// OrderByIDAndUser : la commande `orderID` si elle appartient à `userID`,
// avec coupon et type de livraison. Pas de tri, pas de pagination.
func OrderByIDAndUser(orderID int64, userID string) Spec {
	return New(
		Where("id = ?", orderID),
		Where("user_id = ?", userID),
	).include("Coupon", "DeliveryType")
}

// OrderReceipt : l'agrégat complet d'une commande du client, articles
// compris, pour le rendu du reçu.
func OrderReceipt(orderID int64, userID string) Spec {
	return New(
		Where("id = ?", orderID),
		Where("user_id = ?", userID),
	).include("Coupon", "DeliveryType", "Items")
}

// OrderByID : une commande par identifiant, coupon et livraison attachés.
func OrderByID(orderID int64) Spec {
	return New(Where("id = ?", orderID)).include("Coupon", "DeliveryType")
}

// UserOrderHistory : toutes les commandes d'un client, les plus récentes
// d'abord, paginées, avec coupon et type de livraison.
func UserOrderHistory(userID string, pageIndex, pageSize int) Spec {
	return New(Where("user_id = ?", userID)).
		include("Coupon", "DeliveryType").
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

// UserOrderCount : le total de commandes d'un client, sans pagination.
func UserOrderCount(userID string) Spec {
	return New(Where("user_id = ?", userID))
}

// UserActiveOrders : les commandes non terminées (ni payées ni annulées)
// d'un client, récentes d'abord, paginées.
func UserActiveOrders(userID string, pageIndex, pageSize int) Spec {
	return New(
		Where("user_id = ?", userID),
		Where("status NOT IN (?, ?)", string(models.StatusPaid), string(models.StatusCancelled)),
	).
		include("Coupon", "DeliveryType").
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func UserActiveOrderCount(userID string) Spec {
	return New(
		Where("user_id = ?", userID),
		Where("status NOT IN (?, ?)", string(models.StatusPaid), string(models.StatusCancelled)),
	)
}

// OrdersByStatus : toutes les commandes dans un statut donné, récentes
// d'abord, paginées, avec le client attaché (tri VIP côté admin).
func OrdersByStatus(status models.OrderStatus, pageIndex, pageSize int) Spec {
	return New(Where("status = ?", string(status))).
		include("Coupon", "DeliveryType", "User").
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func OrdersByStatusCount(status models.OrderStatus) Spec {
	return New(Where("status = ?", string(status)))
}

// ActiveOrders : commandes dans l'un des statuts de traitement.
func ActiveOrders(statuses []models.OrderStatus, pageIndex, pageSize int) Spec {
	return New(Where("status = ANY(?)", pq.Array(statusStrings(statuses)))).
		include("Coupon", "DeliveryType").
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func ActiveOrderCount(statuses []models.OrderStatus) Spec {
	return New(Where("status = ANY(?)", pq.Array(statusStrings(statuses))))
}

// AllOrdersHistory : tout l'historique, récentes d'abord, paginé.
func AllOrdersHistory(pageIndex, pageSize int) Spec {
	return New().
		include("Coupon", "DeliveryType").
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func AllOrdersCount() Spec {
	return New()
}

// ItemOrdersByOrder, OrderProductsByItem, OrderServicesByItem : lignes
// enfants d'un agrégat, utilisées par la suppression admin.
func ItemOrdersByOrder(orderID int64) Spec {
	return New(Where("order_id = ?", orderID))
}

func OrderProductsByItem(itemOrderID int64) Spec {
	return New(Where("item_order_id = ?", itemOrderID))
}

func OrderServicesByItem(itemOrderID int64) Spec {
	return New(Where("item_order_id = ?", itemOrderID))
}

// OrderProductsByProduct : lignes historiques référençant un produit,
// consultées avant une suppression catalogue.
func OrderProductsByProduct(productID int64) Spec {
	return New(Where("product_id = ?", productID))
}

func OrderServicesByType(typeID int64) Spec {
	return New(Where("type_of_service_id = ?", typeID))
}

func statusStrings(statuses []models.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

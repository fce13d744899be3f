package models

import "time"

// OrderAddress est une valeur imbriquée : copiée dans la ligne de commande au
// moment de la création, jamais une référence vers l'adresse du client. Une
// modification ultérieure de l'adresse du client ne touche pas les commandes
// passées.
type OrderAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type Order struct {
	ID             int64        `json:"id"`
	UserID         string       `json:"user_id"`
	CouponID       *int64       `json:"coupon_id,omitempty"`
	DeliveryTypeID int64        `json:"delivery_type_id"`
	Status         OrderStatus  `json:"status"`
	DeliveryPrice  float64      `json:"delivery_price"`
	TotalPrice     float64      `json:"total_price"`
	Phone          string       `json:"phone"`
	Address        OrderAddress `json:"address"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Données liées, chargées via les directives include
	User         *User         `json:"-"`
	Coupon       *Coupon       `json:"coupon,omitempty"`
	DeliveryType *DeliveryType `json:"delivery_type,omitempty"`
	Items        []*ItemOrder  `json:"items,omitempty"`
}

// ItemOrder regroupe des produits et des services au sein d'une commande,
// avec ses propres consignes libres.
type ItemOrder struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`

	Order    *Order          `json:"-"`
	Products []*OrderProduct `json:"products,omitempty"`
	Services []*OrderService `json:"services,omitempty"`
}

type OrderProduct struct {
	ID          int64     `json:"id"`
	ItemOrderID int64     `json:"item_order_id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`

	ItemOrder *ItemOrder `json:"-"`
	Product   *Product   `json:"product,omitempty"`
}

// OrderService : une ligne de service vaut une unité, pas de quantité.
type OrderService struct {
	ID              int64     `json:"id"`
	ItemOrderID     int64     `json:"item_order_id"`
	TypeOfServiceID int64     `json:"type_of_service_id"`
	CreatedAt       time.Time `json:"created_at"`

	ItemOrder     *ItemOrder     `json:"-"`
	TypeOfService *TypeOfService `json:"type_of_service,omitempty"`
}

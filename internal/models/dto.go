package models

import "time"

// Pagination enveloppe une page de résultats avec le total hors pagination.
type Pagination[T any] struct {
	PageIndex int `json:"page_index"`
	PageSize  int `json:"page_size"`
	Count     int `json:"count"`
	Data      []T `json:"data"`
}

func NewPagination[T any](pageIndex, pageSize, count int, data []T) Pagination[T] {
	return Pagination[T]{PageIndex: pageIndex, PageSize: pageSize, Count: count, Data: data}
}

// OrderDto est la projection renvoyée aux clients et aux écrans admin.
type OrderDto struct {
	ID            int64         `json:"id"`
	UserID        string        `json:"user_id"`
	Address       OrderAddress  `json:"address"`
	Coupon        *Coupon       `json:"coupon,omitempty"`
	DeliveryType  *DeliveryType `json:"delivery_type,omitempty"`
	Phone         string        `json:"phone"`
	Status        string        `json:"status"`
	DeliveryPrice float64       `json:"delivery_price"`
	TotalPrice    float64       `json:"total_price"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func NewOrderDto(o *Order) OrderDto {
	return OrderDto{
		ID:            o.ID,
		UserID:        o.UserID,
		Address:       o.Address,
		Coupon:        o.Coupon,
		DeliveryType:  o.DeliveryType,
		Phone:         o.Phone,
		Status:        string(o.Status),
		DeliveryPrice: o.DeliveryPrice,
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// NotificationDto ajoute le nom de l'expéditeur résolu côté service.
type NotificationDto struct {
	ID         int64     `json:"id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	MediaURL   *string   `json:"media_url,omitempty"`
	Type       string    `json:"type"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserDto struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	EmailConfirmed bool     `json:"email_confirmed"`
	PhoneNumber    *string  `json:"phone_number,omitempty"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	Role           string   `json:"role"`
	Address        *Address `json:"address,omitempty"`
}

func NewUserDto(u *User) UserDto {
	return UserDto{
		ID:             u.ID,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmed,
		PhoneNumber:    u.PhoneNumber,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		Address:        u.Address,
	}
}

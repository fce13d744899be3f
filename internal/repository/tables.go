package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"lavoir_back_end/internal/models"
)

// Mappings de chaque table. Les colonnes suivent l'ordre des arguments
// d'insertion ; les clés sérielles passent par AutoKey, les utilisateurs
// gardent leur UUID applicatif.

var Orders = &Mapping[models.Order, int64]{
	Table: "orders",
	Columns: []string{
		"user_id", "coupon_id", "delivery_type_id", "status",
		"delivery_price", "total_price", "phone",
		"address_street", "address_city", "address_region",
		"created_at", "updated_at",
	},
	AutoKey: true,
	Scan: func(s Scanner) (*models.Order, error) {
		var o models.Order
		var couponID sql.NullInt64
		err := s.Scan(&o.ID, &o.UserID, &couponID, &o.DeliveryTypeID, &o.Status,
			&o.DeliveryPrice, &o.TotalPrice, &o.Phone,
			&o.Address.Street, &o.Address.City, &o.Address.Region,
			&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		o.CouponID = i64Ptr(couponID)
		return &o, nil
	},
	InsertArgs: func(o *models.Order) []any {
		return []any{o.UserID, o.CouponID, o.DeliveryTypeID, o.Status,
			o.DeliveryPrice, o.TotalPrice, o.Phone,
			o.Address.Street, o.Address.City, o.Address.Region,
			o.CreatedAt, o.UpdatedAt}
	},
	Key:    func(o *models.Order) int64 { return o.ID },
	SetKey: func(o *models.Order, k int64) { o.ID = k },
	Loaders: map[string]Loader[models.Order]{
		"User":         loadOrderUsers,
		"Coupon":       loadOrderCoupons,
		"DeliveryType": loadOrderDeliveryTypes,
		"Items":        loadOrderItems,
	},
}

var ItemOrders = &Mapping[models.ItemOrder, int64]{
	Table:   "item_orders",
	Columns: []string{"order_id", "notes", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.ItemOrder, error) {
		var it models.ItemOrder
		if err := s.Scan(&it.ID, &it.OrderID, &it.Notes, &it.CreatedAt); err != nil {
			return nil, err
		}
		return &it, nil
	},
	// order_id passe par le pointeur de navigation : au flush, la commande
	// mère a déjà reçu son id générée.
	InsertArgs: func(it *models.ItemOrder) []any {
		orderID := it.OrderID
		if it.Order != nil {
			orderID = it.Order.ID
		}
		return []any{orderID, it.Notes, it.CreatedAt}
	},
	Key:    func(it *models.ItemOrder) int64 { return it.ID },
	SetKey: func(it *models.ItemOrder, k int64) { it.ID = k },
}

var OrderProducts = &Mapping[models.OrderProduct, int64]{
	Table:   "order_products",
	Columns: []string{"item_order_id", "product_id", "quantity", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.OrderProduct, error) {
		var p models.OrderProduct
		if err := s.Scan(&p.ID, &p.ItemOrderID, &p.ProductID, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, err
		}
		return &p, nil
	},
	InsertArgs: func(p *models.OrderProduct) []any {
		itemID := p.ItemOrderID
		if p.ItemOrder != nil {
			itemID = p.ItemOrder.ID
		}
		return []any{itemID, p.ProductID, p.Quantity, p.CreatedAt}
	},
	Key:    func(p *models.OrderProduct) int64 { return p.ID },
	SetKey: func(p *models.OrderProduct, k int64) { p.ID = k },
}

var OrderServices = &Mapping[models.OrderService, int64]{
	Table:   "order_services",
	Columns: []string{"item_order_id", "type_of_service_id", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.OrderService, error) {
		var sv models.OrderService
		if err := s.Scan(&sv.ID, &sv.ItemOrderID, &sv.TypeOfServiceID, &sv.CreatedAt); err != nil {
			return nil, err
		}
		return &sv, nil
	},
	InsertArgs: func(sv *models.OrderService) []any {
		itemID := sv.ItemOrderID
		if sv.ItemOrder != nil {
			itemID = sv.ItemOrder.ID
		}
		return []any{itemID, sv.TypeOfServiceID, sv.CreatedAt}
	},
	Key:    func(sv *models.OrderService) int64 { return sv.ID },
	SetKey: func(sv *models.OrderService, k int64) { sv.ID = k },
}

var Products = &Mapping[models.Product, int64]{
	Table:   "products",
	Columns: []string{"name", "price", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.Product, error) {
		var p models.Product
		if err := s.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt); err != nil {
			return nil, err
		}
		return &p, nil
	},
	InsertArgs: func(p *models.Product) []any { return []any{p.Name, p.Price, p.CreatedAt} },
	Key:        func(p *models.Product) int64 { return p.ID },
	SetKey:     func(p *models.Product, k int64) { p.ID = k },
}

var TypesOfService = &Mapping[models.TypeOfService, int64]{
	Table:   "types_of_service",
	Columns: []string{"name", "price", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.TypeOfService, error) {
		var t models.TypeOfService
		if err := s.Scan(&t.ID, &t.Name, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		return &t, nil
	},
	InsertArgs: func(t *models.TypeOfService) []any { return []any{t.Name, t.Price, t.CreatedAt} },
	Key:        func(t *models.TypeOfService) int64 { return t.ID },
	SetKey:     func(t *models.TypeOfService, k int64) { t.ID = k },
}

var DeliveryTypes = &Mapping[models.DeliveryType, int64]{
	Table:   "delivery_types",
	Columns: []string{"name", "price", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.DeliveryType, error) {
		var d models.DeliveryType
		if err := s.Scan(&d.ID, &d.Name, &d.Price, &d.CreatedAt); err != nil {
			return nil, err
		}
		return &d, nil
	},
	InsertArgs: func(d *models.DeliveryType) []any { return []any{d.Name, d.Price, d.CreatedAt} },
	Key:        func(d *models.DeliveryType) int64 { return d.ID },
	SetKey:     func(d *models.DeliveryType, k int64) { d.ID = k },
}

var Coupons = &Mapping[models.Coupon, int64]{
	Table:   "coupons",
	Columns: []string{"name", "rate", "is_percentage", "is_active", "expires_at", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.Coupon, error) {
		var c models.Coupon
		var expires sql.NullTime
		err := s.Scan(&c.ID, &c.Name, &c.Rate, &c.IsPercentage, &c.IsActive, &expires, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		c.ExpiresAt = timePtr(expires)
		return &c, nil
	},
	InsertArgs: func(c *models.Coupon) []any {
		return []any{c.Name, c.Rate, c.IsPercentage, c.IsActive, c.ExpiresAt, c.CreatedAt}
	},
	Key:    func(c *models.Coupon) int64 { return c.ID },
	SetKey: func(c *models.Coupon, k int64) { c.ID = k },
}

var Users = &Mapping[models.User, string]{
	Table: "users",
	Columns: []string{
		"email", "email_confirmed", "phone_number", "password_hash",
		"first_name", "last_name", "role", "address_id",
		"verification_code", "code_expires_at", "fcm_token", "created_at",
	},
	Scan: func(s Scanner) (*models.User, error) {
		var u models.User
		var phone, hash, code, fcm sql.NullString
		var addressID sql.NullInt64
		var codeExpires sql.NullTime
		err := s.Scan(&u.ID, &u.Email, &u.EmailConfirmed, &phone, &hash,
			&u.FirstName, &u.LastName, &u.Role, &addressID,
			&code, &codeExpires, &fcm, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		u.PhoneNumber = strPtr(phone)
		u.PasswordHash = strPtr(hash)
		u.AddressID = i64Ptr(addressID)
		u.VerificationCode = strPtr(code)
		u.CodeExpiresAt = timePtr(codeExpires)
		u.FCMToken = strPtr(fcm)
		return &u, nil
	},
	InsertArgs: func(u *models.User) []any {
		return []any{u.Email, u.EmailConfirmed, u.PhoneNumber, u.PasswordHash,
			u.FirstName, u.LastName, u.Role, u.AddressID,
			u.VerificationCode, u.CodeExpiresAt, u.FCMToken, u.CreatedAt}
	},
	Key:    func(u *models.User) string { return u.ID },
	SetKey: func(u *models.User, k string) { u.ID = k },
	Loaders: map[string]Loader[models.User]{
		"Address": loadUserAddresses,
	},
}

var Addresses = &Mapping[models.Address, int64]{
	Table:   "addresses",
	Columns: []string{"street", "city", "region", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.Address, error) {
		var a models.Address
		if err := s.Scan(&a.ID, &a.Street, &a.City, &a.Region, &a.CreatedAt); err != nil {
			return nil, err
		}
		return &a, nil
	},
	InsertArgs: func(a *models.Address) []any { return []any{a.Street, a.City, a.Region, a.CreatedAt} },
	Key:        func(a *models.Address) int64 { return a.ID },
	SetKey:     func(a *models.Address, k int64) { a.ID = k },
}

var Notifications = &Mapping[models.Notification, int64]{
	Table:   "notifications",
	Columns: []string{"sender_id", "receiver_id", "title", "message", "media_url", "type", "is_read", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.Notification, error) {
		var n models.Notification
		var media sql.NullString
		err := s.Scan(&n.ID, &n.SenderID, &n.ReceiverID, &n.Title, &n.Message, &media, &n.Type, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		n.MediaURL = strPtr(media)
		return &n, nil
	},
	InsertArgs: func(n *models.Notification) []any {
		return []any{n.SenderID, n.ReceiverID, n.Title, n.Message, n.MediaURL, n.Type, n.IsRead, n.CreatedAt}
	},
	Key:    func(n *models.Notification) int64 { return n.ID },
	SetKey: func(n *models.Notification, k int64) { n.ID = k },
}

var RefreshTokens = &Mapping[models.RefreshToken, int64]{
	Table:   "refresh_tokens",
	Columns: []string{"token", "user_id", "expires_at", "revoked_at", "created_by_ip", "created_at"},
	AutoKey: true,
	Scan: func(s Scanner) (*models.RefreshToken, error) {
		var t models.RefreshToken
		var revoked sql.NullTime
		err := s.Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &revoked, &t.CreatedByIP, &t.CreatedAt)
		if err != nil {
			return nil, err
		}
		t.RevokedAt = timePtr(revoked)
		return &t, nil
	},
	InsertArgs: func(t *models.RefreshToken) []any {
		return []any{t.Token, t.UserID, t.ExpiresAt, t.RevokedAt, t.CreatedByIP, t.CreatedAt}
	},
	Key:    func(t *models.RefreshToken) int64 { return t.ID },
	SetKey: func(t *models.RefreshToken, k int64) { t.ID = k },
}

// fetchByKeys récupère un lot d'entités par clé en une seule requête ANY.
func fetchByKeys[T any, K comparable](ctx context.Context, q Querier, m *Mapping[T, K], keys []K) (map[K]*T, error) {
	query := rebind("SELECT " + m.selectList() + " FROM " + m.Table + " WHERE id = ANY(?)")
	rows, err := q.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[K]*T, len(keys))
	for rows.Next() {
		e, err := m.Scan(rows)
		if err != nil {
			return nil, err
		}
		out[m.Key(e)] = e
	}
	return out, rows.Err()
}

func loadOrderUsers(ctx context.Context, q Querier, orders []*models.Order) error {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.UserID)
	}
	byID, err := fetchByKeys(ctx, q, Users, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.User = byID[o.UserID]
	}
	return nil
}

func loadOrderCoupons(ctx context.Context, q Querier, orders []*models.Order) error {
	var ids []int64
	for _, o := range orders {
		if o.CouponID != nil {
			ids = append(ids, *o.CouponID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	byID, err := fetchByKeys(ctx, q, Coupons, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.CouponID != nil {
			o.Coupon = byID[*o.CouponID]
		}
	}
	return nil
}

func loadOrderDeliveryTypes(ctx context.Context, q Querier, orders []*models.Order) error {
	ids := make([]int64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.DeliveryTypeID)
	}
	byID, err := fetchByKeys(ctx, q, DeliveryTypes, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.DeliveryType = byID[o.DeliveryTypeID]
	}
	return nil
}

// loadOrderItems charge tout le sous-arbre d'une commande : articles, puis
// lignes produit et lignes service avec leur fiche catalogue. Trois requêtes
// par niveau, quel que soit le nombre de commandes du lot.
func loadOrderItems(ctx context.Context, q Querier, orders []*models.Order) error {
	orderIDs := make([]int64, 0, len(orders))
	byOrder := make(map[int64]*models.Order, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
		byOrder[o.ID] = o
	}

	items, err := queryAll(ctx, q, ItemOrders, "order_id", orderIDs)
	if err != nil {
		return err
	}
	byItem := make(map[int64]*models.ItemOrder, len(items))
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		byOrder[it.OrderID].Items = append(byOrder[it.OrderID].Items, it)
		byItem[it.ID] = it
		itemIDs = append(itemIDs, it.ID)
	}
	if len(itemIDs) == 0 {
		return nil
	}

	products, err := queryAll(ctx, q, OrderProducts, "item_order_id", itemIDs)
	if err != nil {
		return err
	}
	var productIDs []int64
	for _, p := range products {
		byItem[p.ItemOrderID].Products = append(byItem[p.ItemOrderID].Products, p)
		productIDs = append(productIDs, p.ProductID)
	}
	if len(productIDs) > 0 {
		catalog, err := fetchByKeys(ctx, q, Products, productIDs)
		if err != nil {
			return err
		}
		for _, p := range products {
			p.Product = catalog[p.ProductID]
		}
	}

	services, err := queryAll(ctx, q, OrderServices, "item_order_id", itemIDs)
	if err != nil {
		return err
	}
	var serviceIDs []int64
	for _, sv := range services {
		byItem[sv.ItemOrderID].Services = append(byItem[sv.ItemOrderID].Services, sv)
		serviceIDs = append(serviceIDs, sv.TypeOfServiceID)
	}
	if len(serviceIDs) > 0 {
		catalog, err := fetchByKeys(ctx, q, TypesOfService, serviceIDs)
		if err != nil {
			return err
		}
		for _, sv := range services {
			sv.TypeOfService = catalog[sv.TypeOfServiceID]
		}
	}
	return nil
}

func loadUserAddresses(ctx context.Context, q Querier, users []*models.User) error {
	var ids []int64
	for _, u := range users {
		if u.AddressID != nil {
			ids = append(ids, *u.AddressID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	byID, err := fetchByKeys(ctx, q, Addresses, ids)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.AddressID != nil {
			u.Address = byID[*u.AddressID]
		}
	}
	return nil
}

// queryAll lit les lignes dont la colonne donnée tombe dans le lot de clés,
// triées par id pour garder un ordre stable.
func queryAll[T any, K comparable](ctx context.Context, q Querier, m *Mapping[T, K], column string, keys []int64) ([]*T, error) {
	query := rebind("SELECT " + m.selectList() + " FROM " + m.Table + " WHERE " + column + " = ANY(?) ORDER BY id")
	rows, err := q.QueryContext(ctx, query, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*T
	for rows.Next() {
		e, err := m.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func strPtr(v sql.NullString) *string {
	if v.Valid {
		return &v.String
	}
	return nil
}

func i64Ptr(v sql.NullInt64) *int64 {
	if v.Valid {
		return &v.Int64
	}
	return nil
}

func timePtr(v sql.NullTime) *time.Time {
	if v.Valid {
		return &v.Time
	}
	return nil
}

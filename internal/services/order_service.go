package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

// OrderService porte le workflow de commande : validation, tarification,
// persistance de l'agrégat en une transaction, cycle de vie des statuts.
// Chaque méthode ouvre son propre UnitOfWork : rien de partagé entre
// requêtes.
type OrderService struct {
	db *sql.DB
}

func NewOrderService(db *sql.DB) *OrderService {
	return &OrderService{db: db}
}

type OrderProductInput struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
}

// OrderItemInput est un groupe d'articles : des produits, des services, des
// consignes libres.
type OrderItemInput struct {
	Notes    string              `json:"notes"`
	Products []OrderProductInput `json:"products"`
	Services []int64             `json:"services"`
}

type CreateOrderRequest struct {
	UserID         string
	DeliveryTypeID int64               `json:"delivery_type_id" binding:"required"`
	CouponName     string              `json:"coupon_name"`
	Phone          string              `json:"phone" binding:"required"`
	Address        models.OrderAddress `json:"address" binding:"required"`
	Items          []OrderItemInput    `json:"items" binding:"required"`
}

// CreateOrder valide la demande, la tarife et persiste tout l'agrégat
// (commande, groupes, lignes produit, lignes service) en une seule
// transaction. La moindre validation en échec rejette la demande entière :
// jamais de commande partielle.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	now := time.Now().UTC()

	// 1. Le type de livraison doit exister.
	delivery, err := repository.For(uow, repository.DeliveryTypes).Get(ctx, req.DeliveryTypeID)
	if err != nil {
		return nil, err
	}
	if delivery == nil {
		return nil, invalidInput("type de livraison %d inconnu", req.DeliveryTypeID)
	}

	// 2. Le coupon, s'il est fourni, se cherche par nom sans tenir compte de
	// la casse. Introuvable et inutilisable sont deux refus distincts.
	var coupon *models.Coupon
	if req.CouponName != "" {
		coupon, err = repository.For(uow, repository.Coupons).GetWithSpec(ctx, spec.CouponByName(req.CouponName))
		if err != nil {
			return nil, err
		}
		if coupon == nil {
			return nil, ErrCouponNotFound
		}
		if !coupon.Usable(now) {
			return nil, ErrCouponUnusable
		}
	}

	// 3. Chaque référence catalogue doit se résoudre ; le premier id inconnu
	// fait échouer toute la demande en le nommant.
	products := repository.For(uow, repository.Products)
	services := repository.For(uow, repository.TypesOfService)

	subtotal := 0.0
	resolvedProducts := map[int64]*models.Product{}
	resolvedServices := map[int64]*models.TypeOfService{}
	for _, item := range req.Items {
		for _, line := range item.Products {
			if line.Quantity < 1 {
				return nil, invalidInput("quantité invalide pour le produit %d", line.ProductID)
			}
			p, ok := resolvedProducts[line.ProductID]
			if !ok {
				p, err = products.Get(ctx, line.ProductID)
				if err != nil {
					return nil, err
				}
				if p == nil {
					return nil, invalidInput("produit %d introuvable", line.ProductID)
				}
				resolvedProducts[line.ProductID] = p
			}
			subtotal += p.Price * float64(line.Quantity)
		}
		for _, serviceID := range item.Services {
			sv, ok := resolvedServices[serviceID]
			if !ok {
				sv, err = services.Get(ctx, serviceID)
				if err != nil {
					return nil, err
				}
				if sv == nil {
					return nil, invalidInput("service %d introuvable", serviceID)
				}
				resolvedServices[serviceID] = sv
			}
			subtotal += sv.Price
		}
	}
	subtotal = Round2(subtotal)

	order := &models.Order{
		UserID:         req.UserID,
		DeliveryTypeID: delivery.ID,
		Status:         models.StatusPending,
		DeliveryPrice:  delivery.Price,
		TotalPrice:     Total(subtotal, delivery.Price, coupon),
		Phone:          req.Phone,
		Address:        req.Address, // copie de valeur, jamais une référence
		CreatedAt:      now,
		UpdatedAt:      now,
		Coupon:         coupon,
		DeliveryType:   delivery,
	}
	if coupon != nil {
		order.CouponID = &coupon.ID
	}

	orders := repository.For(uow, repository.Orders)
	items := repository.For(uow, repository.ItemOrders)
	orderProducts := repository.For(uow, repository.OrderProducts)
	orderServices := repository.For(uow, repository.OrderServices)

	orders.Add(order)
	for _, input := range req.Items {
		item := &models.ItemOrder{Order: order, Notes: input.Notes, CreatedAt: now}
		items.Add(item)
		order.Items = append(order.Items, item)
		for _, line := range input.Products {
			op := &models.OrderProduct{
				ItemOrder: item,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				CreatedAt: now,
				Product:   resolvedProducts[line.ProductID],
			}
			orderProducts.Add(op)
			item.Products = append(item.Products, op)
		}
		for _, serviceID := range input.Services {
			os := &models.OrderService{
				ItemOrder:       item,
				TypeOfServiceID: serviceID,
				CreatedAt:       now,
				TypeOfService:   resolvedServices[serviceID],
			}
			orderServices.Add(os)
			item.Services = append(item.Services, os)
		}
	}

	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// GetUserOrder renvoie une commande si elle appartient au client.
func (s *OrderService) GetUserOrder(ctx context.Context, orderID int64, userID string) (*models.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	order, err := repository.For(uow, repository.Orders).GetWithSpec(ctx, spec.OrderByIDAndUser(orderID, userID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetUserOrderWithItems charge aussi tout le sous-arbre d'articles (reçu).
func (s *OrderService) GetUserOrderWithItems(ctx context.Context, orderID int64, userID string) (*models.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	order, err := repository.For(uow, repository.Orders).GetWithSpec(ctx, spec.OrderReceipt(orderID, userID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// OrderHistory renvoie l'historique paginé d'un client avec le total hors
// pagination.
func (s *OrderService) OrderHistory(ctx context.Context, userID string, pageIndex, pageSize int) (models.Pagination[models.OrderDto], error) {
	return s.page(ctx, spec.UserOrderHistory(userID, pageIndex, pageSize), spec.UserOrderCount(userID), pageIndex, pageSize)
}

// ActiveOrders renvoie les commandes en cours d'un client (ni payées ni
// annulées).
func (s *OrderService) ActiveOrders(ctx context.Context, userID string, pageIndex, pageSize int) (models.Pagination[models.OrderDto], error) {
	return s.page(ctx, spec.UserActiveOrders(userID, pageIndex, pageSize), spec.UserActiveOrderCount(userID), pageIndex, pageSize)
}

// AllOrders : tout l'historique, pour les écrans admin.
func (s *OrderService) AllOrders(ctx context.Context, pageIndex, pageSize int) (models.Pagination[models.OrderDto], error) {
	return s.page(ctx, spec.AllOrdersHistory(pageIndex, pageSize), spec.AllOrdersCount(), pageIndex, pageSize)
}

// OrdersByStatus : les commandes d'un statut donné, clients VIP d'abord pour
// la file d'attente admin.
func (s *OrderService) OrdersByStatus(ctx context.Context, status models.OrderStatus, pageIndex, pageSize int) (models.Pagination[models.OrderDto], error) {
	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	ents, err := orders.GetAllWithSpec(ctx, spec.OrdersByStatus(status, pageIndex, pageSize))
	if err != nil {
		return models.Pagination[models.OrderDto]{}, err
	}
	count, err := orders.Count(ctx, spec.OrdersByStatusCount(status))
	if err != nil {
		return models.Pagination[models.OrderDto]{}, err
	}

	// Tri stable : les VIP passent devant, l'ordre chronologique est
	// conservé à l'intérieur de chaque groupe.
	sort.SliceStable(ents, func(i, j int) bool {
		vi := ents[i].User != nil && ents[i].User.Role == models.RoleVip
		vj := ents[j].User != nil && ents[j].User.Role == models.RoleVip
		return vi && !vj
	})

	return models.NewPagination(pageIndex, pageSize, count, dtos(ents)), nil
}

// CancelOwn : le propriétaire peut annuler tant que la commande n'est pas
// terminée (payée ou annulée).
func (s *OrderService) CancelOwn(ctx context.Context, orderID int64, userID string) (*models.Order, error) {
	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	order, err := orders.GetWithSpec(ctx, spec.OrderByIDAndUser(orderID, userID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: la commande est déjà %s", ErrBadTransition, order.Status)
	}

	order.Status = models.StatusCancelled
	order.UpdatedAt = time.Now().UTC()
	orders.Update(order)
	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus fait avancer une commande dans son cycle de vie. Un
// AdminAssistant ne peut poser ni Paid ni Cancelled ; un admin n'annule
// qu'une commande encore Pending. Les statuts ReadyForPickup et
// OutForDelivery déclenchent une notification stockée, un push et un e-mail,
// tous best-effort après le commit.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, actor *models.User) (*models.Order, error) {
	if actor.Role == models.RoleAdminAssistant &&
		(newStatus == models.StatusPaid || newStatus == models.StatusCancelled) {
		return nil, ErrForbidden
	}

	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	order, err := orders.GetWithSpec(ctx, spec.OrderByID(orderID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: la commande est déjà %s", ErrBadTransition, order.Status)
	}
	if newStatus == models.StatusCancelled && order.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: seule une commande Pending peut être annulée par l'équipe", ErrBadTransition)
	}

	order.Status = newStatus
	order.UpdatedAt = time.Now().UTC()
	orders.Update(order)

	notify := newStatus == models.StatusReadyForPickup || newStatus == models.StatusOutForDelivery
	if notify {
		notification := &models.Notification{
			SenderID:   actor.ID,
			ReceiverID: order.UserID,
			Title:      statusTitle(newStatus),
			Message:    statusBody(newStatus, order.ID),
			Type:       models.NotifMessage,
			CreatedAt:  time.Now().UTC(),
		}
		repository.For(uow, repository.Notifications).Add(notification)
	}

	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}

	if notify {
		// Canaux externes après le commit : leur échec ne défait jamais une
		// écriture déjà validée.
		if owner, err := repository.For(uow, repository.Users).Get(ctx, order.UserID); err == nil && owner != nil {
			go utils.SendOrderStatusEmail(order, owner.Email)
			if owner.FCMToken != nil {
				go utils.SendPush(*owner.FCMToken, statusTitle(newStatus), statusBody(newStatus, order.ID))
			}
		}
	}
	return order, nil
}

// OverridePrice remplace le total d'une commande encore ouverte, arrondi au
// centime. Le prix de livraison n'est pas touché.
func (s *OrderService) OverridePrice(ctx context.Context, orderID int64, total float64) (*models.Order, error) {
	if total < 0 {
		return nil, invalidInput("le total ne peut pas être négatif")
	}

	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	order, err := orders.GetWithSpec(ctx, spec.OrderByID(orderID))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: la commande est déjà %s", ErrBadTransition, order.Status)
	}

	order.TotalPrice = Round2(total)
	order.UpdatedAt = time.Now().UTC()
	orders.Update(order)
	if err := uow.Complete(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder supprime une commande et tout son sous-arbre, dans l'ordre
// enfants puis mère, en une transaction.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID int64) error {
	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	order, err := orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	items := repository.For(uow, repository.ItemOrders)
	orderProducts := repository.For(uow, repository.OrderProducts)
	orderServices := repository.For(uow, repository.OrderServices)

	children, err := items.GetAllWithSpec(ctx, spec.ItemOrdersByOrder(orderID))
	if err != nil {
		return err
	}
	for _, item := range children {
		lines, err := orderProducts.GetAllWithSpec(ctx, spec.OrderProductsByItem(item.ID))
		if err != nil {
			return err
		}
		for _, line := range lines {
			orderProducts.Delete(line)
		}
		serviceLines, err := orderServices.GetAllWithSpec(ctx, spec.OrderServicesByItem(item.ID))
		if err != nil {
			return err
		}
		for _, line := range serviceLines {
			orderServices.Delete(line)
		}
		items.Delete(item)
	}
	orders.Delete(order)

	return uow.Complete(ctx)
}

func (s *OrderService) page(ctx context.Context, listSpec, countSpec spec.Spec, pageIndex, pageSize int) (models.Pagination[models.OrderDto], error) {
	uow := repository.NewUnitOfWork(s.db)
	orders := repository.For(uow, repository.Orders)

	ents, err := orders.GetAllWithSpec(ctx, listSpec)
	if err != nil {
		return models.Pagination[models.OrderDto]{}, err
	}
	count, err := orders.Count(ctx, countSpec)
	if err != nil {
		return models.Pagination[models.OrderDto]{}, err
	}
	return models.NewPagination(pageIndex, pageSize, count, dtos(ents)), nil
}

func dtos(ents []*models.Order) []models.OrderDto {
	out := make([]models.OrderDto, len(ents))
	for i, o := range ents {
		out[i] = models.NewOrderDto(o)
	}
	return out
}

func statusTitle(status models.OrderStatus) string {
	if status == models.StatusReadyForPickup {
		return "Votre linge est prêt 👕"
	}
	return "Votre linge est en route 🚚"
}

func statusBody(status models.OrderStatus, orderID int64) string {
	if status == models.StatusReadyForPickup {
		return fmt.Sprintf("La commande n°%d est prête, vous pouvez venir la récupérer.", orderID)
	}
	return fmt.Sprintf("La commande n°%d est en cours de livraison.", orderID)
}

package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/services"
	"lavoir_back_end/internal/utils"
)

// CreateOrder crée une commande complète : validation, tarification, puis
// persistance de l'agrégat en une transaction.
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = c.GetString("user_id")

	order, err := services.NewOrderService(database.DB).CreateOrder(c.Request.Context(), req)
	if err != nil {
		utils.LogFailedAction(c, "order.create", "order", "", err.Error())
		failOrder(c, err)
		return
	}

	utils.LogAction(c, "order.create", "order", strconv.FormatInt(order.ID, 10), nil, models.NewOrderDto(order))
	c.JSON(http.StatusCreated, gin.H{"order": models.NewOrderDto(order)})
}

// GetOrder renvoie le statut et le détail d'une commande du client.
func GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	order, err := services.NewOrderService(database.DB).GetUserOrder(c.Request.Context(), orderID, c.GetString("user_id"))
	if err != nil {
		failOrder(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": models.NewOrderDto(order)})
}

// OrderHistory : l'historique paginé du client.
func OrderHistory(c *gin.Context) {
	pageIndex, pageSize := pagination(c)
	page, err := services.NewOrderService(database.DB).OrderHistory(c.Request.Context(), c.GetString("user_id"), pageIndex, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// ActiveOrders : les commandes en cours du client.
func ActiveOrders(c *gin.Context) {
	pageIndex, pageSize := pagination(c)
	page, err := services.NewOrderService(database.DB).ActiveOrders(c.Request.Context(), c.GetString("user_id"), pageIndex, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// CancelOrder : annulation par le propriétaire, possible tant que la
// commande n'est pas payée ou déjà annulée.
func CancelOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	order, err := services.NewOrderService(database.DB).CancelOwn(c.Request.Context(), orderID, c.GetString("user_id"))
	if err != nil {
		utils.LogFailedAction(c, "order.cancel", "order", c.Param("id"), err.Error())
		failOrder(c, err)
		return
	}

	utils.LogAction(c, "order.cancel", "order", c.Param("id"), nil, string(order.Status))
	c.JSON(http.StatusOK, gin.H{"order": models.NewOrderDto(order)})
}

// Receipt imprime le reçu PDF de la commande, QR de retrait inclus.
func Receipt(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	svc := services.NewOrderService(database.DB)
	order, err := svc.GetUserOrderWithItems(ctx, orderID, c.GetString("user_id"))
	if err != nil {
		failOrder(c, err)
		return
	}

	owner := currentUser(c)
	if owner == nil {
		return
	}

	pdf, err := utils.GenerateReceiptPDF(order, owner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du reçu"})
		return
	}

	c.Header("Content-Disposition", "attachment; filename=recu_lavoir.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// failOrder traduit la taxonomie du domaine en code HTTP.
func failOrder(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
	case errors.Is(err, services.ErrCouponNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon introuvable"})
	case errors.Is(err, services.ErrCouponUnusable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coupon inutilisable (inactif ou expiré)"})
	case errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrBadTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pagination(c *gin.Context) (int, int) {
	pageIndex, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || pageIndex < 1 {
		pageIndex = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return pageIndex, pageSize
}

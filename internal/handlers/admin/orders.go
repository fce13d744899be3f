package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/services"
	"lavoir_back_end/internal/utils"
)

// ListOrders : tout l'historique, paginé, récentes d'abord.
func ListOrders(c *gin.Context) {
	pageIndex, pageSize := pagination(c)
	page, err := services.NewOrderService(database.DB).AllOrders(c.Request.Context(), pageIndex, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListOrdersByStatus : la file de travail de l'équipe, clients VIP d'abord.
func ListOrdersByStatus(c *gin.Context) {
	status, ok := models.ParseOrderStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	pageIndex, pageSize := pagination(c)
	page, err := services.NewOrderService(database.DB).OrdersByStatus(c.Request.Context(), status, pageIndex, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateOrderStatus fait avancer une commande dans son cycle de vie. Les
// restrictions de rôle (un assistant ne pose ni Paid ni Cancelled) sont
// tranchées par le service.
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := models.ParseOrderStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu"})
		return
	}

	actor := currentStaff(c)
	if actor == nil {
		return
	}

	order, err := services.NewOrderService(database.DB).UpdateStatus(c.Request.Context(), orderID, status, actor)
	if err != nil {
		utils.LogFailedAction(c, "order.status", "order", c.Param("id"), err.Error())
		fail(c, err)
		return
	}

	utils.LogAction(c, "order.status", "order", c.Param("id"), nil, string(status))
	c.JSON(http.StatusOK, gin.H{"order": models.NewOrderDto(order)})
}

// UpdateOrderPrice remplace le total d'une commande (geste commercial,
// correction de devis).
func UpdateOrderPrice(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	var input struct {
		TotalPrice *float64 `json:"total_price" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := services.NewOrderService(database.DB).OverridePrice(c.Request.Context(), orderID, *input.TotalPrice)
	if err != nil {
		utils.LogFailedAction(c, "order.price", "order", c.Param("id"), err.Error())
		fail(c, err)
		return
	}

	utils.LogAction(c, "order.price", "order", c.Param("id"), nil, order.TotalPrice)
	c.JSON(http.StatusOK, gin.H{"order": models.NewOrderDto(order)})
}

// DeleteOrder supprime une commande et tout son sous-arbre.
func DeleteOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	if err := services.NewOrderService(database.DB).DeleteOrder(c.Request.Context(), orderID); err != nil {
		utils.LogFailedAction(c, "order.delete", "order", c.Param("id"), err.Error())
		fail(c, err)
		return
	}

	utils.LogAction(c, "order.delete", "order", c.Param("id"), nil, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}

// currentStaff charge le membre de l'équipe connecté.
func currentStaff(c *gin.Context) *models.User {
	uow := repository.NewUnitOfWork(database.DB)
	user, err := repository.For(uow, repository.Users).Get(c.Request.Context(), c.GetString("user_id"))
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return nil
	}
	return user
}

// fail traduit la taxonomie du domaine en code HTTP.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
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
	pageSize, err := strconv.Atoi(c.DefaultQuery("size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageIndex, pageSize
}

package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/cache"
	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/services"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

type catalogInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required"`
}

// ================== PRODUITS ==================

func CreateProduct(c *gin.Context) {
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)

	product := &models.Product{Name: input.Name, Price: input.Price, CreatedAt: time.Now().UTC()}
	repository.For(uow, repository.Products).Add(product)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("products")
	services.IndexProduct(product)
	utils.LogAction(c, "product.create", "product", strconv.FormatInt(product.ID, 10), nil, product)
	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	products := repository.For(uow, repository.Products)

	product, err := products.Get(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	old := *product
	product.Name = input.Name
	product.Price = input.Price
	products.Update(product)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("products")
	services.IndexProduct(product)
	utils.LogAction(c, "product.update", "product", c.Param("id"), old, product)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct refuse la suppression d'un produit encore référencé par des
// lignes de commande : l'historique prime.
func DeleteProduct(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	products := repository.For(uow, repository.Products)

	product, err := products.Get(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	referenced, err := repository.For(uow, repository.OrderProducts).Count(ctx, spec.OrderProductsByProduct(productID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if referenced > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Produit référencé par des commandes, suppression refusée"})
		return
	}

	products.Delete(product)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("products")
	services.RemoveProductIndex(productID)
	utils.LogAction(c, "product.delete", "product", c.Param("id"), product, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// ================== TYPES DE SERVICE ==================

func CreateTypeOfService(c *gin.Context) {
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)

	service := &models.TypeOfService{Name: input.Name, Price: input.Price, CreatedAt: time.Now().UTC()}
	repository.For(uow, repository.TypesOfService).Add(service)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("services")
	utils.LogAction(c, "service.create", "type_of_service", strconv.FormatInt(service.ID, 10), nil, service)
	c.JSON(http.StatusCreated, service)
}

func UpdateTypeOfService(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	typesOfService := repository.For(uow, repository.TypesOfService)

	service, err := typesOfService.Get(ctx, serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if service == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type de service introuvable"})
		return
	}

	old := *service
	service.Name = input.Name
	service.Price = input.Price
	typesOfService.Update(service)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("services")
	utils.LogAction(c, "service.update", "type_of_service", c.Param("id"), old, service)
	c.JSON(http.StatusOK, service)
}

func DeleteTypeOfService(c *gin.Context) {
	serviceID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	typesOfService := repository.For(uow, repository.TypesOfService)

	service, err := typesOfService.Get(ctx, serviceID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if service == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type de service introuvable"})
		return
	}

	referenced, err := repository.For(uow, repository.OrderServices).Count(ctx, spec.OrderServicesByType(serviceID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if referenced > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Service référencé par des commandes, suppression refusée"})
		return
	}

	typesOfService.Delete(service)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("services")
	utils.LogAction(c, "service.delete", "type_of_service", c.Param("id"), service, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Type de service supprimé"})
}

// ================== TYPES DE LIVRAISON ==================

func CreateDeliveryType(c *gin.Context) {
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)

	delivery := &models.DeliveryType{Name: input.Name, Price: input.Price, CreatedAt: time.Now().UTC()}
	repository.For(uow, repository.DeliveryTypes).Add(delivery)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("deliveries")
	utils.LogAction(c, "delivery.create", "delivery_type", strconv.FormatInt(delivery.ID, 10), nil, delivery)
	c.JSON(http.StatusCreated, delivery)
}

func UpdateDeliveryType(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}
	var input catalogInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	deliveries := repository.For(uow, repository.DeliveryTypes)

	delivery, err := deliveries.Get(ctx, deliveryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if delivery == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type de livraison introuvable"})
		return
	}

	old := *delivery
	delivery.Name = input.Name
	delivery.Price = input.Price
	deliveries.Update(delivery)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateCatalog("deliveries")
	utils.LogAction(c, "delivery.update", "delivery_type", c.Param("id"), old, delivery)
	c.JSON(http.StatusOK, delivery)
}

func DeleteDeliveryType(c *gin.Context) {
	deliveryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	deliveries := repository.For(uow, repository.DeliveryTypes)

	delivery, err := deliveries.Get(ctx, deliveryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if delivery == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Type de livraison introuvable"})
		return
	}

	deliveries.Delete(delivery)
	if err := uow.Complete(ctx); err != nil {
		// RESTRICT en base : des commandes y font encore référence
		c.JSON(http.StatusConflict, gin.H{"error": "Type de livraison référencé par des commandes"})
		return
	}

	cache.InvalidateCatalog("deliveries")
	utils.LogAction(c, "delivery.delete", "delivery_type", c.Param("id"), delivery, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Type de livraison supprimé"})
}

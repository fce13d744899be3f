package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/cache"
	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/services"
	"lavoir_back_end/internal/spec"
)

// Les listes catalogue passent par Redis : elles se lisent à chaque
// création de commande et ne bougent qu'aux écritures admin.

func ListProducts(c *gin.Context) {
	listCatalog(c, "products", repository.Products, spec.AllProducts, spec.ProductCount)
}

func ListTypesOfService(c *gin.Context) {
	listCatalog(c, "services", repository.TypesOfService, spec.AllTypesOfService, spec.TypeOfServiceCount)
}

func ListDeliveryTypes(c *gin.Context) {
	listCatalog(c, "deliveries", repository.DeliveryTypes, spec.AllDeliveryTypes, spec.DeliveryTypeCount)
}

func listCatalog[T any](c *gin.Context, kind string, m *repository.Mapping[T, int64], list func(int, int) spec.Spec, count func() spec.Spec) {
	pageIndex, pageSize := pagination(c)

	var cached models.Pagination[*T]
	if cache.GetCatalogPage(kind, pageIndex, pageSize, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	repo := repository.For(uow, m)

	ents, err := repo.GetAllWithSpec(ctx, list(pageIndex, pageSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total, err := repo.Count(ctx, count())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	page := models.NewPagination(pageIndex, pageSize, total, ents)
	cache.SetCatalogPage(kind, pageIndex, pageSize, page)
	c.JSON(http.StatusOK, page)
}

// SearchProducts cherche dans Elasticsearch, et retombe sur un filtre SQL
// quand l'index n'est pas disponible.
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre q manquant"})
		return
	}

	if results, err := services.SearchProducts(query); err == nil {
		c.JSON(http.StatusOK, gin.H{"products": results})
		return
	}

	uow := repository.NewUnitOfWork(database.DB)
	ents, err := repository.For(uow, repository.Products).GetAllWithSpec(c.Request.Context(), spec.ProductSearch(query))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": ents})
}

package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

type couponInput struct {
	Name         string     `json:"name" binding:"required"`
	Rate         float64    `json:"rate" binding:"required"`
	IsPercentage bool       `json:"is_percentage"`
	IsActive     bool       `json:"is_active"`
	ExpiresAt    *time.Time `json:"expires_at"`
}

func ListCoupons(c *gin.Context) {
	pageIndex, pageSize := pagination(c)

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	coupons := repository.For(uow, repository.Coupons)

	ents, err := coupons.GetAllWithSpec(ctx, spec.AllCoupons(pageIndex, pageSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	count, err := coupons.Count(ctx, spec.CouponCount())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.NewPagination(pageIndex, pageSize, count, ents))
}

// CreateCoupon vérifie l'unicité du nom (insensible à la casse) avant
// d'écrire ; l'index unique en base tranche les écritures concurrentes.
func CreateCoupon(c *gin.Context) {
	var input couponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le taux doit être positif"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	coupons := repository.For(uow, repository.Coupons)

	existing, err := coupons.GetWithSpec(ctx, spec.CouponByName(input.Name))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un coupon porte déjà ce nom"})
		return
	}

	coupon := &models.Coupon{
		Name:         input.Name,
		Rate:         input.Rate,
		IsPercentage: input.IsPercentage,
		IsActive:     input.IsActive,
		ExpiresAt:    input.ExpiresAt,
		CreatedAt:    time.Now().UTC(),
	}
	coupons.Add(coupon)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	utils.LogAction(c, "coupon.create", "coupon", strconv.FormatInt(coupon.ID, 10), nil, coupon)
	c.JSON(http.StatusCreated, coupon)
}

func UpdateCoupon(c *gin.Context) {
	couponID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}
	var input couponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Rate <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le taux doit être positif"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	coupons := repository.For(uow, repository.Coupons)

	coupon, err := coupons.Get(ctx, couponID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if coupon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	old := *coupon
	coupon.Name = input.Name
	coupon.Rate = input.Rate
	coupon.IsPercentage = input.IsPercentage
	coupon.IsActive = input.IsActive
	coupon.ExpiresAt = input.ExpiresAt
	coupons.Update(coupon)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	utils.LogAction(c, "coupon.update", "coupon", c.Param("id"), old, coupon)
	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon : les commandes passées gardent leur coupon en SET NULL, la
// suppression est toujours permise.
func DeleteCoupon(c *gin.Context) {
	couponID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant invalide"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	coupons := repository.For(uow, repository.Coupons)

	coupon, err := coupons.Get(ctx, couponID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if coupon == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Coupon introuvable"})
		return
	}

	coupons.Delete(coupon)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.LogAction(c, "coupon.delete", "coupon", c.Param("id"), coupon, nil)
	c.JSON(http.StatusOK, gin.H{"message": "Coupon supprimé"})
}

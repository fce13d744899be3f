package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/cache"
	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

// ListUsers : tous les comptes, paginés, filtrables par rôle.
func ListUsers(c *gin.Context) {
	pageIndex, pageSize := pagination(c)

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	role := c.Query("role")
	var (
		ents  []*models.User
		count int
		err   error
	)
	if role != "" {
		ents, err = users.GetAllWithSpec(ctx, spec.UsersByRole(role, pageIndex, pageSize))
		if err == nil {
			count, err = users.Count(ctx, spec.UserCountByRole(role))
		}
	} else {
		ents, err = users.GetAllWithSpec(ctx, spec.AllUsers(pageIndex, pageSize))
		if err == nil {
			count, err = users.Count(ctx, spec.AllUserCount())
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dtos := make([]models.UserDto, len(ents))
	for i, u := range ents {
		dtos[i] = models.NewUserDto(u)
	}
	c.JSON(http.StatusOK, models.NewPagination(pageIndex, pageSize, count, dtos))
}

// GetUser : la fiche d'un compte, adresse attachée.
func GetUser(c *gin.Context) {
	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)

	sp := spec.UserWithAddress(c.Param("id"))
	user, err := repository.For(uow, repository.Users).GetWithSpec(ctx, sp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, models.NewUserDto(user))
}

// GetUserByPhone retrouve un compte par numéro de téléphone.
func GetUserByPhone(c *gin.Context) {
	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)

	sp := spec.UserByPhoneWithAddress(c.Param("phone"))
	user, err := repository.For(uow, repository.Users).GetWithSpec(ctx, sp)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}
	c.JSON(http.StatusOK, models.NewUserDto(user))
}

// DeleteUser supprime un compte. Les jetons et notifications reçues partent
// en cascade ; un compte avec des commandes ou des notifications envoyées
// reste protégé par les clés étrangères.
func DeleteUser(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de supprimer son propre compte"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	target, err := users.Get(ctx, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	users.Delete(target)
	if err := uow.Complete(ctx); err != nil {
		// RESTRICT en base : des commandes ou des notifications envoyées
		// référencent encore ce compte
		c.JSON(http.StatusConflict, gin.H{"error": "Le compte est encore référencé, suppression refusée"})
		return
	}

	cache.InvalidateUser(targetID)
	utils.LogAction(c, "user.delete", "user", targetID, models.NewUserDto(target), nil)
	c.JSON(http.StatusOK, gin.H{"message": "Compte supprimé"})
}

// SetUserRole change le rôle d'un compte : Vip, Blacklist, AdminAssistant,
// Admin, ou retour au rôle Client. Jamais sur son propre compte.
func SetUserRole(c *gin.Context) {
	var input struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Role {
	case models.RoleClient, models.RoleVip, models.RoleBlacklist, models.RoleAdminAssistant, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rôle inconnu"})
		return
	}

	targetID := c.Param("id")
	if targetID == c.GetString("user_id") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de changer son propre rôle"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	target, err := users.Get(ctx, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	oldRole := target.Role
	target.Role = input.Role
	users.Update(target)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateUser(target.ID)
	utils.LogAction(c, "user.role", "user", target.ID, oldRole, input.Role)
	c.JSON(http.StatusOK, models.NewUserDto(target))
}

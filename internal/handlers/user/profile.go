package user

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lavoir_back_end/internal/cache"
	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
)

// Me renvoie le profil du client connecté, adresse comprise, via le cache.
func Me(c *gin.Context) {
	userID := c.GetString("user_id")

	if dto := cache.GetUserFromCache(userID); dto != nil {
		c.JSON(http.StatusOK, dto)
		return
	}

	user := currentUserWithAddress(c)
	if user == nil {
		return
	}

	dto := models.NewUserDto(user)
	cache.SetUserInCache(dto)
	c.JSON(http.StatusOK, dto)
}

// UpdateProfile met à jour nom et téléphone. Un champ absent du corps reste
// inchangé ; un téléphone vide efface le numéro.
func UpdateProfile(c *gin.Context) {
	var input struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.Get(ctx, c.GetString("user_id"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	applyProfilePatch(user, input.FirstName, input.LastName, input.Phone)
	users.Update(user)

	if err := uow.Complete(ctx); err != nil {
		// Contrainte d'unicité du téléphone, entre autres
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateUser(user.ID)
	c.JSON(http.StatusOK, models.NewUserDto(user))
}

// applyProfilePatch applique les champs présents sur le compte, sans toucher
// aux champs absents. Un téléphone vide efface le numéro.
func applyProfilePatch(user *models.User, firstName, lastName, phone *string) {
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	if phone != nil {
		if *phone == "" {
			user.PhoneNumber = nil
		} else {
			user.PhoneNumber = phone
		}
	}
}

// UpsertAddress crée ou remplace l'adresse du client. L'adresse d'une
// commande passée reste figée : c'est une copie, pas une référence.
func UpsertAddress(c *gin.Context) {
	var input struct {
		Street string `json:"street" binding:"required"`
		City   string `json:"city" binding:"required"`
		Region string `json:"region" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)
	addresses := repository.For(uow, repository.Addresses)

	user, err := users.Get(ctx, c.GetString("user_id"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	if user.AddressID != nil {
		address, err := addresses.Get(ctx, *user.AddressID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if address != nil {
			address.Street = input.Street
			address.City = input.City
			address.Region = input.Region
			addresses.Update(address)
			if err := uow.Complete(ctx); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			cache.InvalidateUser(user.ID)
			c.JSON(http.StatusOK, address)
			return
		}
	}

	address := &models.Address{
		Street:    input.Street,
		City:      input.City,
		Region:    input.Region,
		CreatedAt: time.Now().UTC(),
	}
	addresses.Add(address)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// La clé de l'adresse n'existe qu'après le premier commit
	uow2 := repository.NewUnitOfWork(database.DB)
	users2 := repository.For(uow2, repository.Users)
	user.AddressID = &address.ID
	users2.Update(user)
	if err := uow2.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateUser(user.ID)
	c.JSON(http.StatusCreated, address)
}

// DeleteAddress supprime l'adresse sans toucher au compte (clé étrangère
// nullable côté users, SET NULL en base).
func DeleteAddress(c *gin.Context) {
	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)
	addresses := repository.For(uow, repository.Addresses)

	user, err := users.Get(ctx, c.GetString("user_id"))
	if err != nil || user == nil || user.AddressID == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucune adresse enregistrée"})
		return
	}

	address, err := addresses.Get(ctx, *user.AddressID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if address != nil {
		addresses.Delete(address)
	}
	user.AddressID = nil
	users.Update(user)

	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cache.InvalidateUser(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Adresse supprimée"})
}

// RegisterFCMToken enregistre le jeton push de l'appareil.
func RegisterFCMToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.Get(ctx, c.GetString("user_id"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	user.FCMToken = &input.Token
	users.Update(user)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appareil enregistré"})
}

// currentUser charge l'utilisateur connecté, 404 en cas d'absence.
func currentUser(c *gin.Context) *models.User {
	uow := repository.NewUnitOfWork(database.DB)
	user, err := repository.For(uow, repository.Users).Get(c.Request.Context(), c.GetString("user_id"))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return nil
	}
	return user
}

func currentUserWithAddress(c *gin.Context) *models.User {
	uow := repository.NewUnitOfWork(database.DB)
	user, err := repository.For(uow, repository.Users).GetWithSpec(c.Request.Context(), spec.UserWithAddress(c.GetString("user_id")))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return nil
	}
	return user
}

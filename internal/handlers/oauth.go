package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"

	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
)

type ctxKey string

const ProviderKey ctxKey = "provider"

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)
	gothic.BeginAuthHandler(c.Writer, c.Request)
}

// CallbackAuth termine le flux OAuth : l'utilisateur est retrouvé par email
// ou créé au premier passage, email déjà confirmé par le provider.
func CallbackAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	c.Request = c.Request.WithContext(
		context.WithValue(c.Request.Context(), ProviderKey, provider),
	)

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if gothUser.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "le provider n'a pas fourni d'email"})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.GetWithSpec(ctx, spec.UserByEmail(gothUser.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		user = &models.User{
			ID:             uuid.NewString(),
			Email:          gothUser.Email,
			EmailConfirmed: true,
			FirstName:      gothUser.FirstName,
			LastName:       gothUser.LastName,
			Role:           models.RoleClient,
			CreatedAt:      time.Now().UTC(),
		}
		users.Add(user)
	}
	if user.Role == models.RoleBlacklist {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte suspendu"})
		return
	}

	issueTokens(c, uow, user)
}

package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lavoir_back_end/internal/cache"
	"lavoir_back_end/internal/database"
	"lavoir_back_end/internal/models"
	"lavoir_back_end/internal/repository"
	"lavoir_back_end/internal/spec"
	"lavoir_back_end/internal/utils"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	loginCodeTTL    = 10 * time.Minute
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	existing, err := users.GetWithSpec(ctx, spec.UserByEmail(input.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hash mot de passe"})
		return
	}

	code := newLoginCode()
	expires := time.Now().UTC().Add(loginCodeTTL)
	user := &models.User{
		ID:               uuid.NewString(),
		Email:            input.Email,
		PasswordHash:     &hash,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Role:             models.RoleClient,
		VerificationCode: &code,
		CodeExpiresAt:    &expires,
		CreatedAt:        time.Now().UTC(),
	}
	if input.Phone != "" {
		user.PhoneNumber = &input.Phone
	}

	users.Add(user)
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go utils.SendVerificationCode(user.Email, code)

	c.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"message": "Compte créé, un code de confirmation vous a été envoyé par e-mail",
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loginWithPassword(c, spec.UserByEmail(input.Email), input.Password)
}

// PhoneLogin : même flux que Login, la recherche se fait par numéro.
func PhoneLogin(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	loginWithPassword(c, spec.UserByPhone(input.Phone), input.Password)
}

func loginWithPassword(c *gin.Context, lookup spec.Spec, password string) {
	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.GetWithSpec(ctx, lookup)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil || user.PasswordHash == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants incorrects"})
		return
	}

	ok, err := utils.VerifyPassword(password, *user.PasswordHash)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants incorrects"})
		return
	}
	if user.Role == models.RoleBlacklist {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte suspendu"})
		return
	}

	issueTokens(c, uow, user)
}

// ================== CODE DE CONNEXION (OTP) ==================

// RequestLoginCode envoie un code à usage unique par e-mail.
func RequestLoginCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.GetWithSpec(ctx, spec.UserByEmail(input.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	code := newLoginCode()
	expires := time.Now().UTC().Add(loginCodeTTL)
	if user == nil {
		// Premier contact : le compte est créé à la demande du code
		user = &models.User{
			ID:               uuid.NewString(),
			Email:            input.Email,
			Role:             models.RoleClient,
			VerificationCode: &code,
			CodeExpiresAt:    &expires,
			CreatedAt:        time.Now().UTC(),
		}
		users.Add(user)
	} else {
		user.VerificationCode = &code
		user.CodeExpiresAt = &expires
		users.Update(user)
	}
	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	go utils.SendVerificationCode(user.Email, code)
	c.JSON(http.StatusOK, gin.H{"message": "Un code de connexion a été envoyé"})
}

// VerifyLoginCode échange le code contre des jetons ; confirme l'email au
// premier passage.
func VerifyLoginCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	users := repository.For(uow, repository.Users)

	user, err := users.GetWithSpec(ctx, spec.UserByEmail(input.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil || user.VerificationCode == nil || *user.VerificationCode != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code invalide"})
		return
	}
	if user.CodeExpiresAt == nil || time.Now().After(*user.CodeExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Code expiré, demandez-en un nouveau"})
		return
	}
	if user.Role == models.RoleBlacklist {
		c.JSON(http.StatusForbidden, gin.H{"error": "Compte suspendu"})
		return
	}

	// Code à usage unique
	user.VerificationCode = nil
	user.CodeExpiresAt = nil
	user.EmailConfirmed = true
	users.Update(user)

	issueTokens(c, uow, user)
}

// ================== REFRESH / LOGOUT ==================

// Refresh fait tourner le refresh token : l'ancien est révoqué, un nouveau
// est frappé. Un jeton révoqué ou expiré n'est jamais réémis.
func Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	tokens := repository.For(uow, repository.RefreshTokens)

	token, err := tokens.GetWithSpec(ctx, spec.RefreshTokenByValue(input.RefreshToken))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if token == nil || !token.IsActive(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token invalide"})
		return
	}

	user, err := repository.For(uow, repository.Users).Get(ctx, token.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	now := time.Now().UTC()
	token.RevokedAt = &now
	tokens.Update(token)

	issueTokens(c, uow, user)
}

// Logout révoque le refresh token fourni.
func Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	uow := repository.NewUnitOfWork(database.DB)
	tokens := repository.For(uow, repository.RefreshTokens)

	token, err := tokens.GetWithSpec(ctx, spec.RefreshTokenByValue(input.RefreshToken))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if token != nil && token.RevokedAt == nil {
		now := time.Now().UTC()
		token.RevokedAt = &now
		tokens.Update(token)
		if err := uow.Complete(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// issueTokens frappe le couple JWT + refresh token, purge les vieux jetons
// de l'utilisateur et valide le tout en une transaction.
func issueTokens(c *gin.Context, uow *repository.UnitOfWork, user *models.User) {
	ctx := c.Request.Context()
	tokens := repository.For(uow, repository.RefreshTokens)

	// Purge des jetons expirés ou révoqués de ce compte
	stale, err := tokens.GetAllWithSpec(ctx, spec.StaleRefreshTokens(user.ID))
	if err == nil {
		for _, t := range stale {
			tokens.Delete(t)
		}
	}

	refreshValue, err := utils.GenerateRefreshToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	now := time.Now().UTC()
	tokens.Add(&models.RefreshToken{
		Token:       refreshValue,
		UserID:      user.ID,
		ExpiresAt:   now.Add(refreshTokenTTL),
		CreatedByIP: c.ClientIP(),
		CreatedAt:   now,
	})

	if err := uow.Complete(ctx); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	access, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	cache.InvalidateUser(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"token":         access,
		"refresh_token": refreshValue,
		"user":          models.NewUserDto(user),
	})
}

// newLoginCode tire un code numérique à 6 chiffres.
func newLoginCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

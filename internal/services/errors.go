package services

import (
	"errors"
	"fmt"
)

// Familles d'erreurs du domaine. Les handlers traduisent : entrée invalide
// en 400, absence en 404, transition interdite en 403/409 ; les erreurs de
// stockage remontent telles quelles du commit et finissent en 500.
var (
	ErrInvalidInput   = errors.New("requête invalide")
	ErrCouponNotFound = errors.New("coupon introuvable")
	ErrCouponUnusable = errors.New("coupon inutilisable (inactif ou expiré)")
	ErrOrderNotFound  = errors.New("commande introuvable")
	ErrBadTransition  = errors.New("transition de statut interdite")
	ErrForbidden      = errors.New("opération non autorisée pour ce rôle")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

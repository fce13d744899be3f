package services

import (
	"math"

	"lavoir_back_end/internal/models"
)

// Round2 arrondit au centime.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Cents convertit un montant en centimes entiers pour Stripe. L'arrondi est
// obligatoire : int64(19.99*100) tronquerait à 1998.
func Cents(x float64) int64 {
	return int64(math.Round(x * 100))
}

// Discount calcule la remise sur le sous-total des articles uniquement,
// jamais sur la livraison. Pourcentage du sous-total ou montant fixe selon
// le coupon.
func Discount(subtotal float64, coupon *models.Coupon) float64 {
	if coupon == nil {
		return 0
	}
	if coupon.IsPercentage {
		return Round2(subtotal * coupon.Rate / 100)
	}
	return coupon.Rate
}

// Total = sous-total + livraison − remise, arrondi au centime. Aucun
// plancher à zéro : une remise fixe supérieure au panier donne un total
// négatif, conservé tel quel (voir DESIGN.md).
func Total(subtotal, deliveryPrice float64, coupon *models.Coupon) float64 {
	return Round2(subtotal + deliveryPrice - Discount(subtotal, coupon))
}

package models

import "time"

// Coupon : remise en pourcentage du sous-total ou montant fixe, selon
// IsPercentage. Le nom est unique tous coupons confondus, sans tenir compte
// de la casse.
type Coupon struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Rate         float64    `json:"rate"`
	IsPercentage bool       `json:"is_percentage"`
	IsActive     bool       `json:"is_active"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Usable : un coupon inactif ou expiré existe toujours mais ne s'applique
// plus ("coupon inutilisable", distinct de "coupon introuvable").
func (c *Coupon) Usable(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if c.ExpiresAt != nil && !now.Before(*c.ExpiresAt) {
		return false
	}
	return true
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCouponUsable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-time.Minute)

	c := &Coupon{Name: "ETE10", Rate: 10, IsPercentage: true, IsActive: true}
	assert.True(t, c.Usable(now), "actif et sans expiration")

	c.ExpiresAt = &future
	assert.True(t, c.Usable(now))

	c.ExpiresAt = &past
	assert.False(t, c.Usable(now), "expiré")

	// L'expiration est exclusive : à l'instant exact, le coupon est mort
	c.ExpiresAt = &now
	assert.False(t, c.Usable(now))

	c.ExpiresAt = nil
	c.IsActive = false
	assert.False(t, c.Usable(now), "désactivé")
}

func TestRefreshTokenIsActive(t *testing.T) {
	now := time.Now()
	tok := &RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, tok.IsActive(now))

	revoked := now.Add(-time.Minute)
	tok.RevokedAt = &revoked
	assert.False(t, tok.IsActive(now), "révoqué")

	tok.RevokedAt = nil
	tok.ExpiresAt = now.Add(-time.Second)
	assert.False(t, tok.IsActive(now), "expiré")
}

func TestParseOrderStatus(t *testing.T) {
	st, ok := ParseOrderStatus("ReadyForPickup")
	assert.True(t, ok)
	assert.Equal(t, StatusReadyForPickup, st)

	_, ok = ParseOrderStatus("readyforpickup")
	assert.False(t, ok, "la casse compte")

	_, ok = ParseOrderStatus("Shipped")
	assert.False(t, ok)
}

func TestOrderStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusPaid.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal(), "Delivered attend encore le paiement")
}

func TestUserFullName(t *testing.T) {
	u := &User{Email: "marie@example.be", FirstName: "Marie", LastName: "Dupont"}
	assert.Equal(t, "Marie Dupont", u.FullName())

	u.LastName = ""
	assert.Equal(t, "Marie", u.FullName())

	u.FirstName = ""
	u.LastName = "Dupont"
	assert.Equal(t, "Dupont", u.FullName())

	u.LastName = ""
	assert.Equal(t, "marie@example.be", u.FullName(), "retombe sur l'email")
}

func TestUserIsStaff(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsStaff())
	assert.True(t, (&User{Role: RoleAdminAssistant}).IsStaff())
	assert.False(t, (&User{Role: RoleVip}).IsStaff())
	assert.False(t, (&User{Role: RoleClient}).IsStaff())
}

func TestParseNotificationType(t *testing.T) {
	nt, ok := ParseNotificationType("Image")
	assert.True(t, ok)
	assert.Equal(t, NotifImage, nt)

	_, ok = ParseNotificationType("Gif")
	assert.False(t, ok)
}

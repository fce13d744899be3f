package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lavoir_back_end/internal/models"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 37.5, Round2(37.5))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, -1.23, Round2(-1.234))
}

func TestCents(t *testing.T) {
	// 19.99×100 vaut 1998.999… en float64 : la troncature perdrait un centime
	assert.Equal(t, int64(1999), Cents(19.99))
	assert.Equal(t, int64(29), Cents(0.29))
	assert.Equal(t, int64(1435), Cents(14.35))
	assert.Equal(t, int64(3750), Cents(37.50))
	assert.Equal(t, int64(0), Cents(0))
}

func TestDiscountPercentage(t *testing.T) {
	coupon := &models.Coupon{Rate: 10, IsPercentage: true}

	// Panier type : 2 lavages à 10 € + 1 repassage à 5 €
	assert.Equal(t, 2.5, Discount(25, coupon))

	coupon.Rate = 33
	assert.Equal(t, 3.3, Discount(10, coupon))
}

func TestDiscountFlat(t *testing.T) {
	coupon := &models.Coupon{Rate: 7.5, IsPercentage: false}
	assert.Equal(t, 7.5, Discount(100, coupon))
	assert.Equal(t, 7.5, Discount(1, coupon), "le montant fixe ignore le sous-total")
}

func TestDiscountNilCoupon(t *testing.T) {
	assert.Equal(t, 0.0, Discount(25, nil))
}

func TestDiscountIgnoresDelivery(t *testing.T) {
	coupon := &models.Coupon{Rate: 10, IsPercentage: true}
	// La remise porte sur 25, pas sur 25+15 : total 25+15−2.5
	assert.Equal(t, 37.5, Total(25, 15, coupon))
}

func TestTotalWithoutCoupon(t *testing.T) {
	assert.Equal(t, 40.0, Total(25, 15, nil))
}

func TestTotalFlatCouponCanGoNegative(t *testing.T) {
	coupon := &models.Coupon{Rate: 50, IsPercentage: false}
	assert.Equal(t, -25.0, Total(20, 5, coupon))
}

func TestTotalRounding(t *testing.T) {
	coupon := &models.Coupon{Rate: 15, IsPercentage: true}
	// 9.99 × 15 % = 1.4985 → remise 1.50
	assert.Equal(t, 13.48, Total(9.99, 4.99, coupon))
}

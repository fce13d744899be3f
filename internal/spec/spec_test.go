package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere(t *testing.T) {
	c := Where("user_id = ?", "u-1")
	assert.Equal(t, "user_id = ?", c.Expr)
	assert.Equal(t, []any{"u-1"}, c.Args)
}

func TestNewCombinesClausesInOrder(t *testing.T) {
	s := New(Where("a = ?", 1), Where("b = ?", 2))
	assert.Len(t, s.Criteria, 2)
	assert.Equal(t, "a = ?", s.Criteria[0].Expr)
	assert.Equal(t, "b = ?", s.Criteria[1].Expr)
	assert.False(t, s.Paginated)
}

func TestIncludeDeduplicates(t *testing.T) {
	s := New().include("Coupon", "DeliveryType").include("Coupon")
	assert.Equal(t, []string{"Coupon", "DeliveryType"}, s.Includes)
}

func TestOrderAscDoesNotClearDesc(t *testing.T) {
	s := New().orderDesc("created_at").orderAsc("name")
	assert.Equal(t, "name", s.OrderBy)
	assert.Equal(t, "created_at", s.OrderByDesc)
}

func TestPaginateConvertsPageToWindow(t *testing.T) {
	s := New().paginate(3, 20)
	assert.True(t, s.Paginated)
	assert.Equal(t, 40, s.Skip)
	assert.Equal(t, 20, s.Take)
}

func TestPaginateFirstPage(t *testing.T) {
	s := New().paginate(1, 10)
	assert.Equal(t, 0, s.Skip)
	assert.Equal(t, 10, s.Take)
}

func TestUserOrderHistory(t *testing.T) {
	s := UserOrderHistory("u-1", 2, 10)
	assert.Len(t, s.Criteria, 1)
	assert.Equal(t, []any{"u-1"}, s.Criteria[0].Args)
	assert.Equal(t, "created_at", s.OrderByDesc)
	assert.Equal(t, []string{"Coupon", "DeliveryType"}, s.Includes)
	assert.True(t, s.Paginated)
	assert.Equal(t, 10, s.Skip)
}

func TestUserOrderCountHasNoWindow(t *testing.T) {
	s := UserOrderCount("u-1")
	assert.False(t, s.Paginated)
	assert.Empty(t, s.Includes)
}

func TestOrderByIDAndUserFiltersOnBoth(t *testing.T) {
	s := OrderByIDAndUser(42, "u-1")
	assert.Len(t, s.Criteria, 2)
	assert.Equal(t, []any{int64(42)}, s.Criteria[0].Args)
	assert.Equal(t, []any{"u-1"}, s.Criteria[1].Args)
}

func TestCouponByNameIgnoresCase(t *testing.T) {
	s := CouponByName("NOEL10")
	assert.Len(t, s.Criteria, 1)
	assert.Equal(t, "LOWER(name) = LOWER(?)", s.Criteria[0].Expr)
}

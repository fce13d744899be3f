package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lavoir_back_end/internal/spec"
)

func TestBuildSelectBare(t *testing.T) {
	query, args := buildSelect("products", "id, name, price", spec.Spec{})
	assert.Equal(t, "SELECT id, name, price FROM products", query)
	assert.Empty(t, args)
}

func TestBuildSelectClauseOrder(t *testing.T) {
	sp := spec.New(spec.Where("user_id = ?", "u-1"), spec.Where("status = ?", "Pending"))
	sp.OrderByDesc = "created_at"
	sp.Paginated = true
	sp.Skip = 10
	sp.Take = 10

	query, args := buildSelect("orders", "id", sp)
	assert.Equal(t,
		"SELECT id FROM orders WHERE user_id = $1 AND status = $2 ORDER BY created_at DESC OFFSET $3 LIMIT $4",
		query)
	assert.Equal(t, []any{"u-1", "Pending", 10, 10}, args)
}

func TestBuildSelectDescWinsOverAsc(t *testing.T) {
	sp := spec.Spec{OrderBy: "name", OrderByDesc: "created_at"}
	query, _ := buildSelect("orders", "id", sp)
	assert.Contains(t, query, "ORDER BY created_at DESC")
	assert.NotContains(t, query, "name")
}

func TestBuildSelectAscOnly(t *testing.T) {
	sp := spec.Spec{OrderBy: "name"}
	query, _ := buildSelect("products", "id", sp)
	assert.Equal(t, "SELECT id FROM products ORDER BY name ASC", query)
}

func TestBuildSelectNoWindowWithoutPaginated(t *testing.T) {
	// Skip/Take non nuls mais Paginated faux : pas de fenêtre.
	sp := spec.Spec{Skip: 10, Take: 5}
	query, args := buildSelect("orders", "id", sp)
	assert.NotContains(t, query, "OFFSET")
	assert.Empty(t, args)
}

func TestBuildSelectZeroWindow(t *testing.T) {
	// Une fenêtre (0, 0) posée est une vraie fenêtre, pas une absence.
	sp := spec.Spec{Paginated: true}
	query, args := buildSelect("orders", "id", sp)
	assert.Contains(t, query, "OFFSET $1 LIMIT $2")
	assert.Equal(t, []any{0, 0}, args)
}

func TestBuildSelectIncludesDoNotTouchRootQuery(t *testing.T) {
	with := spec.New(spec.Where("user_id = ?", "u-1"))
	with.Includes = []string{"Coupon", "Items"}
	without := spec.New(spec.Where("user_id = ?", "u-1"))

	q1, _ := buildSelect("orders", "id", with)
	q2, _ := buildSelect("orders", "id", without)
	assert.Equal(t, q2, q1)
}

func TestBuildCountWrapsWindow(t *testing.T) {
	sp := spec.New(spec.Where("status = ?", "Pending"))
	sp.Paginated = true
	sp.Take = 10
	query, args := buildCount("orders", sp)
	assert.Equal(t,
		"SELECT COUNT(*) FROM (SELECT 1 FROM orders WHERE status = $1 OFFSET $2 LIMIT $3) AS matched",
		query)
	assert.Equal(t, []any{"Pending", 0, 10}, args)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b IN ($2, $3)", rebind("a = ? AND b IN (?, ?)"))
	assert.Equal(t, "pas de marqueur", rebind("pas de marqueur"))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?, ?, ?", placeholders(3))
}

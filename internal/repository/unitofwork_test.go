package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lavoir_back_end/internal/models"
)

func TestForReturnsSameInstance(t *testing.T) {
	u := NewUnitOfWork(nil)
	r1 := For(u, Orders)
	r2 := For(u, Orders)
	assert.Same(t, r1, r2)
}

func TestForDistinctMappings(t *testing.T) {
	u := NewUnitOfWork(nil)
	orders := For(u, Orders)
	products := For(u, Products)
	require.NotNil(t, orders)
	require.NotNil(t, products)
	assert.Equal(t, 2, len(u.repos))
}

func TestWritesAreStagedNotExecuted(t *testing.T) {
	// db nil : la moindre écriture immédiate ferait paniquer. Rien ne part
	// avant Complete.
	u := NewUnitOfWork(nil)
	orders := For(u, Orders)

	o := &models.Order{UserID: "u-1", Status: models.StatusPending}
	orders.Add(o)
	orders.Update(o)
	orders.Delete(o)

	assert.Equal(t, 3, u.Pending())
	assert.Zero(t, o.ID, "la clé n'est attribuée qu'au flush")
}

func TestDoubleDeleteStagesWithoutError(t *testing.T) {
	// Supprimer deux fois la même entité ne lève rien au staging ; c'est le
	// rejeu qui détecte la ligne manquante.
	u := NewUnitOfWork(nil)
	orders := For(u, Orders)

	o := &models.Order{ID: 7}
	orders.Delete(o)
	orders.Delete(o)
	assert.Equal(t, 2, u.Pending())
}

func TestCompleteNoOpsSkipsTransaction(t *testing.T) {
	// db nil : si Complete ouvrait une transaction, ce test paniquerait.
	u := NewUnitOfWork(nil)
	assert.NoError(t, u.Complete(context.Background()))
}

func TestCompleteDrainsQueue(t *testing.T) {
	u := NewUnitOfWork(nil)
	called := 0
	u.stage(func(ctx context.Context, tx Querier) error {
		called++
		return nil
	})
	assert.Equal(t, 1, u.Pending())
	assert.Equal(t, 0, called, "rien ne s'exécute au staging")

	// Le rejeu échoue sur BeginTx (db nil) mais la file est vidée avant.
	func() {
		defer func() { recover() }()
		u.Complete(context.Background())
	}()
	assert.Equal(t, 0, u.Pending())
}

func TestInsertArgsReadNavigationAtFlushTime(t *testing.T) {
	// L'id de la mère est relue au flush via le pointeur de navigation : une
	// ligne enfant mise en attente avant l'attribution de la clé voit quand
	// même la bonne valeur.
	o := &models.Order{}
	it := &models.ItemOrder{Order: o, Notes: "repassage délicat", CreatedAt: time.Now()}

	args := ItemOrders.InsertArgs(it)
	assert.Equal(t, int64(0), args[0])

	o.ID = 99
	args = ItemOrders.InsertArgs(it)
	assert.Equal(t, int64(99), args[0])
}

func TestInsertArgsFallBackToForeignKeyField(t *testing.T) {
	it := &models.ItemOrder{OrderID: 12}
	args := ItemOrders.InsertArgs(it)
	assert.Equal(t, int64(12), args[0])

	p := &models.OrderProduct{ItemOrderID: 3, ProductID: 8, Quantity: 2}
	args = OrderProducts.InsertArgs(p)
	assert.Equal(t, int64(3), args[0])
}

func TestMappingColumnsMatchInsertArgs(t *testing.T) {
	now := time.Now()
	assert.Len(t, Orders.InsertArgs(&models.Order{CreatedAt: now, UpdatedAt: now}), len(Orders.Columns))
	assert.Len(t, Users.InsertArgs(&models.User{CreatedAt: now}), len(Users.Columns))
	assert.Len(t, Coupons.InsertArgs(&models.Coupon{CreatedAt: now}), len(Coupons.Columns))
	assert.Len(t, Notifications.InsertArgs(&models.Notification{CreatedAt: now}), len(Notifications.Columns))
	assert.Len(t, RefreshTokens.InsertArgs(&models.RefreshToken{CreatedAt: now}), len(RefreshTokens.Columns))
}

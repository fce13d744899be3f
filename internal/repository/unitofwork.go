package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type pendingOp func(ctx context.Context, tx Querier) error

// UnitOfWork regroupe les dépôts d'une requête et accumule leurs écritures.
// Rien ne part en base avant Complete ; si une opération échoue pendant le
// rejeu, toute la transaction est annulée et les opérations déjà rejouées
// sont effacées avec elle.
type UnitOfWork struct {
	db    *sql.DB
	repos map[string]any
	ops   []pendingOp
}

func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db, repos: make(map[string]any)}
}

// For renvoie le dépôt du mapping demandé, toujours la même instance pour un
// même UnitOfWork (fonction libre : les méthodes Go ne portent pas de
// paramètres de type).
func For[T any, K comparable](u *UnitOfWork, m *Mapping[T, K]) *Repository[T, K] {
	if r, ok := u.repos[m.Table]; ok {
		return r.(*Repository[T, K])
	}
	r := &Repository[T, K]{uow: u, m: m}
	u.repos[m.Table] = r
	return r
}

func (u *UnitOfWork) stage(op pendingOp) {
	u.ops = append(u.ops, op)
}

// Pending renvoie le nombre d'écritures en attente.
func (u *UnitOfWork) Pending() int {
	return len(u.ops)
}

// Complete rejoue les écritures en attente dans leur ordre de staging, dans
// une seule transaction. Au retour, qu'il soit succès ou échec, la file est
// vide et le UnitOfWork resservable.
func (u *UnitOfWork) Complete(ctx context.Context) error {
	ops := u.ops
	u.ops = nil
	if len(ops) == 0 {
		return nil
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, op := range ops {
		if err := op(ctx, tx); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"lavoir_back_end/internal/spec"
)

// ErrMissingRow signale une mise à jour ou une suppression sans ligne cible.
// L'erreur ne sort qu'au commit, pas au moment où l'opération est mise en
// attente.
var ErrMissingRow = errors.New("aucune ligne ne correspond à la clé")

// Repository expose les opérations génériques d'un type d'entité. Les
// lectures partent directement sur la connexion ; les écritures sont mises en
// attente dans le UnitOfWork et ne touchent la base qu'à Complete.
type Repository[T any, K comparable] struct {
	uow *UnitOfWork
	m   *Mapping[T, K]
}

func (r *Repository[T, K]) GetAll(ctx context.Context) ([]*T, error) {
	return r.GetAllWithSpec(ctx, spec.Spec{})
}

func (r *Repository[T, K]) GetAllWithSpec(ctx context.Context, sp spec.Spec) ([]*T, error) {
	query, args := buildSelect(r.m.Table, r.m.selectList(), sp)
	rows, err := r.uow.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", r.m.Table, err)
	}
	defer rows.Close()

	var out []*T
	for rows.Next() {
		e, err := r.m.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.m.Table, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select %s: %w", r.m.Table, err)
	}

	// Les données liées sont attachées après coup : la pagination ne compte
	// que les lignes racine, jamais les lignes jointes.
	for _, name := range sp.Includes {
		loader, ok := r.m.Loaders[name]
		if !ok {
			return nil, fmt.Errorf("include %q inconnu pour %s", name, r.m.Table)
		}
		if len(out) == 0 {
			continue
		}
		if err := loader(ctx, r.uow.db, out); err != nil {
			return nil, fmt.Errorf("include %s.%s: %w", r.m.Table, name, err)
		}
	}
	return out, nil
}

// Get renvoie (nil, nil) quand la clé n'existe pas : l'absence n'est pas une
// erreur, c'est à l'appelant de décider.
func (r *Repository[T, K]) Get(ctx context.Context, key K) (*T, error) {
	query := rebind("SELECT " + r.m.selectList() + " FROM " + r.m.Table + " WHERE id = ?")
	e, err := r.m.Scan(r.uow.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.m.Table, err)
	}
	return e, nil
}

// GetWithSpec renvoie la première entité retenue par la spécification, ou
// (nil, nil) si rien ne correspond. Sans tri posé, la première ligne n'est
// pas garantie stable.
func (r *Repository[T, K]) GetWithSpec(ctx context.Context, sp spec.Spec) (*T, error) {
	if !sp.Paginated {
		sp.Paginated = true
		sp.Skip = 0
		sp.Take = 1
	}
	ents, err := r.GetAllWithSpec(ctx, sp)
	if err != nil {
		return nil, err
	}
	if len(ents) == 0 {
		return nil, nil
	}
	return ents[0], nil
}

// Count applique le filtre et la fenêtre de pagination, jamais les includes.
func (r *Repository[T, K]) Count(ctx context.Context, sp spec.Spec) (int, error) {
	query, args := buildCount(r.m.Table, sp)
	var n int
	if err := r.uow.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.m.Table, err)
	}
	return n, nil
}

// Add met l'insertion en attente. Les arguments sont relus au flush : une
// entité enfant ajoutée avant que sa mère ait reçu son id générée voit quand
// même la bonne clé étrangère, pourvu qu'elle tienne un pointeur de
// navigation vers la mère.
func (r *Repository[T, K]) Add(e *T) {
	m := r.m
	r.uow.stage(func(ctx context.Context, tx Querier) error {
		cols := strings.Join(m.Columns, ", ")
		ph := placeholders(len(m.Columns))
		if m.AutoKey {
			query := rebind("INSERT INTO " + m.Table + " (" + cols + ") VALUES (" + ph + ") RETURNING id")
			var k K
			if err := tx.QueryRowContext(ctx, query, m.InsertArgs(e)...).Scan(&k); err != nil {
				return fmt.Errorf("insert %s: %w", m.Table, err)
			}
			m.SetKey(e, k)
			return nil
		}
		query := rebind("INSERT INTO " + m.Table + " (id, " + cols + ") VALUES (?, " + ph + ")")
		args := append([]any{m.Key(e)}, m.InsertArgs(e)...)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", m.Table, err)
		}
		return nil
	})
}

func (r *Repository[T, K]) Update(e *T) {
	m := r.m
	r.uow.stage(func(ctx context.Context, tx Querier) error {
		sets := make([]string, len(m.Columns))
		for i, c := range m.Columns {
			sets[i] = c + " = ?"
		}
		query := rebind("UPDATE " + m.Table + " SET " + strings.Join(sets, ", ") + " WHERE id = ?")
		args := append(m.InsertArgs(e), any(m.Key(e)))
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update %s: %w", m.Table, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("update %s: %w", m.Table, ErrMissingRow)
		}
		return nil
	})
}

func (r *Repository[T, K]) Delete(e *T) {
	m := r.m
	r.uow.stage(func(ctx context.Context, tx Querier) error {
		res, err := tx.ExecContext(ctx, rebind("DELETE FROM "+m.Table+" WHERE id = ?"), m.Key(e))
		if err != nil {
			return fmt.Errorf("delete %s: %w", m.Table, err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return fmt.Errorf("delete %s: %w", m.Table, ErrMissingRow)
		}
		return nil
	})
}

func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

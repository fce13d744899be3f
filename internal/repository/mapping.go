package repository

import (
	"context"
	"database/sql"
	"strings"
)

// Querier est la surface de lecture/écriture commune à *sql.DB et *sql.Tx :
// les lectures passent par la connexion, les écritures différées par la
// transaction du UnitOfWork.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner couvre *sql.Row et *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Loader attache des données liées à un lot d'entités déjà filtré et paginé
// (chargement par lot, jamais de N+1 caché derrière un accès de champ).
type Loader[T any] func(ctx context.Context, q Querier, ents []*T) error

// Mapping décrit la projection d'un type d'entité sur sa table : c'est la
// clé typée du registre de dépôts du UnitOfWork.
type Mapping[T any, K comparable] struct {
	Table   string
	Columns []string // colonnes hors clé, dans l'ordre des arguments d'insertion
	AutoKey bool     // clé générée par la base (INSERT ... RETURNING id)

	Scan       func(s Scanner) (*T, error) // scanne id puis Columns
	InsertArgs func(e *T) []any            // évalués au flush, pas au staging
	Key        func(e *T) K
	SetKey     func(e *T, k K)

	Loaders map[string]Loader[T]
}

func (m *Mapping[T, K]) selectList() string {
	return "id, " + strings.Join(m.Columns, ", ")
}

package repository

import (
	"strconv"
	"strings"

	"lavoir_back_end/internal/spec"
)

// buildSelect traduit une spécification en requête SQL Postgres. Ordre
// d'application : filtre, puis tri, puis pagination. Les includes ne touchent
// pas à la requête racine, ils sont résolus après coup sur le lot obtenu.
func buildSelect(table, columns string, sp spec.Spec) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(columns)
	b.WriteString(" FROM ")
	b.WriteString(table)
	args := appendClauses(&b, sp)
	return rebind(b.String()), args
}

// buildCount enveloppe la même requête dans un COUNT(*), fenêtre de
// pagination comprise quand elle est posée.
func buildCount(table string, sp spec.Spec) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM (SELECT 1 FROM ")
	b.WriteString(table)
	args := appendClauses(&b, sp)
	b.WriteString(") AS matched")
	return rebind(b.String()), args
}

func appendClauses(b *strings.Builder, sp spec.Spec) []any {
	var args []any
	for i, c := range sp.Criteria {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(c.Expr)
		args = append(args, c.Args...)
	}
	// Quand les deux sens de tri sont posés, le descendant l'emporte.
	switch {
	case sp.OrderByDesc != "":
		b.WriteString(" ORDER BY ")
		b.WriteString(sp.OrderByDesc)
		b.WriteString(" DESC")
	case sp.OrderBy != "":
		b.WriteString(" ORDER BY ")
		b.WriteString(sp.OrderBy)
		b.WriteString(" ASC")
	}
	if sp.Paginated {
		b.WriteString(" OFFSET ? LIMIT ?")
		args = append(args, sp.Skip, sp.Take)
	}
	return args
}

// rebind renumérote les marqueurs ? en $1..$n pour lib/pq.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package spec décrit des requêtes de lecture de façon déclarative :
// quelles lignes, dans quel ordre, combien, avec quelles données liées.
// Une Spec est une valeur construite par les fabriques nommées de ce paquet
// (voir orders.go, catalog.go, notifications.go, tokens.go) et n'est plus
// modifiée ensuite ; la construire ne touche jamais au stockage.
package spec

// Clause est un fragment de filtre paramétré. Les clauses d'une même Spec
// sont combinées par AND. Les `?` sont renumérotés par l'évaluateur.
type Clause struct {
	Expr string
	Args []any
}

// Where fabrique une clause de filtre.
func Where(expr string, args ...any) Clause {
	return Clause{Expr: expr, Args: args}
}

// Spec regroupe filtre, tri, pagination et directives include d'une requête.
//
// OrderBy et OrderByDesc peuvent tous deux être renseignés (poser l'un
// n'efface pas l'autre) : dans ce cas le tri descendant l'emporte, règle
// explicite couverte par les tests de l'évaluateur.
//
// Paginated distingue "pas de pagination demandée" d'une fenêtre (0, 0).
type Spec struct {
	Criteria    []Clause
	Includes    []string
	OrderBy     string
	OrderByDesc string
	Skip        int
	Take        int
	Paginated   bool
}

// New construit une Spec à partir de clauses de filtre.
func New(criteria ...Clause) Spec {
	return Spec{Criteria: criteria}
}

// include ajoute une directive de chargement lié, sans doublon.
func (s Spec) include(names ...string) Spec {
	for _, n := range names {
		seen := false
		for _, have := range s.Includes {
			if have == n {
				seen = true
				break
			}
		}
		if !seen {
			s.Includes = append(s.Includes, n)
		}
	}
	return s
}

func (s Spec) orderAsc(column string) Spec {
	s.OrderBy = column
	return s
}

func (s Spec) orderDesc(column string) Spec {
	s.OrderByDesc = column
	return s
}

// paginate convertit une page 1-indexée en fenêtre (skip, take).
func (s Spec) paginate(pageIndex, pageSize int) Spec {
	s.Skip = (pageIndex - 1) * pageSize
	s.Take = pageSize
	s.Paginated = true
	return s
}

package spec

// Spécifications catalogue : listes triées par nom, paginées.

func AllProducts(pageIndex, pageSize int) Spec {
	return New().orderAsc("name").paginate(pageIndex, pageSize)
}

func ProductCount() Spec { return New() }

func AllTypesOfService(pageIndex, pageSize int) Spec {
	return New().orderAsc("name").paginate(pageIndex, pageSize)
}

func TypeOfServiceCount() Spec { return New() }

func AllDeliveryTypes(pageIndex, pageSize int) Spec {
	return New().orderAsc("name").paginate(pageIndex, pageSize)
}

func DeliveryTypeCount() Spec { return New() }

// ProductSearch : repli SQL quand Elasticsearch n'est pas disponible.
func ProductSearch(query string) Spec {
	return New(Where("name ILIKE ?", "%"+query+"%")).orderAsc("name")
}

// AllCoupons : liste admin, récents d'abord.
func AllCoupons(pageIndex, pageSize int) Spec {
	return New().orderDesc("created_at").paginate(pageIndex, pageSize)
}

func CouponCount() Spec { return New() }

// CouponByName : résolution insensible à la casse — les clients connaissent
// le nom du coupon, jamais son identifiant.
func CouponByName(name string) Spec {
	return New(Where("LOWER(name) = LOWER(?)", name))
}

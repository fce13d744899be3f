package spec

// Spécifications sur les refresh tokens et les utilisateurs.

// RefreshTokenByValue : un jeton par sa valeur opaque.
func RefreshTokenByValue(token string) Spec {
	return New(Where("token = ?", token))
}

// RefreshTokensByUser : tous les jetons d'un utilisateur, les plus
// longs à vivre d'abord (réutilisation du jeton encore actif).
func RefreshTokensByUser(userID string) Spec {
	return New(Where("user_id = ?", userID)).orderDesc("expires_at")
}

// StaleRefreshTokens : jetons expirés ou révoqués d'un utilisateur,
// purgés lors d'une rotation.
func StaleRefreshTokens(userID string) Spec {
	return New(
		Where("user_id = ?", userID),
		Where("(expires_at < NOW() OR revoked_at IS NOT NULL)"),
	)
}

// UserWithAddress : le profil complet d'un utilisateur, adresse attachée.
func UserWithAddress(userID string) Spec {
	return New(Where("id = ?", userID)).include("Address")
}

// UserByEmail, UserByPhone : résolutions d'identité.
func UserByEmail(email string) Spec {
	return New(Where("LOWER(email) = LOWER(?)", email))
}

func UserByPhone(phone string) Spec {
	return New(Where("phone_number = ?", phone))
}

// UserByPhoneWithAddress : la fiche admin d'un compte retrouvé par numéro.
func UserByPhoneWithAddress(phone string) Spec {
	return New(Where("phone_number = ?", phone)).include("Address")
}

// UsersByRole : listing admin filtré par rôle, du plus récent au plus ancien.
func UsersByRole(role string, pageIndex, pageSize int) Spec {
	return New(Where("role = ?", role)).
		orderDesc("created_at").
		paginate(pageIndex, pageSize)
}

func UserCountByRole(role string) Spec {
	return New(Where("role = ?", role))
}

// AllUsers : listing admin complet, paginé, avec adresse attachée.
func AllUsers(pageIndex, pageSize int) Spec {
	return New().include("Address").orderDesc("created_at").paginate(pageIndex, pageSize)
}

func AllUserCount() Spec { return New() }

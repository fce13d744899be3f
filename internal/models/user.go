package models

import "time"

type User struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	EmailConfirmed bool       `json:"email_confirmed"`
	PhoneNumber    *string    `json:"phone_number,omitempty"`
	PasswordHash   *string    `json:"-"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Role           string     `json:"role"`
	AddressID      *int64     `json:"address_id,omitempty"`
	Address        *Address   `json:"address,omitempty"`
	// Code de vérification à usage unique (connexion par email)
	VerificationCode *string    `json:"-"`
	CodeExpiresAt    *time.Time `json:"-"`
	// Jeton FCM de l'appareil pour les notifications push
	FCMToken  *string   `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName retombe sur l'email quand le client n'a pas renseigné son nom.
func (u *User) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAdminAssistant
}

// Address appartient à un seul utilisateur ; elle peut être supprimée sans
// supprimer l'utilisateur (clé étrangère nullable côté users).
type Address struct {
	ID        int64     `json:"id"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	CreatedAt time.Time `json:"created_at"`
}

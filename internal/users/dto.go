package users

import "strings"

// User is the persisted account record. Senha holds the password in the
// configured stored form.
type User struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
	Senha    string `json:"senha"`
}

// UserDTO is the transport shape that omits the password.
type UserDTO struct {
	ID       string `json:"id"`
	Nome     string `json:"nome"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

func FromUser(u *User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:       u.ID,
		Nome:     u.Nome,
		Telefone: u.Telefone,
		Email:    u.Email,
	}
}

// Registration holds the data a new account is created from.
type Registration struct {
	Nome     string `json:"nome" validate:"required"`
	Telefone string `json:"telefone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Senha    string `json:"senha" validate:"required,min=6"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	Nome     *string `json:"nome,omitempty"`
	Telefone *string `json:"telefone,omitempty"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Senha    *string `json:"senha,omitempty" validate:"omitempty,min=6"`
}

// IsEmpty reports whether the update changes nothing.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Nome == nil && p.Telefone == nil && p.Email == nil && p.Senha == nil
}

// SameEmail compares addresses the way logins do.
func SameEmail(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// DemoUsers returns the accounts available before anyone registers.
func DemoUsers() []User {
	return []User{
		{
			ID:       "1",
			Nome:     "Maria Silva",
			Telefone: "(11) 98765-4321",
			Email:    "maria@email.com",
			Senha:    "123456",
		},
		{
			ID:       "2",
			Nome:     "João Santos",
			Telefone: "(11) 99999-8888",
			Email:    "joao@email.com",
			Senha:    "123456",
		},
	}
}

package auth

import (
	"github.com/JaimeStill/ems-backend/pkg/query"
	"github.com/JaimeStill/ems-backend/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("full_name", "FullName").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanUser(s repository.Scanner) (User, error) {
	var u User
	err := s.Scan(&u.ID, &u.Email, &u.FullName, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

type credential struct {
	user User
	hash string
}

func scanCredential(s repository.Scanner) (credential, error) {
	var c credential
	err := s.Scan(&c.user.ID, &c.user.Email, &c.user.FullName, &c.user.CreatedAt, &c.user.UpdatedAt, &c.hash)
	return c, err
}

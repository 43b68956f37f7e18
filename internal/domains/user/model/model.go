package model

import "lodge/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID      = "id"
	FieldEmail   = "email"
	FieldName    = "name"
	FieldRole    = "role"
	FieldDeleted = "deleted"
)

type User struct {
	ID      string `db:"id"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Role    string `db:"role"`
	Deleted bool   `db:"deleted"`
	model.Metadata
}

package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID      = "id"
	FieldName    = "name"
	FieldFloor   = "floor"
	FieldPrice   = "price"
	FieldNote    = "note"
	FieldDeleted = "deleted"
)

type Room struct {
	ID      string  `db:"id"`
	Name    string  `db:"name"`
	Floor   int     `db:"floor"`
	Price   float64 `db:"price"`
	Note    string  `db:"note"`
	Deleted bool    `db:"deleted"`
	model.Metadata
}

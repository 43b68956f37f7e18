package dto

import (
	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Floor int     `json:"floor" validate:"omitempty"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Note  string  `json:"note"  validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	return model.Room{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Floor: c.Floor,
		Price: c.Price,
		Note:  c.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name  string  `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Floor int     `db:"floor" json:"floor" validate:"omitempty"`
	Price float64 `db:"price" json:"price" validate:"omitempty,gt=0"`
	Note  string  `db:"note"  json:"note"  validate:"omitempty"`
}

type RoomResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Floor int     `json:"floor"`
	Price float64 `json:"price"`
	Note  string  `json:"note"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Floor = model.Floor
	r.Price = model.Price
	r.Note = model.Note
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}

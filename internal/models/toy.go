package models

import "toyshop/internal/validation"

// ToyType is the category code of a toy.
type ToyType int

const (
	ToyTypePlush ToyType = iota + 1
	ToyTypeAction
	ToyTypeEducational
	ToyTypeBoard
)

// Toy represents a sellable item in the store. Toys are only built through
// ToyFromCommand, so every persisted record has passed validation; IsActive
// is owned by the server and never taken from the command.
type Toy struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string  `json:"name" gorm:"type:varchar(100)"`
	Description string  `json:"description" gorm:"type:varchar(300)"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"isActive"`
	TypeToy     ToyType `json:"typeToy"`
}

// ToyCommand is the unvalidated write shape of a toy. The id is accepted in
// the body but ignored: creates generate a fresh one and updates use the
// path id.
type ToyCommand struct {
	ID          string   `json:"id" validate:"omitempty,uuid"`
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=300"`
	Price       *float64 `json:"price" validate:"required,gte=1,lte=9999"`
	TypeToy     ToyType  `json:"typeToy" validate:"required,oneof=1 2 3 4"`
}

// ToyFromCommand validates the command and builds the toy to persist under
// id. Returns the field violations when the command is invalid.
func ToyFromCommand(id string, cmd ToyCommand) (*Toy, validation.Errors) {
	if errs := validation.Struct(cmd); errs != nil {
		return nil, errs
	}
	return &Toy{
		ID:          id,
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       *cmd.Price,
		IsActive:    true,
		TypeToy:     cmd.TypeToy,
	}, nil
}

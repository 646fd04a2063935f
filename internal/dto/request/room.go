package request

type CreateRoomRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Capacity int     `json:"capacity" validate:"required,min=1"`
}

type UpdateRoomRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Location *string `json:"location,omitempty" validate:"omitempty,max=200"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active,omitempty"`
}

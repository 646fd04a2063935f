package entity

type Room struct {
	Base
	Name     string  `db:"name"`
	Location *string `db:"location"`
	Capacity int     `db:"capacity"`
	IsActive bool    `db:"is_active"`
}

package model

import "time"

const DefaultAvatarURL = "https://ui-avatars.com/api/?name=Client&background=007BFF&color=fff"

type Testimonial struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position,omitempty"`
	Company     string    `json:"company,omitempty"`
	Review      string    `json:"review"`
	Rating      int       `json:"rating"`
	Avatar      string    `json:"avatar"`
	ServiceUsed string    `json:"serviceUsed,omitempty"`
	Approved    bool      `json:"approved"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

package customer

import "time"

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Area      *string   `json:"area,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Area      *string `json:"area"`
	Address   *string `json:"address"`
	CreatedBy string  `json:"-"`
}

type UpdateInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Area    *string `json:"area"`
	Address *string `json:"address"`
}

type ListQuery struct {
	Area   *string
	Limit  int
	Offset int
}

package models

// LinkedAccount is a marketplace seller cabinet ("WB lk") linked to the
// dashboard. Owners create it; access can be shared with other users.
type LinkedAccount struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Token       string  `json:"token"`
	Number      *int64  `json:"number,omitempty"`
	Cookie      *string `json:"cookie,omitempty"`
	AuthorizeV3 *string `json:"authorizev3,omitempty"`
	INN         *int64  `json:"inn,omitempty"`
	TgID        *int64  `json:"tg_id,omitempty"`
	OwnerID     int64   `json:"owner_id"`
	IsOwner     bool    `json:"is_owner"`
}

// AccountInput is the create-account form.
type AccountInput struct {
	Name        string  `json:"name"`
	Token       string  `json:"token"`
	Number      *int64  `json:"number,omitempty"`
	Cookie      *string `json:"cookie,omitempty"`
	AuthorizeV3 *string `json:"authorizev3,omitempty"`
	INN         *int64  `json:"inn,omitempty"`
	TgID        *int64  `json:"tg_id,omitempty"`
}

package models

import "time"

// LinkedAccount is a seller cabinet (table wb_lks). IsOwner is computed for
// the requesting user.
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

// Grantee is a row of wb_lk_access joined with its user.
type Grantee struct {
	ID       int64     `json:"id"`
	Nickname string    `json:"nickname"`
	Email    string    `json:"email"`
	IsOwner  bool      `json:"is_owner"`
	Granted  time.Time `json:"granted_at"`
}

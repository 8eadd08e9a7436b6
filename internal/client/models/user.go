// Package models defines the records the dashboard client exchanges with
// the API and keeps in its session.
package models

import "time"

// User is the authenticated seller. Fields the API sends but this struct
// does not declare are dropped on decode.
type User struct {
	ID        int64           `json:"id"`
	Nickname  string          `json:"nickname"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	WbLks     []LinkedAccount `json:"wb_lks"`
}

// HasID reports whether the record carries a server identifier. Login
// responses without one are stored as-is instead of being refreshed from
// the profile endpoint.
func (u User) HasID() bool { return u.ID != 0 }

// Account returns the linked account with the given id.
func (u User) Account(id int64) (LinkedAccount, bool) {
	for _, a := range u.WbLks {
		if a.ID == id {
			return a, true
		}
	}
	return LinkedAccount{}, false
}

// AccountIDs lists the linked account ids in profile order.
func (u User) AccountIDs() []int64 {
	ids := make([]int64, 0, len(u.WbLks))
	for _, a := range u.WbLks {
		ids = append(ids, a.ID)
	}
	return ids
}

// Grantee is a user who can see a shared linked account.
type Grantee struct {
	ID       int64     `json:"id"`
	Nickname string    `json:"nickname"`
	Email    string    `json:"email"`
	IsOwner  bool      `json:"is_owner"`
	Granted  time.Time `json:"granted_at"`
}

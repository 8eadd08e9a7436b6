// Package httpapi is the dashboard's JSON API: registration and login, the
// user profile, linked-account management and the analytics endpoints.
// Errors are returned as {"detail": "..."} like the FastAPI service the
// dashboard was first written against.
package httpapi

package common

// UserIDHeaderName carries the caller's user id on linked-account and
// profile requests.
const UserIDHeaderName = "X-User-ID"

// AuthorizationHeaderName carries the bearer access token issued at login.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed by the server on every response.
const RequestIDHeaderName = "X-Request-ID"

// DateLayout is the wire format of calendar dates (date_from, date_to).
const DateLayout = "2006-01-02"

// AccountsParam is the query parameter that scopes analytics requests to
// the selected linked accounts.
const AccountsParam = "wb_lk_ids"

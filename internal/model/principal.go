package model

// Principal is the authenticated caller extracted from a bearer token.
type Principal struct {
	UserID string
	Role   string
}

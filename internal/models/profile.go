package models

// Profile is the pseudonymous owner of all top-level aggregates. It is
// resolved from an opaque token by the router middleware; nothing else about
// the caller is stored.
type Profile struct {
	Model
	Token string `json:"-" gorm:"uniqueIndex"`
}

package model

// UnsetPasswordHash is the sentinel stored while no admin password exists.
const UnsetPasswordHash = " "

// Credential is the admin credential state. The zero value means Unset.
type Credential struct {
	Hash string
}

// IsSet reports whether a real password hash is stored. The empty string
// counts as unset so the zero Credential reads as Unset; SetCredential
// refuses to store it.
func (c Credential) IsSet() bool {
	return c.Hash != "" && c.Hash != UnsetPasswordHash
}

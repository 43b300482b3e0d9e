package models

import "time"

// UserAccount is one of the co-investor accounts. Auth and identity only;
// the username doubles as the Owner name on ledger records.
type UserAccount struct {
	Username     string    `json:"username"`
	DisplayName  string    `json:"display_name,omitempty"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

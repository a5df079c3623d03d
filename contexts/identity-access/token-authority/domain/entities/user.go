package entities

// User is the directory view of a principal consumed by token issuance.
// The user directory itself is an external collaborator.
type User struct {
	ID        string `json:"user_id"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IsRoot    bool   `json:"is_root"`
	IsActive  bool   `json:"is_active"`
}

package account

// RegisterRequest carries the multipart registration form. Avatar is
// mandatory, cover is optional.
type RegisterRequest struct {
	FullName string
	Username string
	Email    string
	Password string
	Avatar   []byte
	Cover    []byte
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email" binding:"omitempty,email"`
}

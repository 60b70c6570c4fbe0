package domain

// RegisterRequest is the JSON body sent to the auth service.
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	InviteToken string `json:"inviteToken"`
}

// RegisterResponse is a transport-level success. The body is not inspected.
type RegisterResponse struct {
	Status int
}

// Accepted reports whether the status counts as a completed registration.
func (r RegisterResponse) Accepted() bool {
	return r.Status == 200 || r.Status == 201
}

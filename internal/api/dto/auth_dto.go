package dto

// AuthRequest is the payload for login and registration.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthResponse is the uniform envelope for auth endpoints. The same shape,
// with success=false, is used for every rejection the service emits.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Role     string `json:"role,omitempty"`
	Username string `json:"username,omitempty"`
}

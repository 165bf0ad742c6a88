package dto

// StaffSessionRequest carries the shared staff key.
type StaffSessionRequest struct {
	Key string `json:"key"`
}

// StaffSessionResponse returns the issued session token.
type StaffSessionResponse struct {
	Token string `json:"token"`
}

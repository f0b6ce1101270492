package handlers

// HealthResponse is the body of the liveness probe.
type HealthResponse struct {
	Success string `json:"success"`
}

// ReadyResponse reports whether the database answered a ping.
type ReadyResponse struct {
	Success  string `json:"success"`
	Database string `json:"database"`
}

// LoginResponse wraps the consent URL returned by the login endpoint.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

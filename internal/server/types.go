package server

// ConnectRequest is the body of POST /api/connect.
type ConnectRequest struct {
	ConnectionString string `json:"connectionString"`
}

// ConnectResponse reports the connect outcome.
type ConnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// QueryRequest is the body of POST /api/query. A missing limit means the
// default row cap; zero disables it.
type QueryRequest struct {
	Database string `json:"database"`
	Query    string `json:"query"`
	Limit    *int   `json:"limit"`
}

// ErrorResponse carries the underlying failure message verbatim.
type ErrorResponse struct {
	Error string `json:"error"`
}

package github

// userResponse is the subset of GET /users/{handle} we read.
type userResponse struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

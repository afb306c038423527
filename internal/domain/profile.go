package domain

// Identifiable is the projection of a user or group used for label lookup
// and assignment selection. The client never mutates these.
type Identifiable struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the signed-in user's profile, fetched once per session.
type UserProfile struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Name     string   `json:"name"`
	Groups   []string `json:"groups"`
}

// FindName resolves an id to its display name within a user or group list.
// Returns the empty string when the id is unknown.
func FindName(items []Identifiable, id int64) string {
	for _, item := range items {
		if item.ID == id {
			return item.Name
		}
	}
	return ""
}

package models

// Album is a titled collection of photos owned by one user.
type Album struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	EventDate Date   `json:"eventDate"`
	CreatedAt Date   `json:"createdAt"`
}

// OwnedBy reports whether the album belongs to the given user.
func (a *Album) OwnedBy(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}

package models

// Share maps a token to an album for the window [CreatedAt, ExpiresAt].
type Share struct {
	ID        string `json:"id,omitempty"`
	AlbumID   string `json:"albumId"`
	Token     string `json:"token"`
	CreatedAt Date   `json:"createdAt"`
	ExpiresAt Date   `json:"expiresAt"`
}

// ExpiredOn reports whether the share is past its window on the given day.
// A share is still valid on its ExpiresAt date.
func (s *Share) ExpiredOn(today Date) bool {
	return s.ExpiresAt.Before(today)
}

// ShareWithStatus is a share annotated for the album owner's listing.
type ShareWithStatus struct {
	Share
	URL     string
	Expired bool
}

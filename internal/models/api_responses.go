package models

// IssuedShareResponse is returned by the JSON API for a generated or listed
// share link.
type IssuedShareResponse struct {
	URL       string `json:"url"`
	Token     string `json:"token"`
	AlbumID   string `json:"albumId"`
	CreatedAt Date   `json:"createdAt"`
	ExpiresAt Date   `json:"expiresAt"`
	Expired   bool   `json:"expired"`
}

// SharedAlbumResponse is the JSON form of a resolved share.
type SharedAlbumResponse struct {
	Album  Album   `json:"album"`
	Photos []Photo `json:"photos"`
}

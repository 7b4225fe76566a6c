package models

// Photo references an image by URL. The URL is opaque; photo bytes are never
// stored in the record store.
type Photo struct {
	ID         string `json:"id,omitempty"`
	AlbumID    string `json:"albumId"`
	URL        string `json:"url"`
	Caption    string `json:"caption,omitempty"`
	UploadedAt Date   `json:"uploadedAt"`
}

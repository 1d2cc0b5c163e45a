package model

// Track is one playable entry of a playlist.
type Track struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist is the normalized form of a CMS playlist record. Tracks only ever
// contains playable entries; url-less tracks are dropped during normalization.
type Playlist struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"imageUrl"`
	Tracks   []Track `json:"tracks"`
}

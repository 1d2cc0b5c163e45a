package model

import "time"

// Sermon is the normalized form of a CMS post. Title and Content keep the raw
// markup from the source for rich rendering; Excerpt has tags stripped.
type Sermon struct {
	ID         SermonID `json:"id"`
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	AudioURL   string   `json:"audioUrl"`
	ImageURL   string   `json:"imageUrl"`
	Categories []string `json:"categories"`
}

// Playable reports whether the sermon has an audio source.
func (s *Sermon) Playable() bool {
	return s.AudioURL != ""
}

// SermonFromTrack synthesizes a virtual sermon from a playlist track so the
// same playback and bookmark surfaces can address both real posts and tracks.
// The playlist title becomes the single category, matching how album context
// is carried into listening reports.
func SermonFromTrack(track Track, playlist *Playlist, now time.Time) Sermon {
	return Sermon{
		ID:         TrackID(track.URL),
		Title:      track.Title,
		Date:       now.UTC().Format(time.RFC3339),
		AudioURL:   track.URL,
		ImageURL:   playlist.ImageURL,
		Categories: []string{playlist.Title},
	}
}

package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserAggregateSerializedShape(t *testing.T) {
	data, err := json.Marshal(NewUserAggregate())
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"streak":0,"bookmarks":[],"listeningStats":{"totalSeconds":0,"history":[]}}`,
		string(data))
}

func TestNormalizeFillsMissingCollections(t *testing.T) {
	var user UserAggregate
	require.NoError(t, json.Unmarshal([]byte(`{"streak": 2}`), &user))

	user.Normalize()

	assert.NotNil(t, user.Bookmarks)
	assert.NotNil(t, user.ListeningStats.History)
	assert.Equal(t, 2, user.Streak)
}

func TestCloneDoesNotShareSlices(t *testing.T) {
	user := NewUserAggregate()
	user.Streak = 3
	user.Bookmarks = []SermonID{PostID(1)}
	user.ListeningStats.History = []ListeningEvent{{SermonID: PostID(1), Duration: 30}}

	clone := user.Clone()
	clone.Bookmarks[0] = TrackID("changed.mp3")
	clone.ListeningStats.History[0].Duration = 999

	assert.Equal(t, PostID(1), user.Bookmarks[0])
	assert.Equal(t, int64(30), user.ListeningStats.History[0].Duration)
	assert.Equal(t, 3, clone.Streak)
}

func TestSermonFromTrack(t *testing.T) {
	playlist := &Playlist{
		ID:       4,
		Title:    "Morning Series",
		ImageURL: "https://cdn.example.org/cover.jpg",
	}
	track := Track{Title: "Opening", URL: "https://cdn.example.org/opening.mp3"}
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	sermon := SermonFromTrack(track, playlist, now)

	assert.Equal(t, TrackID(track.URL), sermon.ID)
	assert.Equal(t, "Opening", sermon.Title)
	assert.Equal(t, track.URL, sermon.AudioURL)
	assert.Equal(t, playlist.ImageURL, sermon.ImageURL)
	// The playlist title rides along as the album context.
	assert.Equal(t, []string{"Morning Series"}, sermon.Categories)
	assert.Equal(t, "2024-03-01T10:00:00Z", sermon.Date)
	assert.True(t, sermon.Playable())
}

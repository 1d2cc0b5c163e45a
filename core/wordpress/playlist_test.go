package wordpress

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gracefm/model"
)

func decodePlaylist(t *testing.T, raw string) RawPlaylist {
	t.Helper()
	var p RawPlaylist
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return p
}

func TestNormalizePlaylistTracklistAsJSONString(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 7,
		"title": {"rendered": "Morning Series"},
		"alb_tracklist": "[{\"track_mp3\":\"a.mp3\",\"track_title\":\"A\"}]"
	}`)

	playlist := NormalizePlaylist(raw)

	assert.Equal(t, int64(7), playlist.ID)
	assert.Equal(t, "Morning Series", playlist.Title)
	assert.Equal(t, []model.Track{{Title: "A", URL: "a.mp3"}}, playlist.Tracks)
}

func TestNormalizePlaylistNativeArray(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 8,
		"title": {"rendered": "Evening Series"},
		"tracks": [
			{"title": "One", "url": "https://cdn.example.org/one.mp3"},
			{"name": "Two", "file_url": "https://cdn.example.org/two.mp3"}
		]
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 2)
	assert.Equal(t, model.Track{Title: "One", URL: "https://cdn.example.org/one.mp3"}, playlist.Tracks[0])
	assert.Equal(t, model.Track{Title: "Two", URL: "https://cdn.example.org/two.mp3"}, playlist.Tracks[1])
}

func TestNormalizePlaylistMetaAliases(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 9,
		"title": {"rendered": "Meta Series"},
		"meta": {"_sonaar_tracks": "[{\"track_mp3\":\"hymn-of-grace.mp3\"}]"}
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 1)
	// Title falls back to the audio filename.
	assert.Equal(t, "hymn of grace", playlist.Tracks[0].Title)
	assert.Equal(t, "hymn-of-grace.mp3", playlist.Tracks[0].URL)
}

func TestNormalizePlaylistFirstCandidateWins(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 10,
		"title": {"rendered": "Two Fields"},
		"alb_tracklist": [{"track_title": "From alb", "track_mp3": "alb.mp3"}],
		"tracks": [{"title": "From tracks", "url": "tracks.mp3"}]
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "From alb", playlist.Tracks[0].Title)
}

func TestNormalizePlaylistUnparseableCandidateFallsThrough(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 11,
		"title": {"rendered": "Broken Field"},
		"alb_tracklist": "{not json",
		"tracks": [{"title": "Good", "url": "good.mp3"}]
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "Good", playlist.Tracks[0].Title)
}

func TestNormalizePlaylistContentFallback(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 12,
		"title": {"rendered": "Content Only"},
		"content": {"rendered": "<p><a href=\"https://cdn.example.org/sunday-sermon.mp3\">listen</a></p>"}
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "sunday sermon", playlist.Tracks[0].Title)
	assert.Equal(t, "https://cdn.example.org/sunday-sermon.mp3", playlist.Tracks[0].URL)
}

func TestNormalizePlaylistNothingResolvable(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 13,
		"title": {"rendered": "Empty"},
		"content": {"rendered": "<p>No audio here.</p>"}
	}`)

	playlist := NormalizePlaylist(raw)

	assert.Empty(t, playlist.Tracks)
	assert.NotNil(t, playlist.Tracks)
}

func TestNormalizePlaylistDropsURLLessTracks(t *testing.T) {
	raw := decodePlaylist(t, `{
		"id": 14,
		"title": {"rendered": "Partial"},
		"tracks": [
			{"title": "Playable", "url": "ok.mp3"},
			{"title": "Broken"}
		]
	}`)

	playlist := NormalizePlaylist(raw)

	require.Len(t, playlist.Tracks, 1)
	assert.Equal(t, "Playable", playlist.Tracks[0].Title)
}

func TestNormalizePlaylistImagePlaceholder(t *testing.T) {
	withImage := decodePlaylist(t, `{
		"id": 15,
		"title": {"rendered": "Pictured"},
		"_embedded": {"wp:featuredmedia": [{"source_url": "https://cdn.example.org/cover.jpg"}]}
	}`)
	assert.Equal(t, "https://cdn.example.org/cover.jpg", NormalizePlaylist(withImage).ImageURL)

	withoutImage := decodePlaylist(t, `{"id": 16, "title": {"rendered": "Plain"}}`)
	assert.Equal(t, "https://picsum.photos/seed/playlist/800/600", NormalizePlaylist(withoutImage).ImageURL)
}

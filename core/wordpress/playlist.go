package wordpress

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gracefm/logger"
	"gracefm/model"
)

// trackRecord is one loosely-shaped track entry from the CMS.
type trackRecord map[string]json.RawMessage

// trackSource names a candidate field holding the track list. Plugin
// versions disagree on where it lives, so candidates are probed in order and
// the first one that yields tracks wins; candidates are never merged.
type trackSource struct {
	name string
	meta bool
}

var trackSources = []trackSource{
	{name: "alb_tracklist"},
	{name: "alb_tracklist", meta: true},
	{name: "sonaar_tracks"},
	{name: "tracks"},
	{name: "track_list"},
	{name: "sonaar_track_list"},
	{name: "_sonaar_tracks", meta: true},
	{name: "sonaar_tracks", meta: true},
}

// Per-track alias chains, also probed in order.
var (
	trackTitleAliases = []string{"track_title", "title", "name", "stream_title"}
	trackURLAliases   = []string{"track_mp3", "url", "file_url", "audio_file", "mp3"}
)

// NormalizePlaylist maps a raw playlist record onto the domain model. Tracks
// come from the first resolvable structured field; failing that, from audio
// hyperlinks in the rendered content. Tracks without a resolvable URL are
// dropped, so the visible track count only includes playable entries.
func NormalizePlaylist(raw RawPlaylist) model.Playlist {
	records := trackRecords(&raw)
	if len(records) == 0 {
		records = recordsFromContent(raw.Content.Rendered)
	}

	tracks := make([]model.Track, 0, len(records))
	for i, rec := range records {
		if track, ok := normalizeTrack(rec, i); ok {
			tracks = append(tracks, track)
		}
	}

	return model.Playlist{
		ID:       raw.ID,
		Title:    raw.Title.Rendered,
		ImageURL: featuredImage(raw.Embedded, playlistImageSeed),
		Tracks:   tracks,
	}
}

// NormalizePlaylists maps a listing page.
func NormalizePlaylists(raws []RawPlaylist) []model.Playlist {
	playlists := make([]model.Playlist, 0, len(raws))
	for _, raw := range raws {
		playlists = append(playlists, NormalizePlaylist(raw))
	}
	return playlists
}

// trackRecords probes the candidate fields in order and returns the first
// track list that decodes to a non-empty array. A candidate that fails to
// decode just falls through to the next one.
func trackRecords(raw *RawPlaylist) []trackRecord {
	for _, src := range trackSources {
		var field json.RawMessage
		var ok bool
		if src.meta {
			field, ok = raw.MetaField(src.name)
		} else {
			field, ok = raw.Field(src.name)
		}
		if !ok || len(field) == 0 {
			continue
		}

		records, err := decodeTrackRecords(field)
		if err != nil {
			logger.Warn("unusable track field on playlist",
				logger.Int64("playlistId", raw.ID),
				logger.String("field", src.name),
				logger.ErrorField(err))
			continue
		}
		if len(records) > 0 {
			return records
		}
	}
	return nil
}

// decodeTrackRecords accepts either a native array of track-like objects or
// a JSON array serialized into a string.
func decodeTrackRecords(field json.RawMessage) ([]trackRecord, error) {
	data := bytes.TrimSpace(field)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, err
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 {
			return nil, nil
		}
	}

	if data[0] != '[' {
		return nil, fmt.Errorf("track field is neither an array nor an array-as-string")
	}

	var records []trackRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// recordsFromContent synthesizes track records from audio hyperlinks found
// in rendered content, titles derived from the filenames.
func recordsFromContent(content string) []trackRecord {
	var records []trackRecord
	for _, url := range FindAudioLinks(content) {
		records = append(records, trackRecord{
			"title": quoteJSON(TitleFromFilename(url)),
			"url":   quoteJSON(url),
		})
	}
	return records
}

// normalizeTrack resolves one raw track through the alias chains. Tracks
// without a URL are unplayable and reported as not ok.
func normalizeTrack(rec trackRecord, index int) (model.Track, bool) {
	url, _ := stringField(rec, trackURLAliases)
	if url == "" {
		return model.Track{}, false
	}

	title, ok := stringField(rec, trackTitleAliases)
	if !ok {
		if mp3, hasMP3 := stringField(rec, trackURLAliases[:1]); hasMP3 {
			title = TitleFromFilename(mp3)
		} else {
			title = fmt.Sprintf("Track %d", index+1)
		}
	}

	return model.Track{Title: title, URL: url}, true
}

// stringField returns the first alias that decodes to a non-empty string.
func stringField(rec trackRecord, aliases []string) (string, bool) {
	for _, alias := range aliases {
		raw, ok := rec[alias]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

func quoteJSON(s string) json.RawMessage {
	data, _ := json.Marshal(s)
	return data
}

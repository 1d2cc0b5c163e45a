package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gracefm/model"
)

func historyUser(totalSeconds int64, events ...model.ListeningEvent) *model.UserAggregate {
	user := model.NewUserAggregate()
	user.ListeningStats.TotalSeconds = totalSeconds
	user.ListeningStats.History = events
	return user
}

func TestComputeWrappedEmptyHistory(t *testing.T) {
	stats := ComputeWrapped(model.NewUserAggregate())

	assert.Zero(t, stats.TotalHours)
	assert.Nil(t, stats.TopSermon)
	assert.Nil(t, stats.TopAlbum)
}

func TestComputeWrappedRounding(t *testing.T) {
	// 4500 seconds is 1.25 hours, rounded to one decimal place.
	stats := ComputeWrapped(historyUser(4500))
	assert.Equal(t, 1.3, stats.TotalHours)

	stats = ComputeWrapped(historyUser(3600))
	assert.Equal(t, 1.0, stats.TotalHours)
}

func TestComputeWrappedRankings(t *testing.T) {
	user := historyUser(0,
		model.ListeningEvent{SermonID: model.PostID(1), SermonTitle: "Alpha", AlbumTitle: "Morning"},
		model.ListeningEvent{SermonID: model.PostID(2), SermonTitle: "Beta", AlbumTitle: "Evening"},
		model.ListeningEvent{SermonID: model.PostID(2), SermonTitle: "Beta", AlbumTitle: "Evening"},
		model.ListeningEvent{SermonID: model.PostID(1), SermonTitle: "Alpha"},
		model.ListeningEvent{SermonID: model.PostID(2), SermonTitle: "Beta"},
	)

	stats := ComputeWrapped(user)

	require.NotNil(t, stats.TopSermon)
	assert.Equal(t, model.RankedItem{Title: "Beta", Count: 3}, *stats.TopSermon)
	require.NotNil(t, stats.TopAlbum)
	assert.Equal(t, model.RankedItem{Title: "Evening", Count: 2}, *stats.TopAlbum)
}

func TestComputeWrappedTieGoesToFirstEncountered(t *testing.T) {
	user := historyUser(0,
		model.ListeningEvent{SermonID: model.TrackID("b.mp3"), SermonTitle: "B", AlbumTitle: "Second"},
		model.ListeningEvent{SermonID: model.TrackID("a.mp3"), SermonTitle: "A", AlbumTitle: "First"},
		model.ListeningEvent{SermonID: model.TrackID("a.mp3"), SermonTitle: "A", AlbumTitle: "First"},
		model.ListeningEvent{SermonID: model.TrackID("b.mp3"), SermonTitle: "B", AlbumTitle: "Second"},
	)

	stats := ComputeWrapped(user)

	// Both sermons and both albums count 2; the one seen first wins.
	assert.Equal(t, "B", stats.TopSermon.Title)
	assert.Equal(t, "Second", stats.TopAlbum.Title)
}

func TestComputeWrappedUsesLatestTitlePerSermon(t *testing.T) {
	user := historyUser(0,
		model.ListeningEvent{SermonID: model.PostID(1), SermonTitle: "Old Title"},
		model.ListeningEvent{SermonID: model.PostID(1), SermonTitle: "New Title"},
	)

	stats := ComputeWrapped(user)
	assert.Equal(t, "New Title", stats.TopSermon.Title)
}

func TestComputeWrappedSkipsAlbumlessEvents(t *testing.T) {
	user := historyUser(0,
		model.ListeningEvent{SermonID: model.PostID(1), SermonTitle: "Solo"},
	)

	stats := ComputeWrapped(user)
	require.NotNil(t, stats.TopSermon)
	assert.Nil(t, stats.TopAlbum)
}

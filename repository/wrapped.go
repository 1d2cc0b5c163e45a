package repository

import (
	"math"

	"gracefm/model"
)

// ComputeWrapped derives the wrapped summary from the full history. It is
// recomputed on every call; nothing is cached. Rankings count occurrences per
// sermon id and per album title; a tie goes to whichever key history
// encountered first, so the result is stable with respect to history order.
// A record with no listening history yields the zero-valued summary.
func ComputeWrapped(user *model.UserAggregate) model.WrappedStats {
	stats := model.WrappedStats{
		TotalHours: math.Round(float64(user.ListeningStats.TotalSeconds)/3600*10) / 10,
	}

	type bucket struct {
		title string
		count int
	}

	sermonCounts := make(map[model.SermonID]*bucket)
	albumCounts := make(map[string]*bucket)
	var sermonOrder []model.SermonID
	var albumOrder []string

	for _, event := range user.ListeningStats.History {
		if !event.SermonID.IsZero() {
			b, ok := sermonCounts[event.SermonID]
			if !ok {
				b = &bucket{}
				sermonCounts[event.SermonID] = b
				sermonOrder = append(sermonOrder, event.SermonID)
			}
			b.title = event.SermonTitle
			b.count++
		}
		if event.AlbumTitle != "" {
			b, ok := albumCounts[event.AlbumTitle]
			if !ok {
				b = &bucket{title: event.AlbumTitle}
				albumCounts[event.AlbumTitle] = b
				albumOrder = append(albumOrder, event.AlbumTitle)
			}
			b.count++
		}
	}

	for _, id := range sermonOrder {
		b := sermonCounts[id]
		if stats.TopSermon == nil || b.count > stats.TopSermon.Count {
			stats.TopSermon = &model.RankedItem{Title: b.title, Count: b.count}
		}
	}
	for _, title := range albumOrder {
		b := albumCounts[title]
		if stats.TopAlbum == nil || b.count > stats.TopAlbum.Count {
			stats.TopAlbum = &model.RankedItem{Title: b.title, Count: b.count}
		}
	}

	return stats
}

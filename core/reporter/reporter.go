package reporter

import (
	"math"
	"sync"
	"time"

	"gracefm/logger"
	"gracefm/model"
)

// ReportFunc delivers one listening report. It returns the delivery error so
// the drop-on-failure policy stays visible here rather than being swallowed
// inside the transport.
type ReportFunc func(payload model.ListenPayload) error

// Reporter turns continuous playback into discrete whole-second reports.
//
// It accumulates wall-clock time only while in the playing state and keeps a
// high-water mark of seconds already reported. On each tick, once the
// unreported delta clears the threshold, it emits one threshold-sized window
// of whole seconds and advances the mark by the same amount; the remainder
// stays pending for a later tick. Already reported seconds are never re-sent
// and fractional seconds never leave the accumulator.
//
// Switching sermons resets both counters: any unreported remainder below the
// threshold is dropped at switch time. A failed report is logged and not
// retried, and the mark is not rolled back, so delivery is at-most-once per
// window.
type Reporter struct {
	mu sync.Mutex

	threshold time.Duration
	interval  time.Duration
	report    ReportFunc
	now       func() time.Time

	playing     bool
	lastMark    time.Time
	accumulated float64 // seconds actually played for the current sermon
	reported    float64 // high-water mark

	current *model.Sermon
	album   string

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a reporter flushing through report. The threshold is the
// minimum unreported playback before a report is emitted; interval is the
// flush check cadence.
func New(threshold, interval time.Duration, report ReportFunc) *Reporter {
	return &Reporter{
		threshold: threshold,
		interval:  interval,
		report:    report,
		now:       time.Now,
		done:      make(chan struct{}),
	}
}

// Start launches the periodic flush loop. Stop tears it down.
func (r *Reporter) Start() {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}

// Stop ends the flush loop. Pending unreported seconds are not flushed.
func (r *Reporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
	})
}

// Switch changes the active sermon and starts a fresh reporting window.
// albumTitle carries the playlist context, empty outside a playlist.
func (r *Reporter) Switch(sermon *model.Sermon, albumTitle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = sermon
	r.album = albumTitle
	r.accumulated = 0
	r.reported = 0
	r.lastMark = r.now()
}

// Play marks playback as running.
func (r *Reporter) Play() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.playing {
		return
	}
	r.playing = true
	r.lastMark = r.now()
}

// Pause banks the elapsed playing time and stops accumulating.
func (r *Reporter) Pause() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accumulate()
	r.playing = false
}

// Tick banks elapsed playing time and flushes if the unreported delta has
// reached the threshold.
func (r *Reporter) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accumulate()
	r.flush()
}

// accumulate adds the wall-clock delta since the last mark. Caller holds mu.
func (r *Reporter) accumulate() {
	if !r.playing {
		return
	}
	now := r.now()
	r.accumulated += now.Sub(r.lastMark).Seconds()
	r.lastMark = now
}

// flush emits one report when due. Caller holds mu.
func (r *Reporter) flush() {
	if r.current == nil {
		return
	}

	pending := r.accumulated - r.reported
	if pending < r.threshold.Seconds() {
		return
	}

	// One window per tick; whatever exceeds it stays pending.
	seconds := math.Floor(r.threshold.Seconds())
	payload := model.ListenPayload{
		SermonID:        r.current.ID,
		SermonTitle:     r.current.Title,
		AlbumTitle:      r.album,
		DurationSeconds: int64(seconds),
	}

	// Advance the mark before delivery: a failed report loses its window
	// rather than being re-sent.
	r.reported += seconds

	if err := r.report(payload); err != nil {
		logger.Warn("listening report dropped",
			logger.String("sermonId", r.current.ID.String()),
			logger.Int64("seconds", payload.DurationSeconds),
			logger.ErrorField(err))
	}
}

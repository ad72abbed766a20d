package media

import "io"

// TransferProgress is a transient snapshot of one upload or download. It is
// delivered to the transfer's owner only and discarded at terminal state.
type TransferProgress struct {
	MediaID          string
	BytesTransferred int64
	TotalBytes       int64
	Fraction         float64
	Done             bool
	Err              error
}

// ProgressFunc receives progress snapshots for a single transfer.
type ProgressFunc func(TransferProgress)

// Tracker drives one transfer, emitting a snapshot unconditionally at 0% and
// at terminal state, and otherwise at every 10% of the total moved.
type Tracker struct {
	mediaID    string
	total      int64
	onProgress ProgressFunc
	moved      int64
	lastDecile int64
	finished   bool
}

// NewTracker builds a tracker for one transfer. A nil callback is valid and
// turns progress reporting off.
func NewTracker(mediaID string, total int64, fn ProgressFunc) *Tracker {
	return &Tracker{mediaID: mediaID, total: total, onProgress: fn}
}

// Start emits the initial 0% snapshot.
func (t *Tracker) Start() {
	t.emit(false, nil)
}

// Add records n transferred bytes, emitting when a 10% boundary is crossed.
func (t *Tracker) Add(n int) {
	if n <= 0 {
		return
	}
	t.moved += int64(n)
	if t.total <= 0 {
		return
	}
	decile := t.moved * 10 / t.total
	if decile > t.lastDecile && t.moved < t.total {
		t.lastDecile = decile
		t.emit(false, nil)
	}
}

// Finish emits the terminal snapshot. On failure the snapshot carries the
// error; either way no further snapshots are delivered.
func (t *Tracker) Finish(err error) {
	if t.finished {
		return
	}
	t.finished = true
	t.emit(true, err)
}

// Reader wraps r so every read advances the tracker.
func (t *Tracker) Reader(r io.Reader) io.Reader {
	return &trackedReader{r: r, t: t}
}

func (t *Tracker) emit(done bool, err error) {
	if t.onProgress == nil {
		return
	}
	frac := 0.0
	if t.total > 0 {
		frac = float64(t.moved) / float64(t.total)
		if frac > 1 {
			frac = 1
		}
	}
	if done && err == nil {
		frac = 1
	}
	t.onProgress(TransferProgress{
		MediaID:          t.mediaID,
		BytesTransferred: t.moved,
		TotalBytes:       t.total,
		Fraction:         frac,
		Done:             done,
		Err:              err,
	})
}

type trackedReader struct {
	r io.Reader
	t *Tracker
}

func (tr *trackedReader) Read(p []byte) (int, error) {
	n, err := tr.r.Read(p)
	tr.t.Add(n)
	return n, err
}

package leaderboard

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// BoardRows is how many entries the client keeps for display
	BoardRows     = 5
	submitTimeout = 10 * time.Second
)

// SubmitResult is the outcome of one Submit, carrying what was sent so
// the caller can match it to the prompt that sent it
type SubmitResult struct {
	Name  string
	Score int
	Err   error
}

// Board is the list the client displays. Offline marks the fallback set.
type Board struct {
	Entries []Entry
	Offline bool
}

// Reporter talks to a Store off the game loop. Finished games, submission
// results and fresh boards come back on channels the loop drains without
// blocking.
type Reporter struct {
	store     Store
	finished  chan int
	submitted chan SubmitResult
	boards    chan Board
	log       *logrus.Entry
}

// NewReporter creates a reporter for store
func NewReporter(store Store) *Reporter {
	return &Reporter{
		store:     store,
		finished:  make(chan int, 1),
		submitted: make(chan SubmitResult, 1),
		boards:    make(chan Board, 1),
		log:       logrus.WithField("component", "reporter"),
	}
}

// GameOver queues a finished game's score for the name prompt
func (r *Reporter) GameOver(score int) {
	select {
	case r.finished <- score:
	default:
		// the loop has not picked up the previous game yet; keep the newest
		select {
		case <-r.finished:
		default:
		}
		r.finished <- score
	}
}

// Finished delivers the score of every game that ended
func (r *Reporter) Finished() <-chan int { return r.finished }

// Submitted delivers the outcome of every Submit
func (r *Reporter) Submitted() <-chan SubmitResult { return r.submitted }

// Boards delivers the latest board after every refresh or feed frame
func (r *Reporter) Boards() <-chan Board { return r.boards }

// Submit records the score in the background and refreshes the board when
// it lands
func (r *Reporter) Submit(name string, score int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		err := r.store.Submit(ctx, name, score)
		if err != nil {
			r.log.WithError(err).WithField("score", score).Warn("score submission failed")
		} else {
			r.log.WithFields(logrus.Fields{"name": NormalizeName(name), "score": score}).Info("score submitted")
		}
		r.submitted <- SubmitResult{Name: name, Score: score, Err: err}
		r.refresh(ctx)
	}()
}

// Refresh fetches the board in the background
func (r *Reporter) Refresh() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()
		r.refresh(ctx)
	}()
}

func (r *Reporter) refresh(ctx context.Context) {
	entries, err := r.store.Top(ctx, BoardRows)
	if err != nil {
		r.log.WithError(err).Warn("leaderboard fetch failed, showing fallback scores")
		r.publish(Board{Entries: Fallback(), Offline: true})
		return
	}
	r.publish(Board{Entries: entries})
}

// Watch follows a live feed until ctx is done, publishing each snapshot.
// Whenever the feed drops the board is fetched over REST instead, so the
// fallback only shows when the store is unreachable too.
func (r *Reporter) Watch(ctx context.Context, f *Feed) {
	f.Run(ctx,
		func(s Snapshot) {
			entries := s.Entries
			if len(entries) > BoardRows {
				entries = entries[:BoardRows]
			}
			r.publish(Board{Entries: entries})
		},
		func(error) {
			rctx, cancel := context.WithTimeout(ctx, submitTimeout)
			defer cancel()
			r.refresh(rctx)
		},
	)
}

// publish replaces any board the loop has not read yet
func (r *Reporter) publish(b Board) {
	for {
		select {
		case r.boards <- b:
			return
		default:
		}
		select {
		case <-r.boards:
		default:
		}
	}
}

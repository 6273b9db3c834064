// Package stream adapts a complete reply string onto the incremental
// delivery the UI expects. The upstream call is not actually incremental;
// this is a deliberate simulation that re-chunks one finished string into a
// timed sequence of word-sized frames.
package stream

import (
	"context"
	"iter"
	"strings"
	"time"
)

// DefaultFrameDelay is the fixed cadence between content frames.
const DefaultFrameDelay = 50 * time.Millisecond

// Frame is one unit of the pseudo-stream. Content frames carry a token in
// Delta; the last content frame has Final set. After the final content frame
// exactly one sentinel frame (Sentinel set, empty Delta) closes the stream.
type Frame struct {
	ID       string
	Seq      int
	Delta    string
	Final    bool
	Sentinel bool
}

// Emitter produces pseudo-streams on a fixed cadence.
type Emitter struct {
	delay time.Duration
}

// NewEmitter creates an emitter. A non-positive delay defaults to
// DefaultFrameDelay.
func NewEmitter(delay time.Duration) *Emitter {
	if delay <= 0 {
		delay = DefaultFrameDelay
	}
	return &Emitter{delay: delay}
}

// Frames splits fullText on single spaces and yields one frame per token in
// order, each after the inter-frame delay, followed by exactly one sentinel.
// Every token except the last gets its trailing space back so the
// concatenation of all deltas reproduces fullText. An empty input yields
// only the sentinel. The sequence is finite and non-restartable; cancelling
// ctx stops it with ctx.Err().
func (e *Emitter) Frames(ctx context.Context, streamID, fullText string) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		timer := time.NewTimer(e.delay)
		defer timer.Stop()

		seq := 0
		if fullText != "" {
			tokens := strings.Split(fullText, " ")
			for i, token := range tokens {
				if i < len(tokens)-1 {
					token += " "
				}
				select {
				case <-ctx.Done():
					yield(Frame{}, ctx.Err())
					return
				case <-timer.C:
				}
				timer.Reset(e.delay)

				frame := Frame{
					ID:    streamID,
					Seq:   seq,
					Delta: token,
					Final: i == len(tokens)-1,
				}
				if !yield(frame, nil) {
					return
				}
				seq++
			}
		}

		yield(Frame{ID: streamID, Seq: seq, Sentinel: true}, nil)
	}
}

// Package event carries discrete game-event tags from the simulation to
// whoever sounds or displays them.
package event

import "fmt"

// Tag identifies one kind of game event.
type Tag uint8

const (
	Boost Tag = iota
	Damage
	Fire
	LevelGoal
	LevelStart
	Hit

	tagCount
)

var tagNames = [tagCount]string{
	Boost:      "boost",
	Damage:     "damage",
	Fire:       "fire",
	LevelGoal:  "level-goal",
	LevelStart: "level-start",
	Hit:        "hit",
}

func (t Tag) String() string {
	if t < tagCount {
		return tagNames[t]
	}
	return fmt.Sprintf("tag(%d)", uint8(t))
}

// Tags returns every known tag in declaration order.
func Tags() []Tag {
	tags := make([]Tag, tagCount)
	for i := range tags {
		tags[i] = Tag(i)
	}
	return tags
}

// Emitter accepts tags raised during a simulation step.
type Emitter interface {
	Emit(tag Tag)
}

// Sink consumes flushed tags, typically an audio player.
type Sink interface {
	Play(tag Tag)
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(Tag)

// Play calls f(tag).
func (f SinkFunc) Play(tag Tag) {
	f(tag)
}

// Queue is an insertion-ordered set of tags. Emitting a tag that is already
// queued is a no-op until the queue is drained.
type Queue struct {
	order  []Tag
	queued [tagCount]bool
}

// NewQueue returns an empty queue with room for every tag.
func NewQueue() *Queue {
	return &Queue{order: make([]Tag, 0, tagCount)}
}

// Emit adds tag unless it is already pending.
func (q *Queue) Emit(tag Tag) {
	if tag >= tagCount {
		panic(fmt.Sprintf("event: unknown tag %d", uint8(tag)))
	}
	if q.queued[tag] {
		return
	}
	q.queued[tag] = true
	q.order = append(q.order, tag)
}

// Len returns the number of pending tags.
func (q *Queue) Len() int {
	return len(q.order)
}

// Pending reports whether tag is waiting to be drained.
func (q *Queue) Pending(tag Tag) bool {
	return tag < tagCount && q.queued[tag]
}

// Drain calls fn for each pending tag in the order it was first emitted,
// then empties the queue.
func (q *Queue) Drain(fn func(Tag)) {
	for _, tag := range q.order {
		q.queued[tag] = false
		if fn != nil {
			fn(tag)
		}
	}
	q.order = q.order[:0]
}

// Flush drains the queue into sink. A nil sink just discards the tags.
func (q *Queue) Flush(sink Sink) {
	if sink == nil {
		q.Drain(nil)
		return
	}
	q.Drain(sink.Play)
}

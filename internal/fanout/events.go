// Package fanout turns primary writes (messages, comments, posts) into
// notification rows. Delivery is best-effort: nothing in this package reports
// an error back to the code that published the event.
package fanout

import "github.com/reloc/community-backend/internal/models"

// Kind names the write that triggered an event.
type Kind string

const (
	KindMessage Kind = "message"
	KindComment Kind = "comment"
	KindPost    Kind = "post"
)

// Event is published after the triggering row has been persisted.
type Event struct {
	Kind        Kind
	ActorID     string
	RecipientID string // message events only
	PostID      string
	CommentID   uint
}

// Publisher accepts events without blocking and without failing.
type Publisher interface {
	Publish(ev Event)
}

func MessageSent(m models.Message) Event {
	ev := Event{Kind: KindMessage, ActorID: m.SenderID, RecipientID: m.ReceiverID}
	if m.PostID != nil {
		ev.PostID = *m.PostID
	}
	return ev
}

func CommentAdded(c models.Comment) Event {
	return Event{Kind: KindComment, ActorID: c.UserID, PostID: c.PostID, CommentID: c.ID}
}

func PostCreated(p models.Post) Event {
	return Event{Kind: KindPost, ActorID: p.UserID, PostID: p.ID.Hex()}
}

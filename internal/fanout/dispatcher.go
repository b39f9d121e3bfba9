package fanout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/metrics"
	"github.com/reloc/community-backend/internal/models"
)

// FallbackName is shown when the acting user cannot be resolved.
const FallbackName = "Someone"

type notificationWriter interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

type userDirectory interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsers(ctx context.Context) ([]models.User, error)
}

type postLookup interface {
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
}

// Dispatcher resolves the recipients of an event and writes their notifications.
type Dispatcher struct {
	notifications notificationWriter
	users         userDirectory
	posts         postLookup
	logger        zerolog.Logger
}

func NewDispatcher(n notificationWriter, u userDirectory, p postLookup, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{notifications: n, users: u, posts: p, logger: logger}
}

// Handle processes one event. Errors are logged and counted, never returned.
func (d *Dispatcher) Handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case KindMessage:
		d.handleMessage(ctx, ev)
	case KindComment:
		d.handleComment(ctx, ev)
	case KindPost:
		d.handlePost(ctx, ev)
	default:
		d.fail(ev.Kind, "", fmt.Errorf("unknown event kind %q", ev.Kind))
	}
}

func (d *Dispatcher) handleMessage(ctx context.Context, ev Event) {
	name := d.displayName(ctx, ev.ActorID)
	d.insert(ctx, ev.Kind, &models.Notification{
		UserID:   ev.RecipientID,
		Type:     models.NotificationTypeMessage,
		Title:    "New message",
		Message:  name + " sent you a message",
		PostID:   optional(ev.PostID),
		SenderID: optional(ev.ActorID),
	})
}

func (d *Dispatcher) handleComment(ctx context.Context, ev Event) {
	post, err := d.posts.GetPostByID(ctx, ev.PostID)
	if err != nil {
		d.fail(ev.Kind, "", fmt.Errorf("resolve post %s: %w", ev.PostID, err))
		return
	}
	if post.UserID == "" || post.UserID == ev.ActorID {
		return
	}

	commentID := ev.CommentID
	name := d.displayName(ctx, ev.ActorID)
	d.insert(ctx, ev.Kind, &models.Notification{
		UserID:    post.UserID,
		Type:      models.NotificationTypeComment,
		Title:     "New comment",
		Message:   name + " commented on your post",
		PostID:    optional(ev.PostID),
		CommentID: &commentID,
		SenderID:  optional(ev.ActorID),
	})
}

// handlePost notifies every known user except the author. Each recipient is
// attempted independently.
func (d *Dispatcher) handlePost(ctx context.Context, ev Event) {
	users, err := d.users.GetUsers(ctx)
	if err != nil {
		d.fail(ev.Kind, "", fmt.Errorf("list users: %w", err))
		return
	}

	name := d.displayName(ctx, ev.ActorID)
	for _, u := range users {
		if u.ID == ev.ActorID {
			continue
		}
		d.insert(ctx, ev.Kind, &models.Notification{
			UserID:   u.ID,
			Type:     models.NotificationTypePost,
			Title:    "New post",
			Message:  name + " shared a new post",
			PostID:   optional(ev.PostID),
			SenderID: optional(ev.ActorID),
		})
	}
}

func (d *Dispatcher) insert(ctx context.Context, kind Kind, n *models.Notification) {
	if err := d.notifications.CreateNotification(ctx, n); err != nil {
		d.fail(kind, n.UserID, err)
		return
	}
	metrics.NotificationsCreated.WithLabelValues(string(kind)).Inc()
}

func (d *Dispatcher) displayName(ctx context.Context, userID string) string {
	user, err := d.users.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			d.logger.Warn().Err(err).Str("user_id", userID).Msg("display name lookup failed")
		}
		return FallbackName
	}
	if label := user.Label(); label != "" {
		return label
	}
	return FallbackName
}

func (d *Dispatcher) fail(kind Kind, recipient string, err error) {
	metrics.FanoutFailures.WithLabelValues(string(kind)).Inc()
	d.logger.Error().
		Err(err).
		Str("kind", string(kind)).
		Str("recipient", recipient).
		Msg("notification fan-out failed")
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

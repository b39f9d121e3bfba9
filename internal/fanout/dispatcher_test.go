package fanout

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reloc/community-backend/internal/models"
)

func communityUsers() *fakeUsers {
	return &fakeUsers{users: []models.User{
		{ID: "author", Name: "Ann"},
		{ID: "b", Name: "Bob"},
		{ID: "c", DisplayName: "Cee"},
	}}
}

func TestDispatcher_PostNotifiesEveryoneButAuthor(t *testing.T) {
	store := &fakeNotifications{}
	d := NewDispatcher(store, communityUsers(), fakePosts{}, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindPost, ActorID: "author", PostID: "p1"})

	assert.ElementsMatch(t, []string{"b", "c"}, store.recipients())
	for _, n := range store.created {
		assert.Equal(t, models.NotificationTypePost, n.Type)
		assert.Equal(t, "Ann shared a new post", n.Message)
		require.NotNil(t, n.PostID)
		assert.Equal(t, "p1", *n.PostID)
		assert.False(t, n.Read)
	}
}

func TestDispatcher_PostContinuesAfterRecipientFailure(t *testing.T) {
	store := &fakeNotifications{failFor: map[string]bool{"b": true}}
	d := NewDispatcher(store, communityUsers(), fakePosts{}, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindPost, ActorID: "author", PostID: "p1"})

	assert.Equal(t, []string{"c"}, store.recipients())
}

func TestDispatcher_PostUserListFailureIsSwallowed(t *testing.T) {
	store := &fakeNotifications{}
	users := communityUsers()
	users.listErr = errors.New("db down")
	d := NewDispatcher(store, users, fakePosts{}, zerolog.Nop())

	assert.NotPanics(t, func() {
		d.Handle(context.Background(), Event{Kind: KindPost, ActorID: "author", PostID: "p1"})
	})
	assert.Empty(t, store.recipients())
}

func TestDispatcher_CommentNotifiesPostAuthor(t *testing.T) {
	store := &fakeNotifications{}
	posts := fakePosts{"p1": {UserID: "author", Content: "hello"}}
	d := NewDispatcher(store, communityUsers(), posts, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindComment, ActorID: "b", PostID: "p1", CommentID: 7})

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, "author", n.UserID)
	assert.Equal(t, models.NotificationTypeComment, n.Type)
	assert.Equal(t, "Bob commented on your post", n.Message)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, uint(7), *n.CommentID)
	require.NotNil(t, n.SenderID)
	assert.Equal(t, "b", *n.SenderID)
}

func TestDispatcher_SelfCommentSuppressed(t *testing.T) {
	store := &fakeNotifications{}
	posts := fakePosts{"p1": {UserID: "author"}}
	d := NewDispatcher(store, communityUsers(), posts, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindComment, ActorID: "author", PostID: "p1", CommentID: 1})

	assert.Empty(t, store.recipients())
}

func TestDispatcher_CommentOnMissingPost(t *testing.T) {
	store := &fakeNotifications{}
	d := NewDispatcher(store, communityUsers(), fakePosts{}, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindComment, ActorID: "b", PostID: "gone", CommentID: 1})

	assert.Empty(t, store.recipients())
}

func TestDispatcher_MessageUsesFallbackName(t *testing.T) {
	store := &fakeNotifications{}
	d := NewDispatcher(store, communityUsers(), fakePosts{}, zerolog.Nop())

	d.Handle(context.Background(), Event{Kind: KindMessage, ActorID: "stranger", RecipientID: "b"})

	require.Len(t, store.created, 1)
	n := store.created[0]
	assert.Equal(t, "b", n.UserID)
	assert.Equal(t, models.NotificationTypeMessage, n.Type)
	assert.Equal(t, "Someone sent you a message", n.Message)
	assert.Nil(t, n.PostID)
}

func TestDispatcher_MessageInsertFailureIsSwallowed(t *testing.T) {
	store := &fakeNotifications{failFor: map[string]bool{"b": true}}
	d := NewDispatcher(store, communityUsers(), fakePosts{}, zerolog.Nop())

	assert.NotPanics(t, func() {
		d.Handle(context.Background(), Event{Kind: KindMessage, ActorID: "author", RecipientID: "b"})
	})
	assert.Empty(t, store.recipients())
}

func TestEventConstructors(t *testing.T) {
	post := "p9"
	ev := MessageSent(models.Message{SenderID: "a", ReceiverID: "b", PostID: &post})
	assert.Equal(t, Event{Kind: KindMessage, ActorID: "a", RecipientID: "b", PostID: "p9"}, ev)

	ev = CommentAdded(models.Comment{ID: 3, UserID: "c", PostID: "p1"})
	assert.Equal(t, Event{Kind: KindComment, ActorID: "c", PostID: "p1", CommentID: 3}, ev)
}

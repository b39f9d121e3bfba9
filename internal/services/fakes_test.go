package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reloc/community-backend/internal/apperrors"
	"github.com/reloc/community-backend/internal/fanout"
	"github.com/reloc/community-backend/internal/models"
)

var epoch = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// memMessages stamps each message one second after the previous one unless
// CreatedAt is already set.
type memMessages struct {
	rows   []models.Message
	failOn error
}

func (m *memMessages) CreateMessage(_ context.Context, msg *models.Message) error {
	if m.failOn != nil {
		return m.failOn
	}
	msg.ID = uint(len(m.rows) + 1)
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = epoch.Add(time.Duration(msg.ID) * time.Second)
	}
	m.rows = append(m.rows, *msg)
	return nil
}

func (m *memMessages) GetByParticipant(_ context.Context, uid string) ([]models.Message, error) {
	var out []models.Message
	for _, r := range m.rows {
		if r.SenderID == uid || r.ReceiverID == uid {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out, nil
}

func (m *memMessages) GetBetween(_ context.Context, a, b string, postID *string) ([]models.Message, error) {
	var out []models.Message
	for _, r := range m.rows {
		between := (r.SenderID == a && r.ReceiverID == b) || (r.SenderID == b && r.ReceiverID == a)
		if !between {
			continue
		}
		if postID != nil && (r.PostID == nil || *r.PostID != *postID) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

type memUsers struct {
	users   map[string]models.User
	lookups int
	getErr  error
}

func newMemUsers(users ...models.User) *memUsers {
	m := &memUsers{users: map[string]models.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) UpsertUser(_ context.Context, u *models.User) error {
	cur, ok := m.users[u.ID]
	if !ok {
		m.users[u.ID] = *u
		return nil
	}
	if u.Name != "" {
		cur.Name = u.Name
	}
	if u.Email != "" {
		cur.Email = u.Email
	}
	if u.PhotoURL != "" {
		cur.PhotoURL = u.PhotoURL
	}
	m.users[u.ID] = cur
	return nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.lookups++
	if m.getErr != nil {
		return nil, m.getErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	return &u, nil
}

func (m *memUsers) GetUsers(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

type memPosts struct {
	posts          map[string]models.Post
	commentIncrErr error
}

func newMemPosts() *memPosts {
	return &memPosts{posts: map[string]models.Post{}}
}

func (m *memPosts) add(userID, content string) models.Post {
	p := models.Post{ID: primitive.NewObjectID(), UserID: userID, Content: content, Type: "general"}
	m.posts[p.ID.Hex()] = p
	return p
}

func (m *memPosts) CreatePost(_ context.Context, p *models.Post) error {
	p.ID = primitive.NewObjectID()
	m.posts[p.ID.Hex()] = *p
	return nil
}

func (m *memPosts) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := m.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (m *memPosts) GetPosts(_ context.Context, postType string, skip, limit int64) ([]models.Post, error) {
	var out []models.Post
	for _, p := range m.posts {
		if postType == "" || p.Type == postType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPosts) GetPostsByIDs(_ context.Context, ids []string) ([]models.Post, error) {
	var out []models.Post
	for _, id := range ids {
		if p, ok := m.posts[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPosts) SetLikesCount(_ context.Context, id string, count int64) error {
	p, ok := m.posts[id]
	if !ok {
		return fmt.Errorf("post %s: %w", id, apperrors.ErrNotFound)
	}
	p.LikesCount = count
	m.posts[id] = p
	return nil
}

func (m *memPosts) IncrementCommentsCount(_ context.Context, id string) error {
	if m.commentIncrErr != nil {
		return m.commentIncrErr
	}
	p := m.posts[id]
	p.CommentsCount++
	m.posts[id] = p
	return nil
}

type memLikes struct {
	likes map[[2]string]bool
}

func (m *memLikes) CreateLike(_ context.Context, l *models.Like) error {
	if m.likes == nil {
		m.likes = map[[2]string]bool{}
	}
	m.likes[[2]string{l.PostID, l.UserID}] = true
	return nil
}

func (m *memLikes) DeleteLike(_ context.Context, postID, userID string) error {
	delete(m.likes, [2]string{postID, userID})
	return nil
}

func (m *memLikes) GetLikesCountByPostID(_ context.Context, postID string) (int64, error) {
	var n int64
	for k := range m.likes {
		if k[0] == postID {
			n++
		}
	}
	return n, nil
}

func (m *memLikes) HasUserLikedPost(_ context.Context, postID, userID string) (bool, error) {
	return m.likes[[2]string{postID, userID}], nil
}

type memSaved struct {
	rows []models.SavedPost
}

func (m *memSaved) SavePost(_ context.Context, sp *models.SavedPost) error {
	sp.ID = uint(len(m.rows) + 1)
	sp.CreatedAt = epoch.Add(time.Duration(sp.ID) * time.Minute)
	m.rows = append(m.rows, *sp)
	return nil
}

func (m *memSaved) UnsavePost(_ context.Context, userID, postID string) error {
	kept := m.rows[:0]
	for _, r := range m.rows {
		if r.UserID != userID || r.PostID != postID {
			kept = append(kept, r)
		}
	}
	m.rows = kept
	return nil
}

func (m *memSaved) IsPostSaved(_ context.Context, userID, postID string) (bool, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.PostID == postID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memSaved) GetSavedPostsByUser(_ context.Context, userID string) ([]models.SavedPost, error) {
	var out []models.SavedPost
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

type memComments struct {
	rows []models.Comment
}

func (m *memComments) CreateComment(_ context.Context, c *models.Comment) error {
	c.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, *c)
	return nil
}

func (m *memComments) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.rows {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) DeleteComment(_ context.Context, id uint) error {
	for i, c := range m.rows {
		if c.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("comment %d: %w", id, apperrors.ErrNotFound)
}

type memNotifications struct {
	mu   sync.Mutex
	rows []models.Notification
	fail bool
}

func (m *memNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return apperrors.Store("create notification", errors.New("connection refused"))
	}
	n.ID = uint(len(m.rows) + 1)
	m.rows = append(m.rows, *n)
	return nil
}

func (m *memNotifications) GetByUserID(_ context.Context, userID string) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memNotifications) GetUnreadCount(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.UserID == userID && !r.Read {
			n++
		}
	}
	return n, nil
}

func (m *memNotifications) MarkAsRead(_ context.Context, id uint) (*models.Notification, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].Read = true
			n := m.rows[i]
			return &n, nil
		}
	}
	return nil, fmt.Errorf("notification %d: %w", id, apperrors.ErrNotFound)
}

func (m *memNotifications) MarkAllAsRead(_ context.Context, userID string) (int64, error) {
	var n int64
	for i := range m.rows {
		if m.rows[i].UserID == userID && !m.rows[i].Read {
			m.rows[i].Read = true
			n++
		}
	}
	return n, nil
}

type memSettings struct {
	rows map[string]models.NotificationSettings
}

func (m *memSettings) GetSettings(_ context.Context, userID string) (*models.NotificationSettings, error) {
	s, ok := m.rows[userID]
	if !ok {
		return nil, fmt.Errorf("settings %s: %w", userID, apperrors.ErrNotFound)
	}
	return &s, nil
}

func (m *memSettings) UpsertSettings(_ context.Context, s *models.NotificationSettings) error {
	if m.rows == nil {
		m.rows = map[string]models.NotificationSettings{}
	}
	m.rows[s.UserID] = *s
	return nil
}

type recordingPublisher struct {
	events []fanout.Event
}

func (r *recordingPublisher) Publish(ev fanout.Event) {
	r.events = append(r.events, ev)
}

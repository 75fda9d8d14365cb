package service

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/pipeline"
	"github.com/anikettiwarime/VideoTube/internal/repository"
)

type mockUserRepository struct {
	users map[primitive.ObjectID]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[primitive.ObjectID]*domain.User)}
}

func (m *mockUserRepository) Create(_ context.Context, user *domain.User) error {
	for _, u := range m.users {
		if u.Username == user.Username || u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

func (m *mockUserRepository) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	for _, u := range m.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepository) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) SetRefreshToken(_ context.Context, id primitive.ObjectID, token string) error {
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.RefreshToken = token
	return nil
}

func (m *mockUserRepository) SetPassword(_ context.Context, id primitive.ObjectID, hashedPassword string) error {
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hashedPassword
	return nil
}

func (m *mockUserRepository) ChannelProfile(_ context.Context, username string, _ primitive.ObjectID) (*domain.ChannelProfile, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &domain.ChannelProfile{ID: u.ID, Username: u.Username, Fullname: u.Fullname, Avatar: u.Avatar}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) WatchHistory(_ context.Context, id primitive.ObjectID) ([]domain.WatchHistoryEntry, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	entries := make([]domain.WatchHistoryEntry, 0, len(u.WatchHistory))
	for _, vid := range u.WatchHistory {
		entries = append(entries, domain.WatchHistoryEntry{ID: vid})
	}
	return entries, nil
}

func (m *mockUserRepository) RecordWatch(_ context.Context, userID, videoID primitive.ObjectID) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	history := []primitive.ObjectID{videoID}
	for _, v := range u.WatchHistory {
		if v != videoID {
			history = append(history, v)
		}
	}
	u.WatchHistory = history
	return nil
}

type mockVideoRepository struct {
	videos   map[primitive.ObjectID]*domain.Video
	lastFeed repository.VideoFeed
}

func newMockVideoRepository() *mockVideoRepository {
	return &mockVideoRepository{videos: make(map[primitive.ObjectID]*domain.Video)}
}

func (m *mockVideoRepository) Create(_ context.Context, video *domain.Video) error {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	m.videos[video.ID] = video
	return nil
}

func (m *mockVideoRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Video, error) {
	if v, ok := m.videos[id]; ok {
		return v, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockVideoRepository) Update(_ context.Context, video *domain.Video) error {
	if _, ok := m.videos[video.ID]; !ok {
		return repository.ErrNotFound
	}
	m.videos[video.ID] = video
	return nil
}

func (m *mockVideoRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.videos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.videos, id)
	return nil
}

// Feed mirrors the match, sort and facet behaviour of the real
// pipeline over the in-memory map.
func (m *mockVideoRepository) Feed(_ context.Context, feed repository.VideoFeed) (*domain.VideoPage, error) {
	m.lastFeed = feed

	matched := make([]*domain.Video, 0, len(m.videos))
	for _, v := range m.videos {
		if feed.PublishedOnly && !v.IsPublished {
			continue
		}
		if feed.Owner != nil && v.Owner != *feed.Owner {
			continue
		}
		matched = append(matched, v)
	}
	sort.Slice(matched, func(i, j int) bool {
		if feed.SortOrder == int(domain.SortAscending) {
			return matched[i].CreatedAt.Before(matched[j].CreatedAt)
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	skip := (feed.Page - 1) * feed.Limit
	items := []domain.FeedVideo{}
	for i := skip; i < skip+feed.Limit && i < total; i++ {
		v := matched[i]
		items = append(items, domain.FeedVideo{
			ID:        v.ID,
			Title:     v.Title,
			ViewCount: v.ViewCount,
			CreatedAt: v.CreatedAt,
			Channel:   domain.FeedChannel{ID: v.Owner},
		})
	}

	return &domain.VideoPage{
		Items:      items,
		TotalCount: total,
		TotalPages: pipeline.TotalPages(total, feed.Limit),
	}, nil
}

func (m *mockVideoRepository) DetailWithOwner(_ context.Context, id primitive.ObjectID) (*domain.VideoDetail, error) {
	v, ok := m.videos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.VideoDetail{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
		VideoURL:    v.VideoURL,
		Duration:    v.Duration,
		ViewCount:   v.ViewCount,
		IsPublished: v.IsPublished,
		CreatedAt:   v.CreatedAt,
		Channel:     domain.VideoOwner{ID: v.Owner},
	}, nil
}

func (m *mockVideoRepository) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	v, ok := m.videos[id]
	if !ok {
		return repository.ErrNotFound
	}
	v.ViewCount++
	return nil
}

func (m *mockVideoRepository) OwnerStats(_ context.Context, owner primitive.ObjectID) (*repository.OwnerVideoStats, error) {
	stats := &repository.OwnerVideoStats{}
	for _, v := range m.videos {
		if v.Owner != owner {
			continue
		}
		stats.TotalVideos++
		stats.TotalViews += v.ViewCount
		stats.VideoIDs = append(stats.VideoIDs, v.ID)
	}
	return stats, nil
}

type mockLikeRepository struct {
	likes []*domain.Like
}

func newMockLikeRepository() *mockLikeRepository {
	return &mockLikeRepository{}
}

func likeTarget(l *domain.Like, kind domain.LikeKind) *primitive.ObjectID {
	switch kind {
	case domain.LikeKindVideo:
		return l.Video
	case domain.LikeKindComment:
		return l.Comment
	default:
		return l.Tweet
	}
}

func (m *mockLikeRepository) Exists(_ context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (bool, error) {
	for _, l := range m.likes {
		if t := likeTarget(l, kind); t != nil && *t == target && l.LikedBy == actor {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLikeRepository) Create(_ context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) (*domain.Like, error) {
	like := &domain.Like{ID: primitive.NewObjectID(), LikedBy: actor}
	t := target
	switch kind {
	case domain.LikeKindVideo:
		like.Video = &t
	case domain.LikeKindComment:
		like.Comment = &t
	default:
		like.Tweet = &t
	}
	m.likes = append(m.likes, like)
	return like, nil
}

func (m *mockLikeRepository) Delete(_ context.Context, kind domain.LikeKind, target, actor primitive.ObjectID) error {
	for i, l := range m.likes {
		if t := likeTarget(l, kind); t != nil && *t == target && l.LikedBy == actor {
			m.likes = append(m.likes[:i], m.likes[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockLikeRepository) CountForVideos(_ context.Context, videoIDs []primitive.ObjectID) (int64, error) {
	var count int64
	for _, l := range m.likes {
		if l.Video == nil {
			continue
		}
		for _, id := range videoIDs {
			if *l.Video == id {
				count++
			}
		}
	}
	return count, nil
}

func (m *mockLikeRepository) CountForVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error) {
	return m.CountForVideos(ctx, []primitive.ObjectID{videoID})
}

func (m *mockLikeRepository) ListVideoLikes(_ context.Context, actor primitive.ObjectID) ([]*domain.Like, error) {
	var out []*domain.Like
	for _, l := range m.likes {
		if l.LikedBy == actor && l.Video != nil {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockSubscriptionRepository struct {
	subs []*domain.Subscription
}

func newMockSubscriptionRepository() *mockSubscriptionRepository {
	return &mockSubscriptionRepository{}
}

func (m *mockSubscriptionRepository) Exists(_ context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	for _, s := range m.subs {
		if s.Subscriber == subscriber && s.Channel == channel {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubscriptionRepository) Create(_ context.Context, subscriber, channel primitive.ObjectID) (*domain.Subscription, error) {
	sub := &domain.Subscription{ID: primitive.NewObjectID(), Subscriber: subscriber, Channel: channel}
	m.subs = append(m.subs, sub)
	return sub, nil
}

func (m *mockSubscriptionRepository) Delete(_ context.Context, subscriber, channel primitive.ObjectID) error {
	for i, s := range m.subs {
		if s.Subscriber == subscriber && s.Channel == channel {
			m.subs = append(m.subs[:i], m.subs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockSubscriptionRepository) Subscribers(_ context.Context, channel primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	var out []domain.SubscriberEntry
	for _, s := range m.subs {
		if s.Channel == channel {
			out = append(out, domain.SubscriberEntry{ID: s.Subscriber})
		}
	}
	return out, nil
}

func (m *mockSubscriptionRepository) SubscribedChannels(_ context.Context, subscriber primitive.ObjectID) ([]domain.SubscriberEntry, error) {
	var out []domain.SubscriberEntry
	for _, s := range m.subs {
		if s.Subscriber == subscriber {
			out = append(out, domain.SubscriberEntry{ID: s.Channel})
		}
	}
	return out, nil
}

func (m *mockSubscriptionRepository) CountForChannel(_ context.Context, channel primitive.ObjectID) (int64, error) {
	var count int64
	for _, s := range m.subs {
		if s.Channel == channel {
			count++
		}
	}
	return count, nil
}

type mockCommentRepository struct {
	comments map[primitive.ObjectID]*domain.Comment
}

func newMockCommentRepository() *mockCommentRepository {
	return &mockCommentRepository{comments: make(map[primitive.ObjectID]*domain.Comment)}
}

func (m *mockCommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
	}
	m.comments[comment.ID] = comment
	return nil
}

func (m *mockCommentRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockCommentRepository) UpdateOwned(_ context.Context, id, owner primitive.ObjectID, content string) (*domain.Comment, error) {
	c, ok := m.comments[id]
	if !ok || c.Owner != owner {
		return nil, repository.ErrNotFound
	}
	c.Content = content
	return c, nil
}

func (m *mockCommentRepository) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) error {
	c, ok := m.comments[id]
	if !ok || c.Owner != owner {
		return repository.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepository) ListByVideo(_ context.Context, video primitive.ObjectID, page, limit int64) ([]domain.CommentWithOwner, error) {
	var all []domain.CommentWithOwner
	for _, c := range m.comments {
		if c.Video == video {
			all = append(all, domain.CommentWithOwner{ID: c.ID, Content: c.Content, CreatedAt: c.CreatedAt})
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	skip := (page - 1) * limit
	if skip >= int64(len(all)) {
		return nil, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

type mockTweetRepository struct {
	tweets map[primitive.ObjectID]*domain.Tweet
}

func newMockTweetRepository() *mockTweetRepository {
	return &mockTweetRepository{tweets: make(map[primitive.ObjectID]*domain.Tweet)}
}

func (m *mockTweetRepository) Create(_ context.Context, tweet *domain.Tweet) error {
	if tweet.ID.IsZero() {
		tweet.ID = primitive.NewObjectID()
	}
	m.tweets[tweet.ID] = tweet
	return nil
}

func (m *mockTweetRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Tweet, error) {
	if t, ok := m.tweets[id]; ok {
		return t, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockTweetRepository) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]*domain.Tweet, error) {
	var out []*domain.Tweet
	for _, t := range m.tweets {
		if t.Owner == owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockTweetRepository) UpdateOwned(_ context.Context, id, owner primitive.ObjectID, content string) (*domain.Tweet, error) {
	t, ok := m.tweets[id]
	if !ok || t.Owner != owner {
		return nil, repository.ErrNotFound
	}
	t.Content = content
	return t, nil
}

func (m *mockTweetRepository) DeleteOwned(_ context.Context, id, owner primitive.ObjectID) error {
	t, ok := m.tweets[id]
	if !ok || t.Owner != owner {
		return repository.ErrNotFound
	}
	delete(m.tweets, id)
	return nil
}

type mockPlaylistRepository struct {
	playlists map[primitive.ObjectID]*domain.Playlist
}

func newMockPlaylistRepository() *mockPlaylistRepository {
	return &mockPlaylistRepository{playlists: make(map[primitive.ObjectID]*domain.Playlist)}
}

func (m *mockPlaylistRepository) Create(_ context.Context, playlist *domain.Playlist) error {
	if playlist.ID.IsZero() {
		playlist.ID = primitive.NewObjectID()
	}
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *mockPlaylistRepository) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Playlist, error) {
	if p, ok := m.playlists[id]; ok {
		return p, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockPlaylistRepository) ListByOwner(_ context.Context, owner primitive.ObjectID) ([]*domain.Playlist, error) {
	var out []*domain.Playlist
	for _, p := range m.playlists {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPlaylistRepository) Update(_ context.Context, playlist *domain.Playlist) error {
	if _, ok := m.playlists[playlist.ID]; !ok {
		return repository.ErrNotFound
	}
	m.playlists[playlist.ID] = playlist
	return nil
}

func (m *mockPlaylistRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.playlists[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.playlists, id)
	return nil
}

type mockMediaStore struct {
	uploads int
	deleted []string
	failOn  string
}

func newMockMediaStore() *mockMediaStore {
	return &mockMediaStore{}
}

func (m *mockMediaStore) UploadLocalFile(_ context.Context, localPath, folder string) (string, error) {
	if m.failOn != "" && folder == m.failOn {
		return "", fmt.Errorf("upload refused for %s", folder)
	}
	m.uploads++
	return fmt.Sprintf("https://cdn.test/%s/object-%d", folder, m.uploads), nil
}

func (m *mockMediaStore) Delete(_ context.Context, folder, url string) error {
	m.deleted = append(m.deleted, url)
	return nil
}

type mockProber struct {
	duration float64
	err      error
}

func (m *mockProber) Duration(_ context.Context, _ string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.duration, nil
}

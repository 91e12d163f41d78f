// Package service implements the application logic between the HTTP
// layer and the store.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/errors"
	"github.com/gongyuapp/gongyu-server/internal/id"
	"github.com/gongyuapp/gongyu-server/internal/store"
	"github.com/gongyuapp/gongyu-server/internal/validation"
)

// shortKeyAttempts bounds the collision retry loop when assigning a
// fresh short key. With 62^8 keys, more than one retry is already rare.
const shortKeyAttempts = 5

// Pagination bounds for bookmark listings.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// BookmarkService manages bookmark CRUD and search.
type BookmarkService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewBookmarkService creates a new bookmark service.
func NewBookmarkService(s store.Store, v *validation.Validator, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// CreateBookmarkInput holds the fields accepted when saving a bookmark.
type CreateBookmarkInput struct {
	URL          string `json:"url" validate:"required,url,max=2048"`
	Title        string `json:"title,omitempty" validate:"max=500"`
	Description  string `json:"description,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url,max=2048"`
}

// UpdateBookmarkInput holds the fields accepted on update. Nil fields
// are left unchanged.
type UpdateBookmarkInput struct {
	URL          *string `json:"url,omitempty" validate:"omitempty,url,max=2048"`
	Title        *string `json:"title,omitempty" validate:"omitempty,max=500"`
	Description  *string `json:"description,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty" validate:"omitempty,url,max=2048"`
}

// ListBookmarksInput controls listing and search.
type ListBookmarksInput struct {
	Query  string
	Limit  int
	Offset int
}

// Create saves a new bookmark, assigning it a fresh short key. The
// title falls back to the URL when empty.
func (s *BookmarkService) Create(ctx context.Context, input CreateBookmarkInput) (*domain.Bookmark, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	title := input.Title
	if title == "" {
		title = input.URL
	}

	now := time.Now().UTC()
	bookmark := &domain.Bookmark{
		URL:          input.URL,
		Title:        title,
		Description:  input.Description,
		ThumbnailURL: input.ThumbnailURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	for attempt := 0; attempt < shortKeyAttempts; attempt++ {
		key, err := id.NewShortKey()
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "generate short key")
		}
		bookmark.ShortURL = key

		err = s.store.CreateBookmark(ctx, bookmark)
		switch {
		case err == nil:
			s.logger.Info("bookmark created", "short_url", bookmark.ShortURL, "url", bookmark.URL)
			return bookmark, nil
		case errors.Is(err, store.ErrShortURLExists):
			continue
		case errors.Is(err, store.ErrURLExists):
			return nil, errors.AlreadyExists("a bookmark with this URL already exists")
		default:
			return nil, errors.Wrap(err, errors.CodeInternal, "create bookmark")
		}
	}

	return nil, errors.Internal("could not assign a unique short key")
}

// Get fetches a bookmark by its short key.
func (s *BookmarkService) Get(ctx context.Context, shortURL string) (*domain.Bookmark, error) {
	bookmark, err := s.store.GetBookmarkByShortURL(ctx, shortURL)
	if errors.Is(err, store.ErrBookmarkNotFound) {
		return nil, errors.NotFound("bookmark not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "get bookmark")
	}
	return bookmark, nil
}

// Update modifies an existing bookmark and bumps its updated time.
func (s *BookmarkService) Update(ctx context.Context, shortURL string, input UpdateBookmarkInput) (*domain.Bookmark, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	bookmark, err := s.Get(ctx, shortURL)
	if err != nil {
		return nil, err
	}

	if input.URL != nil {
		bookmark.URL = *input.URL
	}
	if input.Title != nil {
		bookmark.Title = *input.Title
	}
	if bookmark.Title == "" {
		bookmark.Title = bookmark.URL
	}
	if input.Description != nil {
		bookmark.Description = *input.Description
	}
	if input.ThumbnailURL != nil {
		bookmark.ThumbnailURL = *input.ThumbnailURL
	}
	bookmark.UpdatedAt = time.Now().UTC()

	err = s.store.UpdateBookmark(ctx, bookmark)
	switch {
	case err == nil:
		return bookmark, nil
	case errors.Is(err, store.ErrURLExists):
		return nil, errors.AlreadyExists("a bookmark with this URL already exists")
	case errors.Is(err, store.ErrBookmarkNotFound):
		return nil, errors.NotFound("bookmark not found")
	default:
		return nil, errors.Wrap(err, errors.CodeInternal, "update bookmark")
	}
}

// Delete removes a bookmark by its short key.
func (s *BookmarkService) Delete(ctx context.Context, shortURL string) error {
	bookmark, err := s.Get(ctx, shortURL)
	if err != nil {
		return err
	}
	if err := s.store.DeleteBookmark(ctx, bookmark.ID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "delete bookmark")
	}
	s.logger.Info("bookmark deleted", "short_url", shortURL)
	return nil
}

// DeleteAll removes every bookmark. Irreversible.
func (s *BookmarkService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllBookmarks(ctx); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "delete all bookmarks")
	}
	s.logger.Warn("all bookmarks deleted")
	return nil
}

// List returns bookmarks plus the total stored count. An empty query
// lists newest-first; otherwise results are ranked by relevance.
func (s *BookmarkService) List(ctx context.Context, input ListBookmarksInput) ([]*domain.Bookmark, int64, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := max(input.Offset, 0)

	bookmarks, err := s.store.ListBookmarks(ctx, store.ListOptions{
		Query:  input.Query,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeInternal, "list bookmarks")
	}

	total, err := s.store.CountBookmarks(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CodeInternal, "count bookmarks")
	}

	if bookmarks == nil {
		bookmarks = []*domain.Bookmark{}
	}
	return bookmarks, total, nil
}

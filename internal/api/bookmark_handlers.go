package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/service"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, s.handleHealth)
}

func (s *Server) registerBookmarkRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-bookmarks",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks",
		Summary:     "List or search bookmarks",
		Description: "Lists bookmarks newest-first, or ranked by relevance when a query is given",
		Tags:        []string{"Bookmarks"},
	}, s.handleListBookmarks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "create-bookmark",
		Method:        http.MethodPost,
		Path:          "/api/v1/bookmarks",
		Summary:       "Save a bookmark",
		Tags:          []string{"Bookmarks"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-bookmark",
		Method:      http.MethodGet,
		Path:        "/api/v1/bookmarks/{shortURL}",
		Summary:     "Get a bookmark by short URL",
		Tags:        []string{"Bookmarks"},
	}, s.handleGetBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID: "update-bookmark",
		Method:      http.MethodPatch,
		Path:        "/api/v1/bookmarks/{shortURL}",
		Summary:     "Update a bookmark",
		Tags:        []string{"Bookmarks"},
	}, s.handleUpdateBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-bookmark",
		Method:        http.MethodDelete,
		Path:          "/api/v1/bookmarks/{shortURL}",
		Summary:       "Delete a bookmark",
		Tags:          []string{"Bookmarks"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteBookmark)

	huma.Register(s.api, huma.Operation{
		OperationID:   "delete-all-bookmarks",
		Method:        http.MethodDelete,
		Path:          "/api/v1/bookmarks",
		Summary:       "Delete every bookmark",
		Description:   "Removes the entire collection. Irreversible.",
		Tags:          []string{"Bookmarks"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAllBookmarks)
}

// === DTOs ===

// HealthResponse reports service status.
type HealthResponse struct {
	Status  string `json:"status" doc:"Service status"`
	Backend string `json:"backend" doc:"Active storage backend"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

// BookmarkResponse is the public representation of a bookmark.
type BookmarkResponse struct {
	ID              int64     `json:"id" doc:"Numeric bookmark ID"`
	ShortURL        string    `json:"short_url" doc:"8-character short key"`
	URL             string    `json:"url" doc:"Bookmarked URL"`
	Title           string    `json:"title" doc:"Bookmark title"`
	Description     string    `json:"description" doc:"Free-form description"`
	ThumbnailURL    string    `json:"thumbnail_url,omitempty" doc:"Optional thumbnail URL"`
	ShaarliShortURL string    `json:"shaarli_short_url,omitempty" doc:"Legacy Shaarli identifier, if migrated"`
	CreatedAt       time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt       time.Time `json:"updated_at" doc:"Last modification time"`
}

// ListBookmarksInput contains listing and search parameters.
type ListBookmarksInput struct {
	Query  string `query:"q" maxLength:"200" doc:"Search query. Empty lists newest-first."`
	Limit  int    `query:"limit" default:"50" minimum:"1" maximum:"500" doc:"Max results per page"`
	Offset int    `query:"offset" minimum:"0" doc:"Pagination offset"`
}

// BookmarkListResponse contains one page of bookmarks.
type BookmarkListResponse struct {
	Bookmarks []BookmarkResponse `json:"bookmarks" doc:"Bookmarks in this page"`
	Total     int64              `json:"total" doc:"Total stored bookmarks"`
	Limit     int                `json:"limit" doc:"Applied page size"`
	Offset    int                `json:"offset" doc:"Applied offset"`
}

// ListBookmarksOutput wraps the list response for Huma.
type ListBookmarksOutput struct {
	Body BookmarkListResponse
}

// CreateBookmarkInput carries the request body for saving a bookmark.
type CreateBookmarkInput struct {
	Body service.CreateBookmarkInput
}

// BookmarkOutput wraps a single bookmark for Huma.
type BookmarkOutput struct {
	Body BookmarkResponse
}

// GetBookmarkInput identifies a bookmark by short URL.
type GetBookmarkInput struct {
	ShortURL string `path:"shortURL" maxLength:"8" doc:"Bookmark short key"`
}

// UpdateBookmarkInput carries a partial bookmark update.
type UpdateBookmarkInput struct {
	ShortURL string `path:"shortURL" maxLength:"8" doc:"Bookmark short key"`
	Body     service.UpdateBookmarkInput
}

// DeleteBookmarkInput identifies a bookmark to delete.
type DeleteBookmarkInput struct {
	ShortURL string `path:"shortURL" maxLength:"8" doc:"Bookmark short key"`
}

// === Handlers ===

func (s *Server) handleHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{Body: HealthResponse{
		Status:  "ok",
		Backend: string(s.backend),
	}}, nil
}

func (s *Server) handleListBookmarks(ctx context.Context, input *ListBookmarksInput) (*ListBookmarksOutput, error) {
	bookmarks, total, err := s.services.Bookmarks.List(ctx, service.ListBookmarksInput{
		Query:  input.Query,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}

	resp := BookmarkListResponse{
		Bookmarks: make([]BookmarkResponse, 0, len(bookmarks)),
		Total:     total,
		Limit:     input.Limit,
		Offset:    input.Offset,
	}
	for _, b := range bookmarks {
		resp.Bookmarks = append(resp.Bookmarks, toBookmarkResponse(b))
	}
	return &ListBookmarksOutput{Body: resp}, nil
}

func (s *Server) handleCreateBookmark(ctx context.Context, input *CreateBookmarkInput) (*BookmarkOutput, error) {
	bookmark, err := s.services.Bookmarks.Create(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: toBookmarkResponse(bookmark)}, nil
}

func (s *Server) handleGetBookmark(ctx context.Context, input *GetBookmarkInput) (*BookmarkOutput, error) {
	bookmark, err := s.services.Bookmarks.Get(ctx, input.ShortURL)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: toBookmarkResponse(bookmark)}, nil
}

func (s *Server) handleUpdateBookmark(ctx context.Context, input *UpdateBookmarkInput) (*BookmarkOutput, error) {
	bookmark, err := s.services.Bookmarks.Update(ctx, input.ShortURL, input.Body)
	if err != nil {
		return nil, err
	}
	return &BookmarkOutput{Body: toBookmarkResponse(bookmark)}, nil
}

func (s *Server) handleDeleteBookmark(ctx context.Context, input *DeleteBookmarkInput) (*struct{}, error) {
	if err := s.services.Bookmarks.Delete(ctx, input.ShortURL); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func (s *Server) handleDeleteAllBookmarks(ctx context.Context, _ *struct{}) (*struct{}, error) {
	if err := s.services.Bookmarks.DeleteAll(ctx); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}

func toBookmarkResponse(b *domain.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:              b.ID,
		ShortURL:        b.ShortURL,
		URL:             b.URL,
		Title:           b.Title,
		Description:     b.Description,
		ThumbnailURL:    b.ThumbnailURL,
		ShaarliShortURL: b.ShaarliShortURL,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

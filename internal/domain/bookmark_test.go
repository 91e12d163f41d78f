package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTitle(t *testing.T) {
	b := &Bookmark{URL: "https://example.com/article", Title: "An Article"}
	assert.Equal(t, "An Article", b.DisplayTitle())

	b.Title = ""
	assert.Equal(t, "https://example.com/article", b.DisplayTitle())
}

func TestEdited(t *testing.T) {
	now := time.Now()

	b := &Bookmark{CreatedAt: now, UpdatedAt: now}
	assert.False(t, b.Edited())

	b.UpdatedAt = now.Add(time.Minute)
	assert.True(t, b.Edited())
}

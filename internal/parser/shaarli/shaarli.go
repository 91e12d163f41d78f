// Package shaarli parses Shaarli's legacy PHP datastore files.
package shaarli

import (
	"bytes"
	"compress/flate"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gongyuapp/gongyu-server/internal/domain"
	"github.com/gongyuapp/gongyu-server/internal/parser"
)

// ErrNoBookmarks is returned when the datastore decodes but holds no
// recognizable bookmark collection.
var ErrNoBookmarks = errors.New("Could not find bookmarks in datastore.")

const (
	phpPrefix = "<?php /* "
	phpSuffix = " */ ?>"

	// maxDecompressedSize bounds the inflated datastore so a small,
	// highly compressed upload cannot exhaust memory.
	maxDecompressedSize = 32 << 20
)

// Parse decodes a Shaarli datastore.php file into import records.
// Structural failures (bad framing, base64, deflate, or an undecodable
// graph) return an error; individual malformed records are skipped.
func Parse(data []byte) ([]domain.ImportRecord, error) {
	payload, err := unwrap(data)
	if err != nil {
		return nil, err
	}

	compressed, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode datastore base64: %w", err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	serialized, err := io.ReadAll(io.LimitReader(zr, maxDecompressedSize+1))
	if err != nil {
		return nil, fmt.Errorf("decompress datastore: %w", err)
	}
	if len(serialized) > maxDecompressedSize {
		return nil, errors.New("decompressed datastore too large")
	}

	graph, err := decodePHPValue(serialized)
	if err != nil {
		return nil, fmt.Errorf("decode datastore: %w", err)
	}

	links, ok := findBookmarks(graph)
	if !ok {
		return nil, ErrNoBookmarks
	}

	records := make([]domain.ImportRecord, 0, len(links))
	for _, entry := range links {
		if rec, ok := recordFromValue(entry.value); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

// unwrap strips the PHP comment framing around the base64 payload.
// The trailing marker is optional so truncated files still parse.
func unwrap(data []byte) (string, error) {
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, phpPrefix) {
		return "", errors.New("not a Shaarli datastore file")
	}
	content = strings.TrimPrefix(content, phpPrefix)

	if idx := strings.Index(content, " */"); idx >= 0 {
		content = content[:idx]
	}
	return strings.TrimSpace(content), nil
}

// findBookmarks locates the bookmark collection in the decoded graph.
// Modern datastores are a BookmarkArray object with a protected
// "bookmarks" property holding the link array.
func findBookmarks(graph any) (phpArray, bool) {
	obj, ok := graph.(*phpObject)
	if !ok {
		return nil, false
	}
	for _, field := range obj.fields {
		key, ok := field.key.(string)
		if !ok || cleanKey(key) != "*bookmarks" {
			continue
		}
		if links, ok := field.value.(phpArray); ok {
			return links, true
		}
	}
	return nil, false
}

// recordFromValue maps one decoded link onto an import record. Fields
// are matched by cleaned-key suffix so property visibility and class
// naming differences across Shaarli versions don't matter. ok is false
// when the value is not an object or carries no URL.
func recordFromValue(value any) (domain.ImportRecord, bool) {
	obj, ok := value.(*phpObject)
	if !ok {
		return domain.ImportRecord{}, false
	}

	var rec domain.ImportRecord
	for _, field := range obj.fields {
		rawKey, ok := field.key.(string)
		if !ok {
			continue
		}
		key := strings.ToLower(cleanKey(rawKey))

		switch {
		case strings.HasSuffix(key, "shorturl"):
			if s, ok := field.value.(string); ok {
				rec.ShaarliShortURL = s
			}
		case strings.HasSuffix(key, "url") && !strings.Contains(key, "short"):
			if s, ok := field.value.(string); ok {
				rec.URL = s
			}
		case strings.HasSuffix(key, "title"):
			if s, ok := field.value.(string); ok {
				rec.Title = s
			}
		case strings.HasSuffix(key, "description"):
			if s, ok := field.value.(string); ok {
				rec.Description = s
			}
		case strings.HasSuffix(key, "created"):
			rec.CreatedAt = timeFromValue(field.value)
		case strings.HasSuffix(key, "updated"):
			rec.UpdatedAt = timeFromValue(field.value)
		}
	}

	if rec.URL == "" {
		return domain.ImportRecord{}, false
	}
	return rec, true
}

// timeFromValue extracts a timestamp from either a bare string or a
// serialized DateTime object, whose "date" field is a string like
// "2023-06-15 10:30:00.000000".
func timeFromValue(value any) time.Time {
	switch v := value.(type) {
	case string:
		if t, ok := parser.ParseTime(v); ok {
			return t
		}
	case *phpObject:
		if s, ok := v.stringField("date"); ok {
			if t, ok := parser.ParseTime(s); ok {
				return t
			}
		}
	}
	return time.Time{}
}

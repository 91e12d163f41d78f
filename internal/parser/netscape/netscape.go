// Package netscape parses Netscape bookmark files, the HTML export
// format shared by browsers and by Shaarli.
package netscape

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/gongyuapp/gongyu-server/internal/domain"
)

// legacyShortKeyPattern matches Shaarli's 6-character link keys, which
// old exports carry as the query string of a self-referencing href.
var legacyShortKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6}$`)

// Parse extracts bookmark records from a Netscape bookmark file.
// Malformed entries are skipped; Parse never fails outright because
// real-world exports are rarely valid HTML.
func Parse(data []byte) []domain.ImportRecord {
	// Normalize line endings so descriptions keep clean newlines.
	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	var (
		records  []domain.ImportRecord
		current  map[string]string // attrs of the open <a>, nil when outside one
		text     strings.Builder   // anchor text of the open <a>
		pending  *domain.ImportRecord
		inDD     bool
	)

	finishAnchor := func() {
		if current == nil {
			return
		}
		rec, ok := recordFromAnchor(current, strings.TrimSpace(text.String()))
		if ok {
			records = append(records, rec)
			pending = &records[len(records)-1]
		}
		current = nil
		text.Reset()
	}

	tokenizer := html.NewTokenizer(strings.NewReader(content))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return records

		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			switch token.Data {
			case "a":
				finishAnchor()
				inDD = false
				current = make(map[string]string, len(token.Attr))
				for _, attr := range token.Attr {
					current[strings.ToLower(attr.Key)] = attr.Val
				}
			case "dd":
				inDD = current == nil && pending != nil && pending.Description == ""
			default:
				// Any other tag ends a description run.
				inDD = false
			}

		case html.TextToken:
			token := tokenizer.Token()
			if current != nil {
				text.WriteString(token.Data)
			} else if inDD {
				if desc := strings.TrimSpace(token.Data); desc != "" {
					pending.Description = desc
					inDD = false
				}
			}

		case html.EndTagToken:
			token := tokenizer.Token()
			if token.Data == "a" {
				finishAnchor()
			} else if token.Data != "dd" {
				inDD = false
			}
		}
	}
}

// recordFromAnchor builds an import record from an anchor's attributes
// and text. ok is false when the href is missing or not a fetchable
// absolute URL.
func recordFromAnchor(attrs map[string]string, title string) (domain.ImportRecord, bool) {
	href := strings.TrimSpace(attrs["href"])
	if href == "" {
		return domain.ImportRecord{}, false
	}

	parsed, err := url.Parse(href)
	if err != nil || parsed.Host == "" {
		return domain.ImportRecord{}, false
	}
	switch parsed.Scheme {
	case "http", "https", "ftp":
	default:
		return domain.ImportRecord{}, false
	}

	if title == "" {
		title = href
	}

	rec := domain.ImportRecord{
		URL:             href,
		Title:           title,
		ShortURL:        attrs["shorturl"],
		ShaarliShortURL: attrs["shaarli_shorturl"],
	}

	// Old Shaarli exports link notes to themselves as "?<key>".
	if rec.ShaarliShortURL == "" && legacyShortKeyPattern.MatchString(parsed.RawQuery) {
		rec.ShaarliShortURL = parsed.RawQuery
	}

	if epoch, err := strconv.ParseInt(attrs["add_date"], 10, 64); err == nil {
		rec.CreatedAt = time.Unix(epoch, 0).UTC()
	}
	if epoch, err := strconv.ParseInt(attrs["last_modified"], 10, 64); err == nil {
		rec.UpdatedAt = time.Unix(epoch, 0).UTC()
	}

	return rec, true
}

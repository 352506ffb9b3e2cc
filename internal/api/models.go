package api

import (
	"strings"
	"time"
)

// Article is the extraction service's article record. It is received
// read-only; this client never constructs or mutates one.
type Article struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	URL               string   `json:"url"`
	Content           string   `json:"content"`
	ImageURL          string   `json:"image_url"`
	ProcessedImageURL string   `json:"processed_image_url"`
	VideoURL          string   `json:"video_url"`
	ProcessedVideoURL string   `json:"processed_video_url"`
	MetaLang          string   `json:"meta_lang"`
	MetaKeywords      string   `json:"meta_keywords"`
	PublishDate       *APITime `json:"publish_date"`
	CreatedAt         APITime  `json:"created_at"`
	UserID            int64    `json:"user_id"`
}

// OverviewStats mirrors /api/analytics/stats/overview.
type OverviewStats struct {
	TotalArticles      int      `json:"total_articles"`
	RecentArticles     int      `json:"recent_articles"`
	ArticlesWithImages int      `json:"articles_with_images"`
	LatestArticleDate  *APITime `json:"latest_article_date"`
}

// TimelinePoint is one day of /api/analytics/stats/timeline.
// Date is a plain YYYY-MM-DD string.
type TimelinePoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DomainCount is one entry of /api/analytics/stats/domains.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// APITime parses the timestamp variants the service emits: RFC 3339,
// naive ISO 8601 (no offset, optional fractional seconds) and bare dates.
type APITime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	var lastErr error
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
		lastErr = err
	}
	return lastErr
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}

package domain

import (
	"fmt"
	"time"
)

// Mode selects which of the upstream CLI's JSON shapes the input carries.
type Mode string

const (
	ModeTrending Mode = "trending"
	ModeSearch   Mode = "search"
	ModeUser     Mode = "user"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTrending, ModeSearch, ModeUser:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected trending, search or user)", s)
	}
}

// Author is the tweet author as rendered: display name plus @username.
type Author struct {
	Username string
	Name     string
}

type Media struct {
	Type   string
	URL    string
	Width  int
	Height int
}

// Tweet is the normalized form of one upstream tweet record. Translation is
// empty unless the pipeline produced a translated variant distinct from Text.
type Tweet struct {
	ID             string
	Text           string
	CreatedAt      string
	ReplyCount     int
	RetweetCount   int
	LikeCount      int
	ConversationID string
	Author         Author
	AuthorID       string
	Media          []Media
	Translation    string
}

// URL is the canonical permalink for the tweet.
func (t *Tweet) URL() string {
	return fmt.Sprintf("https://x.com/%s/status/%s", t.Author.Username, t.ID)
}

// ProfileURL is the author's profile permalink.
func (a Author) ProfileURL() string {
	return fmt.Sprintf("https://x.com/%s", a.Username)
}

// TrendingItem is one entry of the discovery surface. TweetsRequested records
// whether the source included a tweets array at all: an absent array and an
// empty array render differently.
type TrendingItem struct {
	ID              string
	Headline        string
	Category        string
	TimeAgo         string
	PostCount       int
	Description     string
	URL             string
	Tweets          []Tweet
	TweetsRequested bool

	HeadlineTranslation    string
	DescriptionTranslation string
}

// Document is the renderer's input: all normalized (and optionally
// translated) records for one invocation plus presentation metadata.
// Exactly one of Items or Tweets is populated, depending on Mode.
type Document struct {
	Mode        Mode
	Title       string
	Query       string
	Handle      string
	TargetLang  string
	GeneratedAt time.Time
	Items       []TrendingItem
	Tweets      []Tweet
}

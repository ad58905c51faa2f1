// Package schema decodes the upstream CLI's three JSON shapes into the
// internal record model. The mode flag is the discriminator: each mode maps
// to exactly one decoding path, so ambiguous records are never shape-sniffed.
package schema

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kapu/bird2md-go/internal/domain"
	"github.com/kapu/bird2md-go/pkg/errors"
)

// flexCount is a count field that tolerates the upstream CLI's inconsistent
// numeric encoding: JSON numbers, numeric strings and null all decode; any
// other value is a coercion failure surfaced as a SchemaError by the caller.
type flexCount int

func (n *flexCount) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*n = 0
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("cannot coerce %q to a count", s)
		}
		*n = flexCount(v)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("cannot coerce %s to a count", trimmed)
	}
	*n = flexCount(int(f))
	return nil
}

// Int returns the count clamped to zero; negative values never propagate.
func (n flexCount) Int() int {
	if n < 0 {
		return 0
	}
	return int(n)
}

// flexID tolerates identifiers emitted as JSON numbers instead of strings.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("cannot coerce %s to an id", trimmed)
	}
	*id = flexID(f.String())
	return nil
}

type rawAuthor struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type rawMedia struct {
	Type   string    `json:"type"`
	URL    string    `json:"url"`
	Width  flexCount `json:"width"`
	Height flexCount `json:"height"`
}

type rawTweet struct {
	ID             flexID     `json:"id"`
	Text           *string    `json:"text"`
	CreatedAt      string     `json:"createdAt"`
	ReplyCount     flexCount  `json:"replyCount"`
	RetweetCount   flexCount  `json:"retweetCount"`
	LikeCount      flexCount  `json:"likeCount"`
	ConversationID flexID     `json:"conversationId"`
	Author         *rawAuthor `json:"author"`
	AuthorID       flexID     `json:"authorId"`
	Media          []rawMedia `json:"media"`
}

type rawTrendingItem struct {
	ID          flexID      `json:"id"`
	Headline    *string     `json:"headline"`
	Category    string      `json:"category"`
	TimeAgo     string      `json:"timeAgo"`
	PostCount   flexCount   `json:"postCount"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Tweets      *[]rawTweet `json:"tweets"`
}

// Tweets normalizes a search/user mode payload: a JSON array of tweet records.
func Tweets(data []byte) ([]domain.Tweet, error) {
	records, err := splitRecords(data)
	if err != nil {
		return nil, err
	}

	tweets := make([]domain.Tweet, 0, len(records))
	for i, record := range records {
		var raw rawTweet
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, errors.NewSchemaError("malformed tweet record", fieldFromError(err), i).WithCause(err)
		}
		tweet, err := mapTweet(raw, i)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

// TrendingItems normalizes a trending mode payload: a JSON array of trending
// entries, each optionally carrying related tweets.
func TrendingItems(data []byte) ([]domain.TrendingItem, error) {
	records, err := splitRecords(data)
	if err != nil {
		return nil, err
	}

	items := make([]domain.TrendingItem, 0, len(records))
	for i, record := range records {
		var raw rawTrendingItem
		if err := json.Unmarshal(record, &raw); err != nil {
			return nil, errors.NewSchemaError("malformed trending record", fieldFromError(err), i).WithCause(err)
		}

		if raw.Headline == nil || strings.TrimSpace(*raw.Headline) == "" {
			return nil, errors.NewSchemaError("missing required field", "headline", i)
		}
		if raw.ID == "" {
			return nil, errors.NewSchemaError("missing required field", "id", i)
		}

		item := domain.TrendingItem{
			ID:          string(raw.ID),
			Headline:    *raw.Headline,
			Category:    raw.Category,
			TimeAgo:     raw.TimeAgo,
			PostCount:   raw.PostCount.Int(),
			Description: raw.Description,
			URL:         raw.URL,
		}

		// An absent tweets array means related tweets were never requested;
		// an empty one means they were requested and came back empty.
		if raw.Tweets != nil {
			item.TweetsRequested = true
			item.Tweets = make([]domain.Tweet, 0, len(*raw.Tweets))
			for _, rawT := range *raw.Tweets {
				tweet, err := mapTweet(rawT, i)
				if err != nil {
					return nil, err
				}
				item.Tweets = append(item.Tweets, tweet)
			}
		}

		items = append(items, item)
	}
	return items, nil
}

func mapTweet(raw rawTweet, index int) (domain.Tweet, error) {
	if raw.ID == "" {
		return domain.Tweet{}, errors.NewSchemaError("missing required field", "id", index)
	}
	if raw.Text == nil {
		return domain.Tweet{}, errors.NewSchemaError("missing required field", "text", index)
	}

	author := domain.Author{Username: "unknown"}
	if raw.Author != nil && strings.TrimSpace(raw.Author.Username) != "" {
		author.Username = raw.Author.Username
		author.Name = raw.Author.Name
	}
	if author.Name == "" {
		author.Name = author.Username
	}

	var media []domain.Media
	for _, m := range raw.Media {
		media = append(media, domain.Media{
			Type:   m.Type,
			URL:    m.URL,
			Width:  m.Width.Int(),
			Height: m.Height.Int(),
		})
	}

	return domain.Tweet{
		ID:             string(raw.ID),
		Text:           strings.TrimSpace(*raw.Text),
		CreatedAt:      raw.CreatedAt,
		ReplyCount:     raw.ReplyCount.Int(),
		RetweetCount:   raw.RetweetCount.Int(),
		LikeCount:      raw.LikeCount.Int(),
		ConversationID: string(raw.ConversationID),
		Author:         author,
		AuthorID:       string(raw.AuthorID),
		Media:          media,
	}, nil
}

func splitRecords(data []byte) ([]json.RawMessage, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewSchemaError("input is not a JSON array", "", 0).WithCause(err)
	}
	return records, nil
}

// fieldFromError pulls the struct field name out of a json.UnmarshalTypeError
// so SchemaError can name the offending key.
func fieldFromError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return typeErr.Field
	}
	return ""
}

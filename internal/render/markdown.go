// Package render composes normalized records into the final Markdown
// document. Rendering is a pure function of the document: identical inputs
// produce byte-identical output, records keep their input order, and a
// record with empty optional fields still renders its required ones.
package render

import (
	"fmt"
	"strings"

	"github.com/kapu/bird2md-go/internal/domain"
	"github.com/kapu/bird2md-go/internal/textscan"
	"github.com/kapu/bird2md-go/internal/util"
)

// Document renders doc for its mode. diags collects timestamp warnings and
// may be nil.
func Document(doc *domain.Document, diags *domain.Diagnostics) string {
	switch doc.Mode {
	case domain.ModeTrending:
		return renderTrending(doc, diags)
	case domain.ModeSearch:
		return renderSearch(doc, diags)
	default:
		return renderUser(doc, diags)
	}
}

func renderTrending(doc *domain.Document, diags *domain.Diagnostics) string {
	var sb strings.Builder

	title := doc.Title
	if title == "" {
		title = "X/Twitter Trending"
	}
	writeHeader(&sb, doc, title, "")

	for i, item := range doc.Items {
		if item.HeadlineTranslation != "" {
			fmt.Fprintf(&sb, "## %d. %s\n", i+1, item.HeadlineTranslation)
			fmt.Fprintf(&sb, "_%s_\n", item.Headline)
		} else {
			fmt.Fprintf(&sb, "## %d. %s\n", i+1, item.Headline)
		}
		sb.WriteString("\n")

		var meta []string
		if item.Category != "" {
			meta = append(meta, fmt.Sprintf("**Category:** %s", item.Category))
		}
		if item.TimeAgo != "" {
			meta = append(meta, fmt.Sprintf("**Time:** %s", item.TimeAgo))
		}
		if item.PostCount > 0 {
			meta = append(meta, fmt.Sprintf("**Posts:** %s", formatCount(item.PostCount)))
		}
		if len(meta) > 0 {
			sb.WriteString(strings.Join(meta, " | "))
			sb.WriteString("\n\n")
		}

		if item.Description != "" {
			if item.DescriptionTranslation != "" {
				fmt.Fprintf(&sb, "_%s_ (%s)\n", item.DescriptionTranslation, item.Description)
			} else {
				fmt.Fprintf(&sb, "_%s_\n", item.Description)
			}
			sb.WriteString("\n")
		}

		if item.URL != "" {
			fmt.Fprintf(&sb, "[View topic](%s)\n\n", item.URL)
		}

		// Requested-but-empty still gets the heading: the reader should see
		// that related tweets were asked for and none came back.
		if item.TweetsRequested {
			sb.WriteString("### Related Tweets\n\n")
			if len(item.Tweets) == 0 {
				sb.WriteString("_No related tweets._\n\n")
			}
			for _, tweet := range item.Tweets {
				writeTweetBlock(&sb, &tweet, doc.TargetLang, diags)
			}
		}

		sb.WriteString("---\n\n")
	}

	return sb.String()
}

func renderSearch(doc *domain.Document, diags *domain.Diagnostics) string {
	var sb strings.Builder

	title := doc.Title
	if title == "" {
		if doc.Query != "" {
			title = fmt.Sprintf("X/Twitter Search: %q", doc.Query)
		} else {
			title = "X/Twitter Search Results"
		}
	}
	writeHeader(&sb, doc, title, fmt.Sprintf(" | Results: %d", len(doc.Tweets)))

	for i, tweet := range doc.Tweets {
		fmt.Fprintf(&sb, "### %d. %s (@%s)\n\n", i+1, tweet.Author.Name, tweet.Author.Username)
		writeTweetBlock(&sb, &tweet, doc.TargetLang, diags)
		sb.WriteString("---\n\n")
	}

	return sb.String()
}

func renderUser(doc *domain.Document, diags *domain.Diagnostics) string {
	var sb strings.Builder

	handle := doc.Handle
	if handle == "" && len(doc.Tweets) > 0 {
		handle = doc.Tweets[0].Author.Username
	}
	if handle == "" {
		handle = "unknown"
	}
	if !strings.HasPrefix(handle, "@") {
		handle = "@" + handle
	}

	title := doc.Title
	if title == "" {
		title = fmt.Sprintf("%s - Recent Tweets", handle)
	}
	writeHeader(&sb, doc, title, fmt.Sprintf(" | Tweets: %d", len(doc.Tweets)))

	for i, tweet := range doc.Tweets {
		created, ok := util.FormatCreatedAt(tweet.CreatedAt)
		if !ok && tweet.CreatedAt != "" {
			diags.Warnf("unparseable timestamp %q on tweet %s", tweet.CreatedAt, tweet.ID)
		}
		fmt.Fprintf(&sb, "### %d. [%s]\n\n", i+1, created)
		writeTweetBlock(&sb, &tweet, doc.TargetLang, diags)
		sb.WriteString("---\n\n")
	}

	return sb.String()
}

func writeHeader(sb *strings.Builder, doc *domain.Document, title, suffix string) {
	fmt.Fprintf(sb, "# %s\n\n", title)
	fmt.Fprintf(sb, "> Generated at %s%s\n\n", doc.GeneratedAt.UTC().Format("2006-01-02 15:04")+" UTC", suffix)
	sb.WriteString("---\n\n")
}

// writeTweetBlock emits one tweet as a blockquote.
func writeTweetBlock(sb *strings.Builder, t *domain.Tweet, targetLang string, diags *domain.Diagnostics) {
	created, ok := util.FormatCreatedAt(t.CreatedAt)
	if !ok && t.CreatedAt != "" {
		diags.Warnf("unparseable timestamp %q on tweet %s", t.CreatedAt, t.ID)
	}

	fmt.Fprintf(sb, "> **%s** ([@%s](%s)) - %s\n", t.Author.Name, t.Author.Username, t.Author.ProfileURL(), created)
	sb.WriteString(">\n")
	for _, line := range strings.Split(t.Text, "\n") {
		fmt.Fprintf(sb, "> %s\n", line)
	}

	if t.Translation != "" && t.Translation != t.Text {
		sb.WriteString(">\n")
		fmt.Fprintf(sb, "> **[%s]** %s\n", targetLang, t.Translation)
	}

	sb.WriteString(">\n")
	fmt.Fprintf(sb, "> Likes: **%s** | Retweets: **%s** | Replies: **%s**\n",
		formatCount(t.LikeCount), formatCount(t.RetweetCount), formatCount(t.ReplyCount))

	if tags := textscan.Hashtags(t.Text); len(tags) > 0 {
		fmt.Fprintf(sb, "> Tags: %s\n", strings.Join(tags, " "))
	}

	for _, m := range t.Media {
		fmt.Fprintf(sb, "> Media: [%s](%s)\n", m.Type, m.URL)
	}

	sb.WriteString(">\n")
	fmt.Fprintf(sb, "> [View original](%s)\n", t.URL())
	sb.WriteString("\n")
}

// formatCount abbreviates large counts the way the upstream surfaces do:
// 1234 -> 1.2K, 3400000 -> 3.4M.
func formatCount(n int) string {
	if n < 0 {
		n = 0
	}
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

package telegram

import (
	"fmt"
	"strings"

	"github.com/vadimtrunov/marquee/internal/metadata/tmdb"
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatMovies renders movies as a numbered list, e.g. "1. A ⭐ 7.5/10".
func FormatMovies(movies []tmdb.Movie) string {
	if len(movies) == 0 {
		return "No movies found."
	}
	lines := make([]string, len(movies))
	for i, mv := range movies {
		lines[i] = fmt.Sprintf("%d. %s %s", i+1, mv.Title, mv.Rating())
	}
	return strings.Join(lines, "\n")
}

// FormatGenres renders genres as a numbered list in response order.
func FormatGenres(genres []tmdb.Genre) string {
	if len(genres) == 0 {
		return "No genres found."
	}
	lines := make([]string, len(genres))
	for i, g := range genres {
		lines[i] = fmt.Sprintf("%d. %s", i+1, g.Name)
	}
	return strings.Join(lines, "\n")
}

// formatListing renders a titled list as MarkdownV2.
func formatListing(title, body string) string {
	return FormatBold(title) + "\n\n" + EscapeMdV2(body)
}

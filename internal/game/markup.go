package game

import (
	"strings"
)

// Segment of announcement text, optionally linking to a URL.
type Segment struct {
	Text string
	Link string // Empty for plain text.
}

// ParseMarkup splits text into segments: parts enclosed in "<>" link to links, in order.
// It fails if the brackets are unbalanced or if their number doesn't match len(links).
func ParseMarkup(text string, links []string) ([]Segment, error) {
	var (
		segments []Segment
		current  strings.Builder
		inLink   bool
		used     int
	)
	flush := func(link string) {
		if current.Len() > 0 {
			segments = append(segments, Segment{Text: current.String(), Link: link})
			current.Reset()
		}
	}
	for pos, r := range text {
		switch r {
		case '<':
			if inLink {
				return nil, configErrorf("markup: nested '<' at position %d", pos)
			}
			if used >= len(links) {
				return nil, configErrorf("markup: link brackets '<>' do not match the %d links given", len(links))
			}
			flush("")
			inLink = true
		case '>':
			if !inLink {
				return nil, configErrorf("markup: unexpected '>' at position %d", pos)
			}
			flush(links[used])
			used++
			inLink = false
		default:
			current.WriteRune(r)
		}
	}
	if inLink {
		return nil, configErrorf("markup: unclosed '<'")
	}
	if used != len(links) {
		return nil, configErrorf("markup: %d link brackets '<>' for %d links", used, len(links))
	}
	flush("")
	return segments, nil
}

// MustParseMarkup is like ParseMarkup, but panics on error. For static content.
func MustParseMarkup(text string, links []string) []Segment {
	segments, err := ParseMarkup(text, links)
	if err != nil {
		panic(err)
	}
	return segments
}

// PlainText returns the text of the segments, without the markup.
func PlainText(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

const creditsText = "Game: Brian Voter, 2023 <brian-voter.github.io>\n" +
	"Music: MORPHODER GROOVE by BOCrew (c)\n" +
	"'Hacked' Font by David Libeau <https://hackedfont.com/>\n" +
	"Interface Sound Effect by UNIVERSFIELD of <pixabay.com>\n" +
	"Other Sounds Effects: <pixabay.com>."

var creditsLinks = []string{"https://brian-voter.github.io", "https://hackedfont.com/",
	"https://pixabay.com", "https://pixabay.com"}

// Credits returns the text of the "ABOUT" dialog.
func Credits() []Segment {
	return MustParseMarkup(creditsText, creditsLinks)
}

package wordpress

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>?`)
	hrefAudioPattern = regexp.MustCompile(`(?i)href="([^"]+\.mp3)"`)
	srcAudioPattern  = regexp.MustCompile(`(?i)src="([^"]+\.mp3)"`)
)

// entityReplacer is the fixed decode table. Entities outside it pass through
// unchanged.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#039;", "'",
	"&nbsp;", " ",
	"&#8211;", "–",
	"&#8212;", "—",
	"&#8216;", "‘",
	"&#8217;", "’",
	"&#8220;", "“",
	"&#8221;", "”",
)

// StripTags removes markup tags, leaving the text content.
func StripTags(html string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(html, ""))
}

// DecodeEntities replaces the known HTML entities with their characters.
func DecodeEntities(s string) string {
	return entityReplacer.Replace(s)
}

// FindAudioURL scans rendered content for the first link or source attribute
// pointing at an audio file. Empty result means the record is display-only.
func FindAudioURL(html string) string {
	if m := hrefAudioPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	if m := srcAudioPattern.FindStringSubmatch(html); m != nil {
		return m[1]
	}
	return ""
}

// FindAudioLinks returns every audio hyperlink in rendered content, in order.
func FindAudioLinks(html string) []string {
	var urls []string
	for _, m := range hrefAudioPattern.FindAllStringSubmatch(html, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

// TitleFromFilename derives a display title from an audio URL: base name,
// extension stripped, hyphens replaced with spaces.
func TitleFromFilename(url string) string {
	base := path.Base(url)
	base = strings.TrimSuffix(base, path.Ext(base))
	title := strings.ReplaceAll(base, "-", " ")
	if strings.TrimSpace(title) == "" {
		return "Track"
	}
	return title
}

// placeholderImage builds the deterministic placeholder for a missing image.
// The seed is fixed per entity kind, not per record, so all records of a kind
// missing an image share one placeholder.
func placeholderImage(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", seed)
}

package wordpress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gracefm/model"
)

func TestNormalizeSermon(t *testing.T) {
	post := RawPost{
		ID:      101,
		Date:    "2024-02-18T09:00:00",
		Title:   RenderedField{Rendered: "Grace &amp; Truth"},
		Excerpt: RenderedField{Rendered: "<p>An excerpt about &quot;hope&quot;.</p>"},
		Content: RenderedField{Rendered: `<p>Listen: <a href="https://cdn.example.org/grace.mp3">audio</a></p>`},
		Embedded: &Embedded{
			FeaturedMedia: []EmbeddedMedia{{SourceURL: "https://cdn.example.org/grace.jpg"}},
			Terms: [][]EmbeddedTerm{
				{{ID: 3, Name: "Sunday", Slug: "sunday"}, {ID: 4, Name: "Faith", Slug: "faith"}},
				{{ID: 9, Name: "tag-group-ignored", Slug: "x"}},
			},
		},
	}

	sermon := NormalizeSermon(post, false)

	assert.Equal(t, model.PostID(101), sermon.ID)
	// Without decoding, entities in the title survive for the renderer.
	assert.Equal(t, "Grace &amp; Truth", sermon.Title)
	assert.Equal(t, `An excerpt about &quot;hope&quot;.`, sermon.Excerpt)
	assert.Equal(t, "https://cdn.example.org/grace.mp3", sermon.AudioURL)
	assert.Equal(t, "https://cdn.example.org/grace.jpg", sermon.ImageURL)
	assert.Equal(t, []string{"Sunday", "Faith"}, sermon.Categories)
	assert.True(t, sermon.Playable())
}

func TestNormalizeSermonDecoded(t *testing.T) {
	post := RawPost{
		ID:      102,
		Title:   RenderedField{Rendered: "Grace &amp; Truth"},
		Excerpt: RenderedField{Rendered: "<p>It&#8217;s good.</p>"},
	}

	sermon := NormalizeSermon(post, true)

	assert.Equal(t, "Grace & Truth", sermon.Title)
	assert.Equal(t, "It’s good.", sermon.Excerpt)
}

func TestNormalizeSermonDefaults(t *testing.T) {
	sermon := NormalizeSermon(RawPost{ID: 103, Title: RenderedField{Rendered: "Plain"}}, false)

	assert.Empty(t, sermon.AudioURL)
	assert.False(t, sermon.Playable())
	assert.Equal(t, "https://picsum.photos/seed/sermon/800/600", sermon.ImageURL)
	require.NotNil(t, sermon.Categories)
	assert.Empty(t, sermon.Categories)
}

func TestNormalizeSermonAudioFromSource(t *testing.T) {
	post := RawPost{
		ID:      104,
		Content: RenderedField{Rendered: `<audio src="https://cdn.example.org/src-only.MP3"></audio>`},
	}

	sermon := NormalizeSermon(post, false)

	assert.Equal(t, "https://cdn.example.org/src-only.MP3", sermon.AudioURL)
}

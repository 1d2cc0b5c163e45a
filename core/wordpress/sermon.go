package wordpress

import (
	"gracefm/model"
)

const (
	sermonImageSeed   = "sermon"
	playlistImageSeed = "playlist"
)

// NormalizeSermon maps a raw post onto the domain model. Title and content
// keep their source markup; the excerpt is stripped to text. When decode is
// set, title and excerpt are additionally entity-decoded — the search path
// wants plain text, the listing path renders the raw form.
func NormalizeSermon(post RawPost, decode bool) model.Sermon {
	title := post.Title.Rendered
	excerpt := StripTags(post.Excerpt.Rendered)
	if decode {
		title = DecodeEntities(title)
		excerpt = DecodeEntities(excerpt)
	}

	return model.Sermon{
		ID:         model.PostID(post.ID),
		Title:      title,
		Date:       post.Date,
		Excerpt:    excerpt,
		Content:    post.Content.Rendered,
		AudioURL:   FindAudioURL(post.Content.Rendered),
		ImageURL:   featuredImage(post.Embedded, sermonImageSeed),
		Categories: categoryNames(post.Embedded),
	}
}

// NormalizeSermons maps a listing page.
func NormalizeSermons(posts []RawPost, decode bool) []model.Sermon {
	sermons := make([]model.Sermon, 0, len(posts))
	for _, post := range posts {
		sermons = append(sermons, NormalizeSermon(post, decode))
	}
	return sermons
}

// featuredImage returns the first embedded featured-media URL, or the shared
// per-kind placeholder.
func featuredImage(emb *Embedded, seed string) string {
	if emb != nil && len(emb.FeaturedMedia) > 0 && emb.FeaturedMedia[0].SourceURL != "" {
		return emb.FeaturedMedia[0].SourceURL
	}
	return placeholderImage(seed)
}

// categoryNames returns the names of the first embedded term group.
func categoryNames(emb *Embedded) []string {
	names := []string{}
	if emb == nil || len(emb.Terms) == 0 {
		return names
	}
	for _, term := range emb.Terms[0] {
		names = append(names, term.Name)
	}
	return names
}

package wordpress

import "encoding/json"

// Raw shapes of the upstream CMS records. Only the consumed fields are
// declared; everything else rides along in the untyped field maps so the
// alias fallback chains can see it.

// RenderedField is the CMS convention for HTML-bearing fields.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// EmbeddedMedia is one entry of the embedded featured-media list.
type EmbeddedMedia struct {
	SourceURL string `json:"source_url"`
	AltText   string `json:"alt_text,omitempty"`
}

// EmbeddedTerm is one taxonomy term (category, tag).
type EmbeddedTerm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Embedded carries the `_embed` expansion of a record.
type Embedded struct {
	FeaturedMedia []EmbeddedMedia  `json:"wp:featuredmedia"`
	Terms         [][]EmbeddedTerm `json:"wp:term"`
}

// RawPost is a CMS post as returned by the posts endpoint.
type RawPost struct {
	ID       int64         `json:"id"`
	Date     string        `json:"date"`
	Title    RenderedField `json:"title"`
	Content  RenderedField `json:"content"`
	Excerpt  RenderedField `json:"excerpt"`
	Embedded *Embedded     `json:"_embedded"`
}

// RawPlaylist is a CMS playlist record. Different plugin versions put the
// track list under different field names, at the top level or under meta, so
// the full object is retained for the alias chain to probe.
type RawPlaylist struct {
	ID       int64                      `json:"id"`
	Title    RenderedField              `json:"title"`
	Content  RenderedField              `json:"content"`
	Embedded *Embedded                  `json:"_embedded"`
	Meta     map[string]json.RawMessage `json:"meta"`

	fields map[string]json.RawMessage
}

// UnmarshalJSON decodes the known fields and keeps the whole object around
// for field-alias probing.
func (p *RawPlaylist) UnmarshalJSON(data []byte) error {
	type plain RawPlaylist
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*p = RawPlaylist(decoded)
	p.fields = fields
	return nil
}

// Field returns a top-level field of the raw record.
func (p *RawPlaylist) Field(name string) (json.RawMessage, bool) {
	raw, ok := p.fields[name]
	return raw, ok
}

// MetaField returns a field of the record's meta object.
func (p *RawPlaylist) MetaField(name string) (json.RawMessage, bool) {
	raw, ok := p.Meta[name]
	return raw, ok
}

// RawQuote is a CMS quote record.
type RawQuote struct {
	ID      int64         `json:"id"`
	Date    string        `json:"date"`
	Content RenderedField `json:"content"`
}

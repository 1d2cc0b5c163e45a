package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SermonID identifies either a real post or a virtual track. Real posts carry
// the CMS numeric id; a virtual track uses its audio URL as a stable string id.
// The two id spaces never collide: one is always numeric, the other never is.
// Serialized form keeps the distinction (JSON number vs JSON string) so the
// stored bookmark sets stay compatible with what clients already hold.
type SermonID struct {
	num     int64
	str     string
	numeric bool
}

// PostID builds the id of a real CMS post.
func PostID(id int64) SermonID {
	return SermonID{num: id, numeric: true}
}

// TrackID builds the id of a virtual track from its audio URL.
func TrackID(url string) SermonID {
	return SermonID{str: url}
}

// IsZero reports whether the id is unset.
func (id SermonID) IsZero() bool {
	return !id.numeric && id.str == ""
}

// IsNumeric reports whether the id addresses a real post.
func (id SermonID) IsNumeric() bool {
	return id.numeric
}

func (id SermonID) String() string {
	if id.numeric {
		return strconv.FormatInt(id.num, 10)
	}
	return id.str
}

// MarshalJSON writes numeric ids as JSON numbers and track ids as strings.
func (id SermonID) MarshalJSON() ([]byte, error) {
	if id.numeric {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}
	return json.Marshal(id.str)
}

// UnmarshalJSON accepts either form.
func (id *SermonID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = TrackID(s)
		return nil
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("sermon id must be a number or a string: %w", err)
	}
	*id = PostID(n)
	return nil
}

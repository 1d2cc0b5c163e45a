package model

// Quote is a daily-inspiration quote. Content is plain text: markup stripped
// and HTML entities decoded during normalization.
type Quote struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

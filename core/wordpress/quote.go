package wordpress

import (
	"time"

	"gracefm/model"
)

// NormalizeQuote maps a raw quote record: markup stripped, then entities
// decoded through the fixed table.
func NormalizeQuote(raw RawQuote) model.Quote {
	return model.Quote{
		ID:      raw.ID,
		Content: DecodeEntities(StripTags(raw.Content.Rendered)),
		Date:    raw.Date,
	}
}

// NormalizeQuotes maps a listing page.
func NormalizeQuotes(raws []RawQuote) []model.Quote {
	quotes := make([]model.Quote, 0, len(raws))
	for _, raw := range raws {
		quotes = append(quotes, NormalizeQuote(raw))
	}
	return quotes
}

// DailyIndex picks the quote-of-the-day slot: calendar day-of-year modulo
// pool size. The day number comes from the calendar date in now's location,
// so a DST transition never skews the count. The same calendar day always
// yields the same index for a fixed pool size.
func DailyIndex(now time.Time, poolSize int) int {
	if poolSize <= 0 {
		return 0
	}
	return now.YearDay() % poolSize
}

// DailyQuote returns the quote of the day from a fetched pool, or nil for an
// empty pool.
func DailyQuote(quotes []model.Quote, now time.Time) *model.Quote {
	if len(quotes) == 0 {
		return nil
	}
	return &quotes[DailyIndex(now, len(quotes))]
}

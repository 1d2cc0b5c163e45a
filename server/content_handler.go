package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"gracefm/cache"
	"gracefm/core/wordpress"
	"gracefm/logger"
	"gracefm/model"
)

// Content endpoints serve the normalized view of the upstream CMS. Upstream
// failures degrade to empty listings: clients of this surface cannot tell
// "CMS down" from "no content", which keeps the UI silent instead of broken.

// queryInt reads an integer query parameter with a fallback.
func queryInt(r *http.Request, name string, fallback int) int {
	if value := r.URL.Query().Get(name); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

// GetSermonsHandler lists normalized sermons, one page at a time. A page
// shorter than perPage tells the client there are no more pages. The
// optional include parameter fetches an explicit id set instead (bookmark
// listings); category filters by category id.
func (h *APIHandler) GetSermonsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if include := r.URL.Query().Get("include"); include != "" {
		ids := make([]int64, 0)
		for _, part := range strings.Split(include, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				ids = append(ids, id)
			}
		}
		sermons, err := h.cms.FetchSermonsByIDs(ctx, ids)
		if err != nil {
			logger.Warn("sermon include fetch degraded to empty", logger.ErrorField(err))
			sermons = []model.Sermon{}
		}
		writeJSON(w, http.StatusOK, sermons)
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", h.cfg.WPPageSize)
	categoryID := int64(queryInt(r, "category", 0))

	key := cache.SermonPageKey(page, perPage, categoryID)
	var sermons []model.Sermon
	if cache.GetJSON(ctx, key, &sermons) {
		writeJSON(w, http.StatusOK, sermons)
		return
	}

	sermons, err := h.cms.FetchSermons(ctx, page, perPage, categoryID)
	if err != nil {
		logger.Warn("sermon fetch degraded to empty", logger.Int("page", page), logger.ErrorField(err))
		writeJSON(w, http.StatusOK, []model.Sermon{})
		return
	}

	cache.SetJSON(ctx, key, sermons, h.cfg.CacheTTL)
	writeJSON(w, http.StatusOK, sermons)
}

// GetSermonHandler returns one normalized sermon by its numeric post id.
func (h *APIHandler) GetSermonHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid sermon id")
		return
	}

	sermon, err := h.cms.FetchSermonByID(r.Context(), id)
	if err != nil {
		logger.Warn("sermon fetch failed", logger.Int64("id", id), logger.ErrorField(err))
		writeError(w, http.StatusNotFound, "sermon not found")
		return
	}
	if sermon == nil {
		writeError(w, http.StatusNotFound, "sermon not found")
		return
	}

	writeJSON(w, http.StatusOK, sermon)
}

// SearchSermonsHandler runs a full-text search over posts. Results carry
// entity-decoded titles and excerpts.
func (h *APIHandler) SearchSermonsHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, []model.Sermon{})
		return
	}

	sermons, err := h.cms.SearchSermons(r.Context(), query)
	if err != nil {
		logger.Warn("search degraded to empty", logger.String("query", query), logger.ErrorField(err))
		sermons = []model.Sermon{}
	}

	writeJSON(w, http.StatusOK, sermons)
}

// GetPlaylistsHandler lists normalized playlists.
func (h *APIHandler) GetPlaylistsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", h.cfg.WPPageSize)

	key := cache.PlaylistPageKey(page, perPage)
	var playlists []model.Playlist
	if cache.GetJSON(ctx, key, &playlists) {
		writeJSON(w, http.StatusOK, playlists)
		return
	}

	playlists, err := h.cms.FetchPlaylists(ctx, page, perPage)
	if err != nil {
		logger.Warn("playlist fetch degraded to empty", logger.Int("page", page), logger.ErrorField(err))
		writeJSON(w, http.StatusOK, []model.Playlist{})
		return
	}

	cache.SetJSON(ctx, key, playlists, h.cfg.CacheTTL)
	writeJSON(w, http.StatusOK, playlists)
}

// GetQuotesHandler lists normalized quotes.
func (h *APIHandler) GetQuotesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", 30)

	quotes := h.quotePool(ctx, page, perPage)
	writeJSON(w, http.StatusOK, quotes)
}

// GetDailyQuoteHandler picks the quote of the day from the fetched pool.
// The choice is deterministic for a calendar day and a fixed pool size.
func (h *APIHandler) GetDailyQuoteHandler(w http.ResponseWriter, r *http.Request) {
	quotes := h.quotePool(r.Context(), 1, 30)

	quote := wordpress.DailyQuote(quotes, time.Now())
	if quote == nil {
		writeError(w, http.StatusNotFound, "no quotes available")
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// quotePool returns one cached page of quotes, empty on upstream failure.
func (h *APIHandler) quotePool(ctx context.Context, page, perPage int) []model.Quote {
	key := cache.QuotePageKey(page, perPage)
	var quotes []model.Quote
	if cache.GetJSON(ctx, key, &quotes) {
		return quotes
	}

	quotes, err := h.cms.FetchQuotes(ctx, page, perPage)
	if err != nil {
		logger.Warn("quote fetch degraded to empty", logger.Int("page", page), logger.ErrorField(err))
		return []model.Quote{}
	}

	cache.SetJSON(ctx, key, quotes, h.cfg.CacheTTL)
	return quotes
}

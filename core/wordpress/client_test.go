package wordpress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gracefm/model"
)

func TestFetchSermons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "12", r.URL.Query().Get("categories"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "title": {"rendered": "First"}}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sermons, err := client.FetchSermons(context.Background(), 2, 10, 12)

	require.NoError(t, err)
	require.Len(t, sermons, 1)
	assert.Equal(t, model.PostID(1), sermons[0].ID)
	assert.Equal(t, "First", sermons[0].Title)
}

func TestFetchSermonByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sermon, err := client.FetchSermonByID(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, sermon)
}

func TestFetchSermonByIDUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sermon, err := client.FetchSermonByID(context.Background(), 1)

	assert.Error(t, err)
	assert.Nil(t, sermon)
}

func TestFetchSermonsByIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3,7", r.URL.Query().Get("include"))
		w.Write([]byte(`[{"id": 3, "title": {"rendered": "A &amp; B"}}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sermons, err := client.FetchSermonsByIDs(context.Background(), []int64{3, 7})

	require.NoError(t, err)
	require.Len(t, sermons, 1)
	// Bookmark listings render plain text, so entities are decoded.
	assert.Equal(t, "A & B", sermons[0].Title)
}

func TestFetchSermonsByIDsEmptySet(t *testing.T) {
	client := NewClient("http://127.0.0.1:1") // must not be contacted
	sermons, err := client.FetchSermonsByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, sermons)
	assert.NotNil(t, sermons)
}

func TestSearchSermons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "grace", r.URL.Query().Get("search"))
		assert.Equal(t, "20", r.URL.Query().Get("per_page"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sermons, err := client.SearchSermons(context.Background(), "grace")

	require.NoError(t, err)
	assert.Empty(t, sermons)
}

func TestFetchPlaylists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sr_playlist", r.URL.Path)
		w.Write([]byte(`[{"id": 4, "title": {"rendered": "Series"},
			"tracks": [{"title": "T", "url": "t.mp3"}]}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	playlists, err := client.FetchPlaylists(context.Background(), 1, 10)

	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, []model.Track{{Title: "T", URL: "t.mp3"}}, playlists[0].Tracks)
}

func TestFetchQuotes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		w.Write([]byte(`[{"id": 2, "content": {"rendered": "<p>Hope</p>"}}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	quotes, err := client.FetchQuotes(context.Background(), 1, 50)

	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Hope", quotes[0].Content)
}

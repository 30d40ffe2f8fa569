package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deusflow/noticias/internal/news"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
  <channel>
    <title>Blog de pruebas</title>
    <link>https://blog.example.dev</link>
    <description>Noticias</description>
    <item>
      <title>Cómo usar Docker en desarrollo</title>
      <link>https://blog.example.dev/docker</link>
      <description><![CDATA[<p>Una guía <b>práctica</b> para el desarrollo con contenedores.</p>]]></description>
      <content:encoded><![CDATA[<p>Primer párrafo.</p><p>Segundo &amp; último.</p>]]></content:encoded>
      <pubDate>Sat, 01 Jun 2024 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Sin fecha</title>
      <guid>https://blog.example.dev/sin-fecha</guid>
      <description>Texto plano</description>
    </item>
  </channel>
</rss>`

func TestSource_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	src := NewSource(Options{Timeout: 5 * time.Second, UserAgent: "noticias-test"})
	feed := news.Feed{Name: "Blog", URL: srv.URL, Category: "Tutoriales"}

	entries, err := src.Fetch(context.Background(), feed)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "noticias-test", gotUA)

	first := entries[0]
	assert.Equal(t, "Cómo usar Docker en desarrollo", first.Title)
	assert.Equal(t, "Una guía práctica para el desarrollo con contenedores.", first.Summary)
	assert.Equal(t, "Primer párrafo.\nSegundo & último.", first.Body)
	assert.Equal(t, "https://blog.example.dev/docker", first.Link)
	assert.Equal(t, "Blog", first.SourceName)
	assert.Equal(t, "Tutoriales", first.Category)
	require.NotNil(t, first.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)))

	second := entries[1]
	assert.Equal(t, "https://blog.example.dev/sin-fecha", second.Link)
	assert.Nil(t, second.PublishedAt)
	assert.Empty(t, second.Body)
}

func TestSource_FetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/down":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			_, _ = w.Write([]byte("this is not a feed"))
		}
	}))
	defer srv.Close()

	src := NewSource(Options{Timeout: 5 * time.Second})

	_, err := src.Fetch(context.Background(), news.Feed{Name: "down", URL: srv.URL + "/down"})
	assert.Error(t, err)

	_, err = src.Fetch(context.Background(), news.Feed{Name: "garbage", URL: srv.URL + "/garbage"})
	assert.Error(t, err)
}

func TestSource_FetchCancelled(t *testing.T) {
	src := NewSource(Options{Timeout: time.Second, Delay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := src.Fetch(ctx, news.Feed{Name: "x", URL: "http://127.0.0.1:1/feed"})
	assert.Error(t, err)
}

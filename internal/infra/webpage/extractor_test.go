package webpage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/web-summarizer/internal/domain/summarizer"
	"github.com/yanqian/web-summarizer/internal/infra/webpage"
)

func TestExtractText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "longest content selector wins",
			html: `<html><body>
				<article>Short teaser.</article>
				<div class="content">This block carries the real body of the story and is longer.</div>
			</body></html>`,
			want: "This block carries the real body of the story and is longer.",
		},
		{
			name: "tie keeps the earlier selector",
			html: `<html><body>
				<main>second</main>
				<article>first!</article>
			</body></html>`,
			want: "first!",
		},
		{
			name: "noise nested inside content is removed",
			html: `<html><body><article>
				<header>Site header</header>
				<p>Paragraph one.</p>
				<script>var tracking = true;</script>
				<div class="ads">Buy now</div>
				<p>Paragraph two.</p>
				<div id="comments">First!</div>
			</article></body></html>`,
			want: "Paragraph one. Paragraph two.",
		},
		{
			name: "falls back to body text",
			html: `<html><body><div><p>Plain</p>
				<p>page</p></div><footer>Copyright</footer></body></html>`,
			want: "Plain page",
		},
		{
			name: "only noise yields empty text",
			html: `<html><head><style>body{}</style></head><body>
				<nav>Home | About</nav>
				<header>Logo</header>
				<iframe src="https://ads.example"></iframe>
				<div class="advertisement">Sponsored</div>
				<footer>Footer links</footer>
				<script>console.log("x")</script>
			</body></html>`,
			want: "",
		},
		{
			name: "empty document",
			html: "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := webpage.ExtractText(tt.html)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/article":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><nav>Menu</nav><article><h1>Title</h1> <p>Body&nbsp;text.</p></article></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	extractor := webpage.NewExtractor(webpage.NewFetcher(webpage.WithHTTPClient(server.Client())))

	t.Run("returns cleaned main text", func(t *testing.T) {
		t.Parallel()
		text, err := extractor.Extract(context.Background(), server.URL+"/article")
		require.NoError(t, err)
		assert.Equal(t, "Title Body text.", text)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()
		_, err := extractor.Extract(context.Background(), server.URL+"/missing")
		var fetchErr *summarizer.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	})
}

package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2101.00001v1</id>
    <title>Forecasting Estuarine Salinity
 with Recurrent Networks</title>
    <summary>  We present a recurrent model
 for salinity forecasting.  </summary>
    <published>2021-01-01T00:00:00Z</published>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2102.00002v1</id>
    <title>Second Paper</title>
    <summary>Second summary.</summary>
    <published>2021-02-01T00:00:00Z</published>
  </entry>
</feed>`

func TestArxivRunFormatsBlocks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "all:salinity forecasting", r.URL.Query().Get("search_query"))
		assert.Equal(t, "5", r.URL.Query().Get("max_results"))
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(arxivFixture))
	}))
	defer server.Close()

	adapter := NewArxivAdapter(5, testLogger())
	adapter.baseURL = server.URL

	raw, err := adapter.Run(context.Background(), "salinity forecasting")
	require.NoError(t, err)

	blocks := strings.Split(raw, "\n\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, "Forecasting Estuarine Salinity with Recurrent Networks\n"+
		"http://arxiv.org/abs/2101.00001v1\n"+
		"We present a recurrent model for salinity forecasting.", blocks[0])
	assert.Equal(t, "Second Paper\nhttp://arxiv.org/abs/2102.00002v1\nSecond summary.", blocks[1])
}

func TestArxivRunErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := NewArxivAdapter(5, testLogger())
	adapter.baseURL = server.URL

	_, err := adapter.Run(context.Background(), "anything")
	require.Error(t, err)
}

func TestArxivRunEmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	}))
	defer server.Close()

	adapter := NewArxivAdapter(0, testLogger())
	adapter.baseURL = server.URL

	raw, err := adapter.Run(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "", raw)
}

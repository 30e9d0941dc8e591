package corpus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectServer(t *testing.T) *httptest.Server {
	t.Helper()
	workOne := "名月《めいげつ》や池《いけ》をめぐりて夜《よ》もすがら\n" +
		"\n" +
		"つきあかりいしにしみいるあきのおと\n"
	workTwo := "名月《めいげつ》や池《いけ》をめぐりて夜《よ》もすがら\n" +
		"\n" +
		"あきのよのつきはしずかにてらしけり\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/one.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipWithEntry(t, "one.txt", toShiftJIS(t, workOne)))
	})
	mux.HandleFunc("/two.zip", func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipWithEntry(t, "two.txt", []byte(workTwo)))
	})
	return httptest.NewServer(mux)
}

func TestCollect(t *testing.T) {
	srv := collectServer(t)
	defer srv.Close()

	works := []Work{
		{"松尾芭蕉", "一集", srv.URL + "/one.zip"},
		{"正岡子規", "二集", srv.URL + "/two.zip"},
		{"高浜虚子", "三集", srv.URL + "/missing.zip"},
	}
	c := NewCollector(
		NewFetcher(5*time.Second, nil),
		NewExtractor(nil, 2),
		works, 0.6, 0, nil,
	)

	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	// duplicate across works keeps the first attribution
	assert.Equal(t, "名月や池をめぐりて夜もすがら", got[0].Text)
	assert.Equal(t, "松尾芭蕉", got[0].Author)
	assert.Equal(t, "つきあかりいしにしみいるあきのおと", got[1].Text)
	assert.Equal(t, "あきのよのつきはしずかにてらしけり", got[2].Text)
	assert.Equal(t, "正岡子規", got[2].Author)
}

func TestCollectConfidenceCutoff(t *testing.T) {
	srv := collectServer(t)
	defer srv.Close()

	works := []Work{
		{"松尾芭蕉", "一集", srv.URL + "/one.zip"},
	}
	c := NewCollector(
		NewFetcher(5*time.Second, nil),
		NewExtractor(nil, 2),
		works, 0.85, 0, nil,
	)

	got, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "名月や池をめぐりて夜もすがら", got[0].Text)
}

func TestCollectCancelled(t *testing.T) {
	srv := collectServer(t)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	works := []Work{
		{"松尾芭蕉", "一集", srv.URL + "/one.zip"},
		{"正岡子規", "二集", srv.URL + "/two.zip"},
	}
	c := NewCollector(
		NewFetcher(5*time.Second, nil),
		NewExtractor(nil, 2),
		works, 0.6, time.Second, nil,
	)

	_, err := c.Collect(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cards/base1-4", r.URL.Path)
		w.Write([]byte(`{"id": "base1-4", "name": "Charizard"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	card, err := client.GetCard(context.Background(), "base1-4")

	require.NoError(t, err)
	assert.Equal(t, "base1-4", card.ID)
	assert.Equal(t, "Charizard", card.Name)
}

func TestGetCardUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetCard(context.Background(), "nope-1")

	assert.Error(t, err)
}

func TestGetCardUnidentifiableRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.GetCard(context.Background(), "base1-4")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no identifiable record")
}

func TestSearchCardsShortPageHasExactTotal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards":
			assert.Contains(t, r.URL.RawQuery, "name=charizard")
			assert.Contains(t, r.URL.RawQuery, "pagination:page=2")
			w.Write([]byte(`[{"id": "base1-4"}, {"id": "swsh1-25"}]`))
		case "/cards/base1-4":
			w.Write([]byte(`{"id": "base1-4", "name": "Charizard", "hp": 120}`))
		case "/cards/swsh1-25":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.SearchCards(context.Background(), SearchParams{
		Query:    "charizard",
		Page:     2,
		PageSize: 20,
	})

	require.NoError(t, err)
	require.Len(t, result.Data, 2)

	// first hit upgraded to full details
	var full RawCard
	require.NoError(t, json.Unmarshal(result.Data[0], &full))
	require.NotNil(t, full.HP)
	assert.Equal(t, 120, *full.HP)

	// failed detail fetch keeps the brief record
	var brief RawCard
	require.NoError(t, json.Unmarshal(result.Data[1], &brief))
	assert.Equal(t, "swsh1-25", brief.ID)
	assert.Nil(t, brief.HP)

	// short page: 1 full page of 20 + 2 on this one
	require.NotNil(t, result.TotalCount)
	assert.Equal(t, 22, *result.TotalCount)
}

func TestSearchCardsFullPageTotalUnknown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cards" {
			w.Write([]byte(`[{"id": "a-1"}, {"id": "a-2"}]`))
			return
		}
		w.Write([]byte(`{"id": "` + r.URL.Path[len("/cards/"):] + `"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	result, err := client.SearchCards(context.Background(), SearchParams{Page: 1, PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, result.Data, 2)
	assert.Nil(t, result.TotalCount)
}

func TestPassthroughEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["payload"]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	for name, call := range map[string]func() (json.RawMessage, error){
		"sets":       func() (json.RawMessage, error) { return client.Sets(ctx) },
		"set":        func() (json.RawMessage, error) { return client.Set(ctx, "base1") },
		"rarities":   func() (json.RawMessage, error) { return client.Rarities(ctx) },
		"types":      func() (json.RawMessage, error) { return client.Types(ctx) },
		"categories": func() (json.RawMessage, error) { return client.Categories(ctx) },
	} {
		raw, err := call()
		require.NoError(t, err, name)
		assert.JSONEq(t, `["payload"]`, string(raw), name)
	}
}

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

func newAPITS(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for path, body := range routes {
		b := body
		mux.HandleFunc(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(b)
		})
	}

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestCategories(t *testing.T) {
	ts := newAPITS(t, map[string]any{
		"/categories": map[string]any{
			"categories": []map[string]any{
				{"id": 1, "category_name": "Indoor"},
				{"id": 2, "category_name": "Roses"},
			},
		},
	})

	c := NewClient(ts.URL)
	cats, err := c.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, Category{ID: 2, Name: "Roses"}, cats[1])
}

func TestAllPlants(t *testing.T) {
	ts := newAPITS(t, map[string]any{
		"/plants": map[string]any{
			"plants": []map[string]any{
				{"id": 7, "name": "Monstera", "price": 250, "category": "Indoor"},
			},
		},
	})

	c := NewClient(ts.URL)
	plants, err := c.AllPlants(context.Background())
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "Monstera", plants[0].Name)
	assert.Equal(t, Price(250), plants[0].Price)
}

func TestPlantDetailAcceptsBothRootKeys(t *testing.T) {
	for name, body := range map[string]any{
		"plants key": map[string]any{"plants": map[string]any{"id": 7, "name": "Monstera"}},
		"plant key":  map[string]any{"plant": map[string]any{"id": 7, "name": "Monstera"}},
	} {
		t.Run(name, func(t *testing.T) {
			ts := newAPITS(t, map[string]any{"/plant/7": body})

			c := NewClient(ts.URL)
			p, err := c.PlantDetail(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, 7, p.ID)
			assert.Equal(t, "Monstera", p.Name)
		})
	}
}

func TestPlantDetailMalformed(t *testing.T) {
	ts := newAPITS(t, map[string]any{
		"/plant/7": map[string]any{"data": map[string]any{"id": 7}},
	})

	c := NewClient(ts.URL)
	_, err := c.PlantDetail(context.Background(), 7)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestNon2xxIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)
	_, err := c.AllPlants(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestTransportErrorIsUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	ts.Close() // nothing listening anymore

	c := NewClient(ts.URL)
	_, err := c.Categories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestUndecodableBodyIsMalformed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	t.Cleanup(ts.Close)

	c := NewClient(ts.URL)
	_, err := c.AllPlants(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPriceDecoding(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want Price
	}{
		"number":         {`{"price": 250}`, 250},
		"decimal":        {`{"price": 12.5}`, 12.5},
		"numeric string": {`{"price": "99"}`, 99},
		"null":           {`{"price": null}`, 0},
		"garbage string": {`{"price": "free"}`, 0},
		"absent":         {`{}`, 0},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var p Plant
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &p))
			assert.Equal(t, tc.want, p.Price)
		})
	}
}

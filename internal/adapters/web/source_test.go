package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.HandlerFunc, mapper Mapper) *Source {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewSource(srv.URL+"/suggest?q=", srv.Client(), mapper)
}

func TestFetchBareArrayShape(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["cat","car"]`))
	}, nil)

	got, err := src.Fetch(context.Background(), "ca")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "car"}, got)
}

func TestFetchResultsObjectShape(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":["cat","car"]}`))
	}, nil)

	got, err := src.Fetch(context.Background(), "ca")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "car"}, got)
}

func TestFetchMapperShape(t *testing.T) {
	mapper := func(body []byte) ([]string, bool) {
		return []string{"mapped"}, true
	}
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[{"label":"mapped"}]}`))
	}, mapper)

	got, err := src.Fetch(context.Background(), "ca")
	require.NoError(t, err)
	assert.Equal(t, []string{"mapped"}, got)
}

func TestFetchBareArrayWinsOverMapper(t *testing.T) {
	mapper := func(body []byte) ([]string, bool) {
		t.Fatal("mapper must not be consulted when a built-in shape matches")
		return nil, false
	}
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["cat"]`))
	}, mapper)

	got, err := src.Fetch(context.Background(), "ca")
	require.NoError(t, err)
	assert.Equal(t, []string{"cat"}, got)
}

func TestFetchUnrecognizedShapeYieldsEmpty(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected":true}`))
	}, nil)

	got, err := src.Fetch(context.Background(), "ca")
	require.NoError(t, err, "an unrecognized shape is not an error")
	assert.Empty(t, got)
}

func TestFetchQueryIsURLEncoded(t *testing.T) {
	var rawQuery string
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}, nil)

	_, err := src.Fetch(context.Background(), "c a&t")
	require.NoError(t, err)
	assert.Equal(t, "q=c+a%26t", rawQuery)
}

func TestFetchHTTPErrorStatus(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}, nil)

	_, err := src.Fetch(context.Background(), "ca")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusInternalServerError, fe.Status)
}

func TestFetchTransportFailure(t *testing.T) {
	// Point at a server that is already closed.
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL + "/suggest?q="
	srv.Close()

	src := NewSource(endpoint, nil, nil)
	_, err := src.Fetch(context.Background(), "ca")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, fe.Status)
	assert.Error(t, errors.Unwrap(fe))
}

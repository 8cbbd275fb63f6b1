package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modelserver/config"
)

func TestStaticIgnoresInput(t *testing.T) {
	b := NewStatic("a,b,c", "text/csv")

	inputs := [][]byte{nil, []byte(""), []byte("1,2,3,4"), {0x00, 0xff, 0x10}}
	for _, in := range inputs {
		p, err := b.Score(context.Background(), &Request{Body: in, ContentType: "text/csv"})
		require.NoError(t, err)
		assert.Equal(t, "a,b,c", string(p.Body))
		assert.Equal(t, "text/csv", p.ContentType)
	}
}

func TestStaticReturnsCopy(t *testing.T) {
	b := NewStatic("a,b,c", "text/csv")

	p, err := b.Score(context.Background(), &Request{})
	require.NoError(t, err)
	p.Body[0] = 'z'

	p, err = b.Score(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", string(p.Body))
}

func TestRemoteForwardsRequest(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invocations", r.URL.Path)
		assert.Equal(t, "text/csv", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "1,2,3,4", string(body))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"score":0.5}`))
	}))
	defer ts.Close()

	b, err := NewRemote(ts.URL+"/invocations", time.Second)
	require.NoError(t, err)

	p, err := b.Score(context.Background(), &Request{
		Body:        []byte("1,2,3,4"),
		ContentType: "text/csv",
		Accept:      "application/json",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"score":0.5}`, string(p.Body))
	assert.Equal(t, "application/json", p.ContentType)
}

func TestRemoteStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	b, err := NewRemote(ts.URL, time.Second)
	require.NoError(t, err)

	_, err = b.Score(context.Background(), &Request{})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, string(statusErr.Body), "model not loaded")
}

func TestRemoteUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	b, err := NewRemote(url, time.Second)
	require.NoError(t, err)

	_, err = b.Score(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewRemoteRejectsBadURL(t *testing.T) {
	_, err := NewRemote("ftp://example.com", time.Second)
	assert.Error(t, err)

	_, err = NewRemote("://", time.Second)
	assert.Error(t, err)
}

func TestNewSelectsImplementation(t *testing.T) {
	b, err := New(config.BackendConfig{
		Type:   config.BackendStatic,
		Static: config.StaticBackendConfig{Body: "a,b,c", ContentType: "text/csv"},
	})
	require.NoError(t, err)
	assert.IsType(t, &Static{}, b)

	b, err = New(config.BackendConfig{Type: config.BackendRemote, URL: "http://localhost:9000", Timeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &Remote{}, b)

	_, err = New(config.BackendConfig{Type: "keras"})
	assert.Error(t, err)
}

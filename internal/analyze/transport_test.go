package analyze

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRequestLifecycle(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Invalid text! Please try again!"))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	var mu sync.Mutex
	var states []ReadyState
	req := NewHTTPRequest(srv.Client(), base)
	req.OnReadyStateChange(func(s ReadyState) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, s)
	})
	req.Open(http.MethodGet, RequestURL(DefaultEndpoint, DefaultParam, "a&b"))
	req.Send()
	require.NoError(t, req.Wait())

	assert.Equal(t, []ReadyState{Opened, HeadersReceived, Loading, Done}, states)
	assert.Equal(t, "a&b", gotQuery.Get("textToAnalyze"))
	assert.Equal(t, Done, req.ReadyState())
	assert.Equal(t, http.StatusBadRequest, req.Status())
	assert.Equal(t, "Invalid text! Please try again!", req.ResponseText())
}

func TestHTTPRequestNetworkFailureNeverDone(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	srv.Close()

	doc := NewTerminalDocument(map[string]string{DefaultInputID: "hello"}, &bytes.Buffer{})
	doc.content[DefaultOutputID] = "previous"

	var req *HTTPRequest
	h := NewHandler(doc, func() Request {
		req = NewHTTPRequest(&http.Client{}, base)
		return req
	})
	h.Run()

	assert.Error(t, req.Wait())
	assert.Equal(t, Opened, req.ReadyState())
	assert.Equal(t, "previous", doc.InnerHTML(DefaultOutputID))
}

func TestHandlerOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultEndpoint, r.URL.Path)
		w.Write([]byte("anger 0.1<br>The dominant emotion is joy."))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	var out bytes.Buffer
	doc := NewTerminalDocument(map[string]string{DefaultInputID: "I am happy"}, &out)

	var req *HTTPRequest
	h := NewHandler(doc, func() Request {
		req = NewHTTPRequest(srv.Client(), base)
		return req
	})
	h.Run()
	require.NoError(t, req.Wait())

	assert.Equal(t, "anger 0.1<br>The dominant emotion is joy.", doc.InnerHTML(DefaultOutputID))
	assert.Equal(t, "anger 0.1\nThe dominant emotion is joy.\n", out.String())
}

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emotionDetector", r.URL.Path)
		if r.URL.Query().Get("textToAnalyze") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("Invalid text! Please try again!"))
			return
		}
		w.Write([]byte("The system response is joy.<br>The dominant emotion is joy."))
	}))
	defer srv.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	require.NoError(t, runAnalyze(cmd, srv.URL, "I am happy"))
	assert.Equal(t, "The system response is joy.\nThe dominant emotion is joy.\n", out.String())

	out.Reset()
	require.NoError(t, runAnalyze(cmd, srv.URL, ""))
	assert.Equal(t, "Invalid text! Please try again!\n", out.String())
}

func TestRunAnalyzeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	assert.Error(t, runAnalyze(cmd, srv.URL, "hello"))
	assert.Empty(t, out.String())
}

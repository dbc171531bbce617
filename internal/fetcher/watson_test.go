package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatsonDetectEmotion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, DefaultWatsonModelID, r.Header.Get("grpc-metadata-mm-model-id"))

		var body watsonRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "I love this new technology.", body.RawDocument.Text)

		w.Write([]byte(`{"emotionPredictions":[{"emotion":{"anger":0.01,"disgust":0.02,"fear":0.03,"joy":0.97,"sadness":0.04},"target":""}],"producerId":{"name":"Ensemble Aggregated Emotion Workflow"}}`))
	}))
	defer srv.Close()

	c := NewWatsonClient(srv.URL, "", time.Second)
	scores, err := c.DetectEmotion(context.Background(), "I love this new technology.")
	require.NoError(t, err)
	assert.Equal(t, 0.97, scores.Joy)
	assert.Equal(t, 0.01, scores.Anger)
	assert.Equal(t, 0.04, scores.Sadness)
}

func TestWatsonErrors(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		noPred bool
	}{
		{"bad status", http.StatusBadRequest, `{"code":3,"message":"empty text"}`, false},
		{"invalid json", http.StatusOK, `not json`, false},
		{"no predictions", http.StatusOK, `{"emotionPredictions":[]}`, true},
		{"no emotion", http.StatusOK, `{"emotionPredictions":[{}]}`, true},
		{"partial emotion", http.StatusOK, `{"emotionPredictions":[{"emotion":{"joy":0.9}}]}`, true},
		{"empty emotion", http.StatusOK, `{"emotionPredictions":[{"emotion":{}}]}`, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewWatsonClient(srv.URL, "model", time.Second).DetectEmotion(context.Background(), "x")
			require.Error(t, err)
			assert.Equal(t, tc.noPred, errors.Is(err, ErrNoPrediction))
		})
	}
}

func TestWatsonUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewWatsonClient(srv.URL, "", time.Second).DetectEmotion(context.Background(), "x")
	assert.Error(t, err)
}

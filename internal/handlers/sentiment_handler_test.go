package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"SecondChance/internal/config"
	"SecondChance/internal/handlers"
	"SecondChance/internal/sentiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubAnalyzer struct {
	score float64
	err   error
}

func (s stubAnalyzer) Score(string) (float64, error) { return s.score, s.err }

func sentimentRouter(a handlers.Analyzer) http.Handler {
	cfg := &config.Config{AuthSecret: "test-secret"}
	return handlers.NewSentimentHandler(a, zap.NewNop().Sugar(), cfg).Router
}

func postSentiment(t *testing.T, router http.Handler, query string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/sentiment"+query, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestSentiment_Buckets(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.33, "neutral"},
		{0.34, "positive"},
		{-0.01, "negative"},
		{0, "neutral"},
	}
	for _, tt := range tests {
		rr := postSentiment(t, sentimentRouter(stubAnalyzer{score: tt.score}), "?sentence=whatever")
		require.Equal(t, http.StatusOK, rr.Code)

		body := decode[map[string]any](t, rr)
		assert.Equal(t, tt.want, body["sentiment"], "score %v", tt.score)
		assert.Equal(t, tt.score, body["sentimentScore"])
	}
}

func TestSentiment_MissingSentence(t *testing.T) {
	router := sentimentRouter(stubAnalyzer{})

	rr := postSentiment(t, router, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No sentence provided", decode[map[string]string](t, rr)["error"])

	rr = postSentiment(t, router, "?sentence=")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSentiment_AnalyzerFailure(t *testing.T) {
	rr := postSentiment(t, sentimentRouter(stubAnalyzer{err: errors.New("stemmer exploded")}), "?sentence=hi")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Error performing sentiment analysis", decode[map[string]string](t, rr)["message"])
	assert.NotContains(t, rr.Body.String(), "exploded")
}

func TestSentiment_RealAnalyzer(t *testing.T) {
	a, err := sentiment.NewAnalyzer("english")
	require.NoError(t, err)
	router := sentimentRouter(a)

	rr := postSentiment(t, router, "?sentence=a+great+chair")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "positive", decode[map[string]any](t, rr)["sentiment"])

	rr = postSentiment(t, router, "?sentence=terrible")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "negative", decode[map[string]any](t, rr)["sentiment"])

	// одни пробелы — тоже пустое предложение
	rr = postSentiment(t, router, "?sentence=+++")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

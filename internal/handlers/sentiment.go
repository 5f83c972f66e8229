package handlers

import (
	"errors"
	"net/http"

	"SecondChance/internal/sentiment"

	"go.uber.org/zap"
)

// Analyzer оценивает тональность текста.
type Analyzer interface {
	Score(sentence string) (float64, error)
}

// SentimentAPI хендлер сервиса тональности.
type SentimentAPI struct {
	Analyzer Analyzer
	Logger   *zap.SugaredLogger
}

func NewSentimentAPI(analyzer Analyzer, logger *zap.SugaredLogger) *SentimentAPI {
	return &SentimentAPI{Analyzer: analyzer, Logger: logger}
}

type sentimentResponse struct {
	SentimentScore float64 `json:"sentimentScore"`
	Sentiment      string  `json:"sentiment"`
}

// Score POST /sentiment?sentence=...
func (h *SentimentAPI) Score(w http.ResponseWriter, r *http.Request) {
	sentence := r.URL.Query().Get("sentence")
	if sentence == "" {
		h.Logger.Errorw("No sentence provided")
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No sentence provided"})
		return
	}

	score, err := h.Analyzer.Score(sentence)
	if errors.Is(err, sentiment.ErrEmptySentence) {
		h.Logger.Errorw("No sentence provided", "raw", sentence)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No sentence provided"})
		return
	}
	if err != nil {
		h.Logger.Errorw("Error performing sentiment analysis", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error performing sentiment analysis"})
		return
	}

	label := sentiment.Label(score)
	h.Logger.Infow("Sentiment analysis result", "score", score, "sentiment", label)
	writeJSON(w, http.StatusOK, sentimentResponse{SentimentScore: score, Sentiment: label})
}

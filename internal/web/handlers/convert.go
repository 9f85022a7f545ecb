package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jusunglee/kana/internal/kana"
	"github.com/jusunglee/kana/internal/metrics"
)

// Slack for JSON framing and escapes on top of the text limit.
const bodyOverhead = 1024

type ConvertHandler struct {
	log          *slog.Logger
	maxTextBytes int
}

func NewConvertHandler(log *slog.Logger, maxTextBytes int) *ConvertHandler {
	return &ConvertHandler{log: log, maxTextBytes: maxTextBytes}
}

type convertRequest struct {
	Text string `json:"text"`
	To   string `json:"to"`
}

type convertResponse struct {
	Text   string      `json:"text"`
	To     kana.Script `json:"to"`
	Result string      `json:"result"`
	Counts kana.Counts `json:"counts"`
}

// Create handles POST /api/v1/convert.
func (h *ConvertHandler) Create(w http.ResponseWriter, r *http.Request) {
	// JSON escapes can take up to six bytes per input byte.
	r.Body = http.MaxBytesReader(w, r.Body, int64(h.maxTextBytes)*6+bodyOverhead)

	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.convert(w, r, req)
}

// Get handles GET /api/v1/convert?text=...&to=...
func (h *ConvertHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.convert(w, r, convertRequest{Text: q.Get("text"), To: q.Get("to")})
}

func (h *ConvertHandler) convert(w http.ResponseWriter, r *http.Request, req convertRequest) {
	to, err := kana.ParseScript(req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, `"to" must be "hiragana" or "katakana"`)
		return
	}
	if len(req.Text) > h.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge, h.tooLargeMessage())
		return
	}

	counts := kana.Detect(req.Text)
	result := kana.Convert(req.Text, to)

	shifted := counts.Hiragana
	if to == kana.Hiragana {
		shifted = counts.Katakana
	}
	metrics.ConversionsTotal.WithLabelValues(to.String()).Inc()
	metrics.ConvertedRunesTotal.WithLabelValues(to.String()).Add(float64(shifted))
	h.log.DebugContext(r.Context(), "converted text", "to", to, "bytes", len(req.Text), "shifted", shifted)

	writeJSON(w, http.StatusOK, convertResponse{
		Text:   req.Text,
		To:     to,
		Result: result,
		Counts: counts,
	})
}

func (h *ConvertHandler) tooLargeMessage() string {
	return fmt.Sprintf("text exceeds %d bytes", h.maxTextBytes)
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"jadoo/model"
	"jadoo/provider"
)

const (
	MsgInvalidBody      = "Invalid request body"
	MsgMessageRequired  = "Message is required"
	MsgKeyNotConfigured = "OpenAI API key is not configured. Please add OPENAI_API_KEY to your environment variables."
	MsgKeyInvalid       = "OpenAI API key is invalid or not configured. Please check your OPENAI_API_KEY environment variable."
	MsgQuotaExceeded    = "⚠️ OpenAI quota exceeded. Please check your billing at https://platform.openai.com/account/billing to restore full functionality."
	apiErrorPrefix      = "API Error: "
)

const maxBodyBytes = 1 << 20

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	outcome := s.chat(w, r)
	s.metrics.Observe(outcome, time.Since(start))
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) string {
	if s.opts.Provider == nil {
		s.errorResponse(w, http.StatusInternalServerError, MsgKeyNotConfigured)
		return OutcomeConfigError
	}

	req, err := decodeChatRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejecting unparseable chat body")
		s.errorResponse(w, http.StatusBadRequest, MsgInvalidBody)
		return OutcomeBadRequest
	}
	if req.Message == "" {
		s.errorResponse(w, http.StatusBadRequest, MsgMessageRequired)
		return OutcomeBadRequest
	}

	personality := model.ResolvePersonality(req.PersonalityMode)
	prompt := BuildPrompt(personality.SystemPrompt, req.History, req.Message)

	log := s.logger.With().
		Str("personality", personality.ID).
		Int("history", len(req.History)).
		Logger()

	reply, err := s.opts.Provider.Complete(r.Context(), model.CompletionRequest{
		Messages:    prompt,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	if err != nil {
		switch provider.Classify(err) {
		case provider.KindAuth:
			log.Error().Err(err).Msg("provider rejected credential")
			s.errorResponse(w, http.StatusInternalServerError, MsgKeyInvalid)
			return OutcomeAuthError
		case provider.KindQuota:
			log.Warn().Err(err).Msg("provider quota exhausted, serving demo reply")
			s.writeJSON(w, http.StatusOK, model.ChatResponse{
				Reply:  s.demoReply(),
				IsDemo: true,
				Error:  MsgQuotaExceeded,
			})
			return OutcomeDemo
		default:
			log.Error().Err(err).Msg("provider call failed")
			s.errorResponse(w, http.StatusInternalServerError, apiErrorPrefix+provider.Message(err))
			return OutcomeProviderError
		}
	}

	log.Debug().Int("reply_len", len(reply)).Msg("completion served")
	s.writeJSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
	return OutcomeSuccess
}

// chatBody defers decoding of each field so a wrongly typed one falls back to
// its default instead of failing the request.
type chatBody struct {
	Message         json.RawMessage `json:"message"`
	History         json.RawMessage `json:"history"`
	PersonalityMode json.RawMessage `json:"personalityMode"`
}

// decodeChatRequest fails only when the body is not a JSON object (or null).
// A non-string message reads as missing, a non-string personalityMode as the
// default, and a non-array history as empty. History entries that are not
// role/content string pairs are skipped.
func decodeChatRequest(r io.Reader) (model.ChatRequest, error) {
	var body chatBody
	if err := json.NewDecoder(r).Decode(&body); err != nil {
		return model.ChatRequest{}, err
	}

	var req model.ChatRequest
	if json.Unmarshal(body.Message, &req.Message) != nil {
		req.Message = ""
	}
	if json.Unmarshal(body.PersonalityMode, &req.PersonalityMode) != nil {
		req.PersonalityMode = ""
	}

	var items []json.RawMessage
	if json.Unmarshal(body.History, &items) == nil {
		for _, item := range items {
			var m model.ChatMessage
			if json.Unmarshal(item, &m) == nil {
				req.History = append(req.History, m)
			}
		}
	}
	return req, nil
}

// BuildPrompt assembles system prompt, user/assistant history in order, then
// the new user message. History entries with any other role are dropped.
func BuildPrompt(systemPrompt string, history []model.ChatMessage, message string) []model.ChatMessage {
	prompt := make([]model.ChatMessage, 0, len(history)+2)
	prompt = append(prompt, model.ChatMessage{Role: model.RoleSystem, Content: systemPrompt})
	for _, h := range history {
		if h.Role == model.RoleUser || h.Role == model.RoleAssistant {
			prompt = append(prompt, model.ChatMessage{Role: h.Role, Content: h.Content})
		}
	}
	return append(prompt, model.ChatMessage{Role: model.RoleUser, Content: message})
}

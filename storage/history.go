package storage

import (
	"encoding/json"
	"fmt"

	"jadoo/model"
)

const HistoryKey = "conversation-history"

// HistoryStore keeps the whole conversation as one JSON array under HistoryKey.
type HistoryStore struct {
	kv KV
}

func NewHistoryStore(kv KV) *HistoryStore {
	return &HistoryStore{kv: kv}
}

// Save replaces the stored snapshot.
func (h *HistoryStore) Save(messages []model.Message) error {
	if messages == nil {
		messages = []model.Message{}
	}
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := h.kv.Set(HistoryKey, string(data)); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

// Load returns the stored conversation. A missing key yields an empty list.
func (h *HistoryStore) Load() ([]model.Message, error) {
	raw, ok, err := h.kv.Get(HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if !ok {
		return []model.Message{}, nil
	}

	var messages []model.Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	if messages == nil {
		messages = []model.Message{}
	}
	return messages, nil
}

// Clear removes the key rather than storing an empty array.
func (h *HistoryStore) Clear() error {
	if err := h.kv.Delete(HistoryKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

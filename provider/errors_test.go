package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyByMessage(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{errors.New("Incorrect API key provided"), KindAuth},
		{errors.New("401 Unauthorized"), KindAuth},
		{errors.New("Rate limit reached for gpt-4o-mini"), KindQuota},
		{errors.New("You exceeded your current quota"), KindQuota},
		{errors.New("invalid API key and quota exceeded"), KindAuth},
		{errors.New("connection refused"), KindOther},
		{fmt.Errorf("wrapped: %w", ErrMissingAPIKey), KindAuth},
		{nil, KindOther},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "auth", KindAuth.String())
	assert.Equal(t, "quota", KindQuota.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestMessageFallsBackToErrorText(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}

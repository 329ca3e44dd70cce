package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		expectedKey string
	}{
		{
			name:        "detail",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "42",
			expectedKey: "wikiquiz:quiz:detail:42",
		},
		{
			name:        "empty identifier",
			serviceName: "quiz",
			objectType:  "detail",
			identifier:  "",
			expectedKey: "wikiquiz:quiz:detail:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier))
		})
	}
}

func TestQuizDetailKey(t *testing.T) {
	assert.Equal(t, "wikiquiz:quiz:detail:7", QuizDetailKey(7))
	assert.Equal(t, "wikiquiz:quiz:detail:999999", QuizDetailKey(999999))
}

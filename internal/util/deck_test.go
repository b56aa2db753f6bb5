package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swhelper/siege-backend/internal/model"
)

func TestNormalizeDeckKeyIsOrderIndependent(t *testing.T) {
	permutations := [][]any{
		{"Lushen", "Bella", "Verde"},
		{"Verde", "Lushen", "Bella"},
		{"Bella", "Verde", "Lushen"},
		{" Verde", "Bella ", "Lushen"},
	}
	for _, slots := range permutations {
		key, ok := NormalizeDeckKey(slots...)
		assert.True(t, ok)
		assert.Equal(t, "Bella|Lushen|Verde", key)
	}
}

func TestNormalizeDeckKeyDropsEmptySlots(t *testing.T) {
	key, ok := NormalizeDeckKey("", " Lushen ", nil)
	assert.True(t, ok)
	assert.Equal(t, "Lushen", key)

	key, ok = NormalizeDeckKey("", "  ", nil)
	assert.False(t, ok)
	assert.Equal(t, "", key)
}

func TestNormalizeDeckKeyKeepsDuplicates(t *testing.T) {
	key, ok := NormalizeDeckKey("Lushen", "Bella", "Lushen")
	assert.True(t, ok)
	assert.Equal(t, "Bella|Lushen|Lushen", key)
}

func TestNormalizeDeckKeyUsesCodePointOrder(t *testing.T) {
	key, _ := NormalizeDeckKey("apple", "Zed", "Ámbar")
	assert.Equal(t, "Zed|apple|Ámbar", key)
}

func TestNormalizeDeckKeyCoercesNumbers(t *testing.T) {
	key, ok := NormalizeDeckKey(2.0, "A", 10)
	assert.True(t, ok)
	assert.Equal(t, "10|2|A", key)
}

func TestNormalizeDeck(t *testing.T) {
	key, ok := NormalizeDeck(model.Deck{"C", "", "A"})
	assert.True(t, ok)
	assert.Equal(t, "A|C", key)
}

func TestLeaderDeckKey(t *testing.T) {
	tests := []struct {
		name string
		deck model.Deck
		key  string
		ok   bool
	}{
		{"followers sorted", model.Deck{"Verde", "Lushen", "Bella"}, "Verde|Bella|Lushen", true},
		{"leader kept in front", model.Deck{"Bella", "Verde", "Lushen"}, "Bella|Lushen|Verde", true},
		{"trimmed", model.Deck{" Verde ", "Lushen", " Bella"}, "Verde|Bella|Lushen", true},
		{"no leader", model.Deck{"", "Lushen", "Bella"}, "", false},
		{"missing follower", model.Deck{"Verde", "", "Bella"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := LeaderDeckKey(tt.deck)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestParseLeaderDeckKey(t *testing.T) {
	key, ok := ParseLeaderDeckKey("Verde|Lushen|Bella")
	assert.True(t, ok)
	assert.Equal(t, "Verde|Bella|Lushen", key)

	_, ok = ParseLeaderDeckKey("Verde|Lushen")
	assert.False(t, ok)
	_, ok = ParseLeaderDeckKey("Verde|Lushen|Bella|Chasun")
	assert.False(t, ok)
}

package util

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/swhelper/siege-backend/internal/model"
)

// DeckKeySep joins sorted slots of a deck identity. Monster names never contain it.
const DeckKeySep = "|"

// NormalizeDeckKey builds the order-independent identity of a composition:
// slots are coerced to text and trimmed, empty slots dropped, the rest sorted
// by code point and joined with DeckKeySep. Duplicate slots are kept.
// ok is false when no slot survives.
func NormalizeDeckKey(slots ...any) (key string, ok bool) {
	cleaned := make([]string, 0, len(slots))
	for _, slot := range slots {
		if s := CoerceText(slot); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return "", false
	}
	slices.Sort(cleaned)
	return strings.Join(cleaned, DeckKeySep), true
}

func NormalizeDeck(deck model.Deck) (string, bool) {
	return NormalizeDeckKey(deck[0], deck[1], deck[2])
}

// LeaderDeckKey builds the identity of a full three-monster deck whose first slot is
// its leader: the leader stays in front and the two followers are sorted. ok is false
// unless all three slots are filled.
func LeaderDeckKey(deck model.Deck) (key string, ok bool) {
	leader := CoerceText(deck[0])
	a, b := CoerceText(deck[1]), CoerceText(deck[2])
	if leader == "" || a == "" || b == "" {
		return "", false
	}
	if b < a {
		a, b = b, a
	}
	return strings.Join([]string{leader, a, b}, DeckKeySep), true
}

// ParseLeaderDeckKey normalizes a "leader|a|b" key given with followers in any order.
func ParseLeaderDeckKey(raw string) (string, bool) {
	parts := strings.Split(raw, DeckKeySep)
	if len(parts) != model.DeckSlots {
		return "", false
	}
	return LeaderDeckKey(model.Deck{parts[0], parts[1], parts[2]})
}

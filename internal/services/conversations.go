package services

import (
	"sort"

	"github.com/reloc/community-backend/internal/models"
)

type pairKey struct {
	lo, hi string
}

func keyOf(m models.Message) pairKey {
	if m.ReceiverID < m.SenderID {
		return pairKey{lo: m.ReceiverID, hi: m.SenderID}
	}
	return pairKey{lo: m.SenderID, hi: m.ReceiverID}
}

// LatestPerPair keeps the greatest (created_at, id) message of every unordered
// sender/receiver pair and returns them newest first. Input order is irrelevant.
func LatestPerPair(messages []models.Message) []models.Message {
	latest := make(map[pairKey]models.Message, len(messages))
	for _, m := range messages {
		k := keyOf(m)
		if cur, ok := latest[k]; !ok || cur.Before(m) {
			latest[k] = m
		}
	}

	out := make([]models.Message, 0, len(latest))
	for _, m := range latest {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[j].Before(out[i])
	})
	return out
}

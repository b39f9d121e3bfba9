// Package chatid encodes an unordered pair of user identifiers into a single
// conversation key and back.
package chatid

import (
	"fmt"
	"strings"

	"github.com/reloc/community-backend/internal/apperrors"
)

// Separator joins the two identifiers. Identifiers must not contain it.
const Separator = "_"

// Encode returns the same id for (a, b) and (b, a).
func Encode(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + Separator + b
}

// Decode splits a chat id into its two identifiers in sorted order.
// The order carries no sender/receiver meaning.
func Decode(id string) (string, string, error) {
	parts := strings.Split(id, Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: chat id %q", apperrors.ErrMalformedIdentifier, id)
	}
	return parts[0], parts[1], nil
}

// Other returns the participant of id that is not uid, or uid itself for a self-pair.
func Other(id, uid string) (string, error) {
	a, b, err := Decode(id)
	if err != nil {
		return "", err
	}
	switch uid {
	case a:
		return b, nil
	case b:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q is not part of chat %q", apperrors.ErrValidation, uid, id)
}

// Persisted string form of a Layout.
//
// One comma-separated token per slot: "-1" for an empty slot, the id for a
// single candidate, or the candidate ids joined with '|' in priority order.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	slotSeparator      = ","
	candidateSeparator = "|"
)

// EncodeLayout returns the persisted form of l.
func EncodeLayout(l *Layout) string {
	var sb strings.Builder
	sb.Grow(len(l.slots) * 5)
	for i, ids := range l.slots {
		if i > 0 {
			sb.WriteString(slotSeparator)
		}
		if len(ids) == 0 {
			sb.WriteString(strconv.Itoa(NoItem))
			continue
		}
		for j, id := range ids {
			if j > 0 {
				sb.WriteString(candidateSeparator)
			}
			sb.WriteString(strconv.Itoa(id))
		}
	}
	return sb.String()
}

// DecodeLayout parses an encoded layout for tag. Slots that fail to parse are
// left empty; the returned layout is always usable and err, when non-nil,
// wraps ErrMalformedSlot and names the dropped positions.
func DecodeLayout(tag, encoded string) (*Layout, error) {
	l := NewLayout(tag)
	if encoded == "" {
		return l, nil
	}

	tokens := strings.Split(encoded, slotSeparator)
	l.slots = make([][]int, len(tokens))

	var bad []string
	for i, token := range tokens {
		ids, err := decodeSlot(strings.TrimSpace(token))
		if err != nil {
			bad = append(bad, fmt.Sprintf("%d (%q)", i, token))
			continue
		}
		l.slots[i] = ids
	}
	if len(bad) > 0 {
		return l, fmt.Errorf("%w: positions %s", ErrMalformedSlot, strings.Join(bad, ", "))
	}
	return l, nil
}

// decodeSlot parses one token. A nil result is an empty slot.
func decodeSlot(token string) ([]int, error) {
	if token == "" {
		return nil, nil
	}
	if !strings.Contains(token, candidateSeparator) {
		id, err := strconv.Atoi(token)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			return nil, nil
		}
		return []int{id}, nil
	}

	var ids []int
	for _, part := range strings.Split(token, candidateSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if id < 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

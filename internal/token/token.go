// Package token converts a filter model to and from a compact string that
// can be embedded in a shareable URL.
//
// The token is standard base64 over a sparse JSON record with short keys.
// Only fields that differ from their defaults are written, so an absent key
// always means "default". There is no version tag: new keys may be added
// but an existing key is never given a new meaning, and readers ignore
// keys they do not know.
package token

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
)

// Record keys. Never repurpose one.
const (
	keyTree       = "t"
	keySupport    = "s"
	keyLimitBreak = "lb"
	keyMinWins    = "wc"
	keyMinWhite   = "wh"
	keyRank       = "r"
	keyFollowers  = "f"
	keySearch     = "q"
)

var categoryKeys = map[filter.Category]string{
	filter.Blue:              "b",
	filter.Pink:              "p",
	filter.Green:             "g",
	filter.White:             "w",
	filter.MainBlue:          "mb",
	filter.MainPink:          "mp",
	filter.MainGreen:         "mg",
	filter.MainWhite:         "mw",
	filter.OptionalWhite:     "ow",
	filter.OptionalMainWhite: "omw",
}

// Encode produces the token for m. Synthetic entry IDs and tree display
// fields are not persisted.
func Encode(m *filter.Model) string {
	data, err := json.Marshal(record(m))
	if err != nil {
		// The record only holds ints, strings and slices of them.
		panic(fmt.Sprintf("token: marshal record: %v", err))
	}

	return base64.StdEncoding.EncodeToString(data)
}

func record(m *filter.Model) map[string]any {
	rec := make(map[string]any)

	for _, c := range filter.Categories() {
		entries := m.Entries(c)

		if c.Scope() == filter.ScopeOptional {
			var ids []int

			for _, e := range entries {
				if !e.IsWildcard() {
					ids = append(ids, e.FactorID)
				}
			}

			if len(ids) > 0 {
				rec[categoryKeys[c]] = ids
			}

			continue
		}

		if len(entries) == 0 {
			continue
		}

		tuples := make([][3]*int, 0, len(entries))
		for _, e := range entries {
			tuples = append(tuples, tuple(e))
		}

		rec[categoryKeys[c]] = tuples
	}

	if t := m.Tree(); !t.IsEmpty() {
		var slots [ancestry.NumSlots]*int

		for i, id := range t.Identities() {
			id := id
			if id > 0 {
				slots[i] = &id
			}
		}

		rec[keyTree] = slots
	}

	sc := m.Scalars()

	if !sc.IsDefault(filter.ScalarSupport) {
		if sc.SupportCardID > 0 {
			rec[keySupport] = sc.SupportCardID
		}

		if sc.LimitBreak != filter.DefaultLimitBreak {
			rec[keyLimitBreak] = sc.LimitBreak
		}
	}

	if !sc.IsDefault(filter.ScalarMinWins) {
		rec[keyMinWins] = sc.MinWins
	}

	if !sc.IsDefault(filter.ScalarMinWhiteSparks) {
		rec[keyMinWhite] = sc.MinWhiteSparks
	}

	if !sc.IsDefault(filter.ScalarMinRank) {
		rec[keyRank] = sc.MinRank
	}

	if !sc.IsDefault(filter.ScalarMaxFollowers) {
		rec[keyFollowers] = sc.MaxFollowers
	}

	if !sc.IsDefault(filter.ScalarSearchIDs) {
		rec[keySearch] = sc.SearchIDs
	}

	return rec
}

func tuple(e filter.FactorFilter) [3]*int {
	lo, hi := e.Min, e.Max

	var t [3]*int
	if !e.IsWildcard() {
		id := e.FactorID
		t[0] = &id
	}

	t[1], t[2] = &lo, &hi

	return t
}

// Decode rebuilds a model from a token. Tree identities are assigned in
// slot order through [ancestry.Tree.Assign], so duplicate family lines are
// resolved exactly as interactive edits would resolve them.
//
// Any failure returns an error wrapping [ErrInvalidToken] and no model.
func Decode(tok string, chars ancestry.Characters) (*filter.Model, error) {
	data, err := decodeText(tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	var raw map[string]json.RawMessage

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrInvalidToken, ErrMalformedJSON, err)
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: %w: record is null", ErrInvalidToken, ErrSchema)
	}

	m := filter.New()

	if err := decodeLists(m, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if err := decodeTree(m, raw, chars); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if err := decodeScalars(m, raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return m, nil
}

// decodeText accepts standard, URL-safe and unpadded base64, optionally
// still percent-escaped from a URL. A literal '+' stays a '+', and a space
// left behind by form decoding is read back as one.
func decodeText(tok string) ([]byte, error) {
	tok = strings.TrimSpace(tok)

	if strings.Contains(tok, "%") {
		unescaped, err := url.PathUnescape(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedText, err)
		}

		tok = unescaped
	}

	tok = strings.ReplaceAll(tok, " ", "+")

	if tok == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedText)
	}

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var firstErr error

	for _, enc := range encodings {
		data, err := enc.DecodeString(tok)
		if err == nil {
			return data, nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrMalformedText, firstErr)
}

func decodeLists(m *filter.Model, raw map[string]json.RawMessage) error {
	for _, c := range filter.Categories() {
		key := categoryKeys[c]

		msg, ok := raw[key]
		if !ok {
			continue
		}

		if c.Scope() == filter.ScopeOptional {
			var ids []int
			if err := json.Unmarshal(msg, &ids); err != nil {
				return schemaError(key, err.Error())
			}

			for _, id := range ids {
				if id <= 0 || !filter.ValidFactorID(id) {
					return schemaError(key, fmt.Sprintf("factor id %d", id))
				}

				m.Add(c, id)
			}

			continue
		}

		var tuples [][]*int
		if err := json.Unmarshal(msg, &tuples); err != nil {
			return schemaError(key, err.Error())
		}

		for i, t := range tuples {
			factorID, lo, hi, err := parseTuple(t)
			if err != nil {
				return schemaError(fmt.Sprintf("%s[%d]", key, i), err.Error())
			}

			entry, _ := m.Add(c, factorID)

			// Levels were validated by parseTuple.
			_ = m.SetRange(entry.ID, lo, hi)
		}
	}

	return nil
}

func parseTuple(t []*int) (int, int, int, error) {
	if len(t) != 3 {
		return 0, 0, 0, fmt.Errorf("want [factor, min, max], got %d elements", len(t))
	}

	if t[1] == nil || t[2] == nil {
		return 0, 0, 0, fmt.Errorf("missing level bound")
	}

	lo, hi := *t[1], *t[2]
	if !filter.ValidLevel(lo) || !filter.ValidLevel(hi) {
		return 0, 0, 0, fmt.Errorf("%w: %d-%d", filter.ErrLevelOutOfRange, lo, hi)
	}

	factorID := filter.Wildcard
	if t[0] != nil {
		factorID = *t[0]
		if !filter.ValidFactorID(factorID) {
			return 0, 0, 0, fmt.Errorf("factor id %d", factorID)
		}
	}

	return factorID, lo, hi, nil
}

func decodeTree(m *filter.Model, raw map[string]json.RawMessage, chars ancestry.Characters) error {
	msg, ok := raw[keyTree]
	if !ok {
		return nil
	}

	var slots []*int
	if err := json.Unmarshal(msg, &slots); err != nil {
		return schemaError(keyTree, err.Error())
	}

	if len(slots) != ancestry.NumSlots {
		return schemaError(keyTree, fmt.Sprintf("want %d slots, got %d", ancestry.NumSlots, len(slots)))
	}

	for i, id := range slots {
		if id != nil && *id <= 0 {
			return schemaError(keyTree, fmt.Sprintf("slot %d identity %d", i, *id))
		}
	}

	for i, id := range slots {
		if id != nil {
			m.Tree().Assign(ancestry.Slot(i), *id, chars)
		}
	}

	return nil
}

func decodeScalars(m *filter.Model, raw map[string]json.RawMessage) error {
	def := filter.DefaultScalars()

	support, err := intField(raw, keySupport, def.SupportCardID, 0)
	if err != nil {
		return err
	}

	limitBreak, err := intField(raw, keyLimitBreak, def.LimitBreak, 0)
	if err != nil {
		return err
	}

	if limitBreak > filter.MaxLimitBreak {
		return schemaError(keyLimitBreak, fmt.Sprintf("limit break %d", limitBreak))
	}

	minWins, err := intField(raw, keyMinWins, def.MinWins, 0)
	if err != nil {
		return err
	}

	minWhite, err := intField(raw, keyMinWhite, def.MinWhiteSparks, 0)
	if err != nil {
		return err
	}

	rank, err := intField(raw, keyRank, def.MinRank, filter.DefaultMinRank)
	if err != nil {
		return err
	}

	followers, err := intField(raw, keyFollowers, def.MaxFollowers, 0)
	if err != nil {
		return err
	}

	search := def.SearchIDs

	if msg, ok := raw[keySearch]; ok {
		if err := json.Unmarshal(msg, &search); err != nil {
			return schemaError(keySearch, err.Error())
		}
	}

	m.SetSupport(support, limitBreak)
	m.SetMinWins(minWins)
	m.SetMinWhiteSparks(minWhite)
	m.SetMinRank(rank)
	m.SetMaxFollowers(followers)
	m.SetSearchIDs(search)

	return nil
}

func intField(raw map[string]json.RawMessage, key string, def, lowest int) (int, error) {
	msg, ok := raw[key]
	if !ok {
		return def, nil
	}

	var n int
	if err := json.Unmarshal(msg, &n); err != nil {
		return 0, schemaError(key, err.Error())
	}

	if n < lowest {
		return 0, schemaError(key, fmt.Sprintf("%d below %d", n, lowest))
	}

	return n, nil
}

func schemaError(key, detail string) error {
	return fmt.Errorf("%w: %q: %s", ErrSchema, key, detail)
}

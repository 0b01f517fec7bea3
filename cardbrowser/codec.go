package cardbrowser

import (
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// SlugToKey turns a pill slug such as "family-friendly" into the payload key
// "Family Friendly". Only the first character of each segment is upper-cased;
// the payload keys must use exactly this casing or lookups miss.
func SlugToKey(slug string) CriterionKey {
	if slug == "" {
		return ""
	}
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		parts[i] = strings.ToUpper(string(r)) + part[size:]
	}
	return CriterionKey(strings.Join(parts, " "))
}

// KeysFromSlugs converts a list of slugs, as found in a preset definition.
func KeysFromSlugs(slugs []string) []CriterionKey {
	out := make([]CriterionKey, 0, len(slugs))
	for _, slug := range slugs {
		key := SlugToKey(strings.TrimSpace(slug))
		if key == "" {
			continue
		}
		out = append(out, key)
	}
	return out
}

// ParseCriteriaPayload decodes the flat JSON object embedded in a slide.
// Missing and malformed data both yield an empty payload.
func ParseCriteriaPayload(raw string) Payload {
	payload, _ := decodePayload(raw)
	return payload
}

// ParseCriteriaPayloadLogged behaves like ParseCriteriaPayload and reports
// malformed input at debug level.
func ParseCriteriaPayloadLogged(raw string, logger *zap.Logger) Payload {
	payload, err := decodePayload(raw)
	if err != nil && logger != nil {
		logger.Debug("malformed criteria payload", zap.Error(err), zap.Int("bytes", len(raw)))
	}
	return payload
}

func decodePayload(raw string) (Payload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Payload{}, nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Payload{}, err
	}
	if decoded == nil {
		return Payload{}, nil
	}
	return Payload(decoded), nil
}

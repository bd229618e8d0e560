package csvwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is the CSV cell form of a quote's tags: a JSON array of strings,
// for example ["books","travel"], or [] when there are no tags.
type TagList []string

// MarshalCSV implements gocsv.TypeMarshaller
func (t TagList) MarshalCSV() (string, error) {
	return EncodeTags(t)
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (t *TagList) UnmarshalCSV(cell string) error {
	tags, err := DecodeTags(cell)
	if err != nil {
		return err
	}
	*t = tags
	return nil
}

// EncodeTags renders tags in the tags column format. Invalid UTF-8 in a
// tag is replaced with U+FFFD.
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(tags); err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeTags recovers the tag sequence from a tags column cell
func DecodeTags(cell string) ([]string, error) {
	tags := []string{}
	if cell == "" {
		return tags, nil
	}
	if err := json.Unmarshal([]byte(cell), &tags); err != nil {
		return nil, fmt.Errorf("invalid tags cell %q: %w", cell, err)
	}
	return tags, nil
}

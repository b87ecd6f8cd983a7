package metadata

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Derived holds the fields extracted from a metadata document
type Derived struct {
	Name       *string
	Tags       []string
	Categories []string
	ImageRef   *string
}

// Extract parses a JSON document and derives tags, categories and the image reference
func Extract(document []byte) (*Derived, error) {
	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	derived := &Derived{
		Name:       firstString(doc, "name"),
		Tags:       firstList(doc, "tags", "keywords"),
		Categories: firstList(doc, "categories", "category"),
		ImageRef:   firstString(doc, "image", "image_url", "imageUrl"),
	}

	return derived, nil
}

// firstList returns the first key holding a string array, or a single string.
// Comma separated strings are split.
func firstList(doc map[string]any, keys ...string) []string {
	for _, key := range keys {
		switch value := doc[key].(type) {
		case []any:
			list := make([]string, 0, len(value))
			for _, item := range value {
				if s, ok := item.(string); ok {
					if s = strings.TrimSpace(s); s != "" {
						list = append(list, s)
					}
				}
			}
			if len(list) > 0 {
				return list
			}
		case string:
			var list []string
			for _, part := range strings.Split(value, ",") {
				if part = strings.TrimSpace(part); part != "" {
					list = append(list, part)
				}
			}
			if len(list) > 0 {
				return list
			}
		}
	}

	return []string{}
}

func firstString(doc map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return &s
			}
		}
	}
	return nil
}

package uri

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// DataURI is a parsed RFC 2397 data URI
type DataURI struct {
	MimeType string
	Data     []byte
}

// ParseDataURI parses data:[<mediatype>][;base64],<data>
func ParseDataURI(raw string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(raw, "data:")
	if !ok {
		return nil, fmt.Errorf("invalid data URI: missing data: prefix")
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URI: missing comma")
	}

	isBase64 := false
	mimeType := "text/plain"
	params := strings.Split(header, ";")
	if params[0] != "" {
		mimeType = strings.ToLower(strings.TrimSpace(params[0]))
	}
	for _, param := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(param), "base64") {
			isBase64 = true
		}
	}

	var data []byte
	if isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			// some producers omit padding
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, fmt.Errorf("invalid data URI: bad base64 payload: %w", err)
			}
		}
		data = decoded
	} else {
		decoded, err := url.PathUnescape(payload)
		if err != nil {
			return nil, fmt.Errorf("invalid data URI: bad percent encoding: %w", err)
		}
		data = []byte(decoded)
	}

	return &DataURI{MimeType: mimeType, Data: data}, nil
}

package exchange

import (
	"encoding/base64"
	"strings"
)

// decodeBase64Audio decodes a base64 audio payload that may carry a
// data-URI header ("data:<mime>;base64,").
func decodeBase64Audio(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, "base64,"); i >= 0 {
			encoded = encoded[i+len("base64,"):]
		}
	}

	return base64.StdEncoding.DecodeString(encoded)
}

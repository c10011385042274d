package common

import (
	"encoding/base64"
	"errors"
	"strings"
)

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// BasicAuthHeader encodes username and password as an HTTP Basic credential.
func BasicAuthHeader(username string, password []byte) string {
	raw := make([]byte, 0, len(username)+1+len(password))
	raw = append(raw, username...)
	raw = append(raw, ':')
	raw = append(raw, password...)
	defer WipeByteArray(raw)

	return BasicAuthScheme + " " + base64.StdEncoding.EncodeToString(raw)
}

// ParseBasicAuthHeader is the inverse of BasicAuthHeader.
func ParseBasicAuthHeader(header string) (username, password string, err error) {
	scheme, encoded, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, BasicAuthScheme) {
		return "", "", errors.New("invalid auth header format")
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", errors.New("invalid auth header encoding")
	}

	username, password, ok = strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", errors.New("invalid auth header credentials")
	}
	return username, password, nil
}

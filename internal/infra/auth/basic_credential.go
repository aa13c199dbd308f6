package auth

import (
	"encoding/base64"
	"strings"

	domainerrors "listingmanager/internal/domain/errors"
)

// BasicScheme is the authorization scheme the marketplace API expects.
const BasicScheme = "Basic"

// NewBasicCredential formats an Authorization header value from an
// identifier/secret pair: "Basic " + base64(identifier:secret).
// The identifier may not contain a colon, and neither half may be empty.
func NewBasicCredential(identifier, secret string) (string, error) {
	switch {
	case identifier == "":
		return "", domainerrors.ErrInvalidCredential.WithDetails("empty identifier")
	case secret == "":
		return "", domainerrors.ErrInvalidCredential.WithDetails("empty secret")
	case strings.Contains(identifier, ":"):
		return "", domainerrors.ErrInvalidCredential.WithDetails("identifier contains ':'")
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(identifier + ":" + secret))

	return BasicScheme + " " + encoded, nil
}

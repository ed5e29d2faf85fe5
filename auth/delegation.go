// SPDX-License-Identifier: ice License 1.0

package auth

import (
	"strings"

	"github.com/pkg/errors"
)

// DelegatedToken extracts the raw provider credential from a delegation header
// value. The scheme prefix is case-sensitive and includes the trailing space,
// f.e. `Google ya29...` or `Facebook EAAG...`.
func DelegatedToken(headerValue, provider string) (string, error) {
	if headerValue == "" {
		return "", errors.Wrapf(ErrMissingProviderToken, "no delegated token for provider:%v", provider)
	}
	var scheme string
	switch provider {
	case ProviderGoogle:
		scheme = "Google "
	case ProviderFacebook:
		scheme = "Facebook "
	default:
		return "", errors.Wrapf(ErrUnsupportedProvider, "no delegation scheme for provider:%v", provider)
	}
	token := strings.TrimPrefix(headerValue, scheme)
	if token == headerValue || token == "" {
		return "", errors.Wrapf(ErrWrongTokenScheme, "delegated token for provider:%v does not start with `%v`", provider, strings.TrimSpace(scheme))
	}

	return token, nil
}

// TruncateSecret shortens a credential to a loggable prefix.
func TruncateSecret(secret string) string {
	if len(secret) <= secretPrefixLength {
		return secret
	}

	return secret[:secretPrefixLength] + "..."
}

// SPDX-License-Identifier: ice License 1.0

// Package terror attaches a structured data payload to an error, so that
// upstream provider failure bodies survive the trip from an adapter up to the
// http response without being flattened into the error string.
package terror

// Public API.

type (
	// Err decorates an error with the payload that should accompany it in the
	// response body. The facebook adapter uses it to carry the graph api error
	// (code, type, subcode, trace id) alongside the wrapped error chain.
	Err struct {
		error
		Data map[string]any `json:"data"`
	}
)

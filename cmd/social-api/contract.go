// SPDX-License-Identifier: ice License 1.0

package main

import (
	"github.com/PierluigiRizzuExagon/social-api/auth"
	"github.com/PierluigiRizzuExagon/social-api/facebook"
	"github.com/PierluigiRizzuExagon/social-api/googlebusiness"
)

// Private API.

const (
	applicationYamlKey = "social-api"
	swaggerRoot        = "/docs"

	delegatedTokenRequired = "DELEGATED_TOKEN_REQUIRED"
)

type (
	// | service implements server.State and is the entrypoint wiring of the whole api.
	service struct {
		authClient           auth.Client
		facebookClient       facebook.Client
		googleBusinessClient googlebusiness.Client
	}
)

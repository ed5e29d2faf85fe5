// SPDX-License-Identifier: ice License 1.0

package main

import (
	"context"

	"github.com/PierluigiRizzuExagon/social-api/auth"
	"github.com/PierluigiRizzuExagon/social-api/facebook"
	"github.com/PierluigiRizzuExagon/social-api/googlebusiness"
	"github.com/PierluigiRizzuExagon/social-api/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server.New(new(service), applicationYamlKey, swaggerRoot).ListenAndServe(ctx, cancel)
}

func (s *service) Init(ctx context.Context, _ context.CancelFunc) {
	s.authClient = auth.New(ctx, applicationYamlKey)
	s.facebookClient = facebook.New(applicationYamlKey)
	s.googleBusinessClient = googlebusiness.New(applicationYamlKey)
}

func (s *service) Close(_ context.Context) error {
	return nil
}

func (s *service) CheckHealth(_ context.Context) error {
	return nil
}

func (s *service) RegisterRoutes(router *server.Router) {
	s.registerAuthRoutes(router)
	s.registerFacebookRoutes(router)
	s.registerGoogleBusinessRoutes(router)
}

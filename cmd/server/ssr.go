package main

import (
	"net/http"
	"time"

	"github.com/jrsteele09/movies-auth/federated"
	"github.com/jrsteele09/movies-auth/internal/config"
	"github.com/jrsteele09/movies-auth/ssr"
	"github.com/jrsteele09/movies-auth/ssr/authflowrepo"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	apiClientTimeout = 10 * time.Second
	loginAttemptTTL  = 10 * time.Minute
)

func newSSRCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "ssr",
		Short: "Run the browser facing tier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			setupLogging(cfg)
			displayAppname(cfg.GetAppName())

			if cfg.GetAPIKeyToken() == "" {
				log.Warn().Msg("API_KEY_TOKEN is not set, sign in will be rejected by the API tier")
			}
			client, err := ssr.NewAPIClient(cfg.GetAPIURL(), cfg.GetAPIKeyToken(), &http.Client{Timeout: apiClientTimeout})
			if err != nil {
				return err
			}

			var google ssr.OAuthProvider
			if cfg.GetGoogleClientID() != "" {
				provider, err := federated.NewGoogleProvider(cmd.Context(), federated.Config{
					Issuer:       cfg.GetGoogleIssuer(),
					ClientID:     cfg.GetGoogleClientID(),
					ClientSecret: cfg.GetGoogleClientSecret(),
					RedirectURL:  cfg.GetGoogleRedirectURL(),
				})
				if err != nil {
					return err
				}
				google = provider
			}

			front, err := ssr.New(cfg, ssr.Dependencies{
				API:       client,
				Google:    google,
				AuthFlows: authflowrepo.NewInMemoryRepo(loginAttemptTTL),
			})
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.GetSSRPort()
			}
			return serve(cmd.Context(), normaliseAddr(port), front)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides SSR_PORT")
	return cmd
}

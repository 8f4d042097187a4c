package main

import (
	"fmt"

	"github.com/jrsteele09/movies-auth/apikeys"
	"github.com/jrsteele09/movies-auth/auth"
	"github.com/jrsteele09/movies-auth/internal/config"
	"github.com/jrsteele09/movies-auth/server"
	"github.com/jrsteele09/movies-auth/store/sqlite"
	"github.com/jrsteele09/movies-auth/token"
	"github.com/jrsteele09/movies-auth/usermovies"
	"github.com/jrsteele09/movies-auth/users"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newAPICmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Run the API tier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.New()
			if err := cfg.Validate(); err != nil {
				return err
			}
			setupLogging(cfg)
			displayAppname(cfg.GetAppName() + " API")

			db, err := sqlite.Open(cfg.GetDBPath())
			if err != nil {
				return err
			}
			defer db.Close()

			srv, err := buildAPIServer(cmd, cfg, db)
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.GetPort()
			}
			return serve(cmd.Context(), normaliseAddr(port), srv)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port, overrides PORT")
	return cmd
}

func buildAPIServer(cmd *cobra.Command, cfg config.Config, db *sqlite.DB) (*server.Server, error) {
	apiKeyRepo := sqlite.NewAPIKeyRepo(db)
	if _, err := server.SeedAPIKeys(cmd.Context(), apiKeyRepo, server.APIKeyTokens{
		Public: cfg.GetPublicAPIKeyToken(),
		Admin:  cfg.GetAdminAPIKeyToken(),
	}); err != nil {
		return nil, err
	}

	directory, err := users.NewDirectory(sqlite.NewUserRepo(db))
	if err != nil {
		return nil, err
	}
	resolver, err := apikeys.NewResolver(apiKeyRepo)
	if err != nil {
		return nil, err
	}
	signer, err := token.NewHMACSigner(cfg.GetSigningSecret())
	if err != nil {
		return nil, err
	}
	issuer, err := token.NewIssuer(signer, cfg.GetAccessTokenExpiry())
	if err != nil {
		return nil, err
	}
	authService, err := auth.NewService(auth.Dependencies{Users: directory, APIKeys: resolver, Issuer: issuer})
	if err != nil {
		return nil, err
	}
	moviesService, err := usermovies.NewService(sqlite.NewUserMovieRepo(db))
	if err != nil {
		return nil, err
	}

	srv, err := server.New(cfg, server.Dependencies{Auth: authService, UserMovies: moviesService, Tokens: issuer})
	if err != nil {
		return nil, fmt.Errorf("failed to create api server: %w", err)
	}
	log.Info().Str("env", cfg.GetEnv()).Str("db", cfg.GetDBPath()).Msg("API tier ready")
	return srv, nil
}

func normaliseAddr(port string) string {
	if port != "" && port[0] != ':' {
		return ":" + port
	}
	return port
}

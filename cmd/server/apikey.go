package main

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/movies-auth/apikeys"
	"github.com/jrsteele09/movies-auth/internal/config"
	"github.com/jrsteele09/movies-auth/store/sqlite"
	"github.com/spf13/cobra"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage API keys",
	}
	cmd.AddCommand(newAPIKeyCreateCmd(), newAPIKeyListCmd())
	return cmd
}

func newAPIKeyCreateCmd() *cobra.Command {
	var scopeSet, description string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API key and print its token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			scopes, err := apikeys.ScopeSet(scopeSet)
			if err != nil {
				return err
			}
			db, err := sqlite.Open(config.New().GetDBPath())
			if err != nil {
				return err
			}
			defer db.Close()

			tok, err := apikeys.GenerateToken()
			if err != nil {
				return err
			}
			if description == "" {
				description = scopeSet
			}
			key := &apikeys.APIKey{Token: tok, Description: description, Scopes: scopes}
			if err := sqlite.NewAPIKeyRepo(db).Create(cmd.Context(), key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&scopeSet, "scopes", "public", "scope set: public or admin")
	cmd.Flags().StringVar(&description, "description", "", "description, defaults to the scope set")
	return cmd
}

func newAPIKeyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := sqlite.Open(config.New().GetDBPath())
			if err != nil {
				return err
			}
			defer db.Close()

			keys, err := sqlite.NewAPIKeyRepo(db).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", k.Token, k.Description, strings.Join(k.Scopes, " "))
			}
			return nil
		},
	}
}

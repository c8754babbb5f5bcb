package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/cli"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/credential"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the Guild Wars 2 API key",
		Long: `Store the API key used to read your unlocked skins.

Create a key at https://account.arena.net/applications with the
"account" and "unlocks" permissions.`,
	}

	cmd.AddCommand(authSetCmd())
	cmd.AddCommand(authShowCmd())
	cmd.AddCommand(authClearCmd())

	return cmd
}

func authSetCmd() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "set <key>",
		Short: "Save an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if verify {
				ids, err := a.client.AccountSkins(ctx, args[0])
				if err != nil {
					return common.NewUserError("The API key was rejected; check its permissions", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Key works: %d skins unlocked", len(ids))))
			}

			if err := a.credentials.Save(ctx, args[0]); err != nil {
				if errors.Is(err, common.ErrMissingCredential) {
					return common.NewUserError("The API key cannot be empty; use 'skinvault auth clear' to remove it", err)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("API key saved"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", true, "check the key against the API before saving")

	return cmd
}

func authShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved API key (masked)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			key, err := a.credentials.Load(ctx)
			if err != nil {
				return err
			}
			if key == "" {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No API key saved"))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), credential.Mask(key))
			return nil
		},
	}
}

func authClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.credentials.Clear(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("API key cleared"))
			return nil
		},
	}
}

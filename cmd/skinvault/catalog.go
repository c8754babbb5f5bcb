package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/skinvault/internal/cli"
	"github.com/Veraticus/skinvault/internal/common"
	"github.com/Veraticus/skinvault/internal/model"
)

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the cached weapon skin catalog",
		Long: `The catalog lists every weapon skin once. It is built from the full item
list of the public API and cached locally for a day.`,
	}

	cmd.AddCommand(catalogRefreshCmd())
	cmd.AddCommand(catalogStatusCmd())
	cmd.AddCommand(catalogClearCmd())

	return cmd
}

func catalogRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Rebuild the catalog from the API",
		Long: `Discard the cached catalog and fetch every item again.

This makes several hundred requests and usually takes a minute or two.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			handler := cli.NewInterruptHandler(out)
			ctx := handler.HandleInterrupts(cmd.Context(), "The previous catalog cache has been discarded; run refresh again to rebuild it.")

			progress := cli.NewCatalogProgress(cmd.ErrOrStderr())
			a, err := newApp(ctx, viper.GetViper(), appOptions{onProgress: progress.Update})
			if err != nil {
				return err
			}
			defer a.Close()

			start := time.Now()
			skins, err := a.loader().Refresh(ctx)
			progress.Finish()
			if err != nil {
				if handler.WasInterrupted() {
					return nil
				}
				return common.NewUserError("Could not rebuild the catalog; the API may be unavailable", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Catalog rebuilt: %d weapon skins in %s",
				len(skins), time.Since(start).Round(time.Second))))
			return nil
		},
	}
}

func catalogStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show when the catalog was last built",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			status := cli.CatalogStatus{TTL: a.cache.TTL()}
			if at, count, ok := a.cache.CapturedAt(ctx); ok {
				status.Cached = true
				status.CapturedAt = at
				status.Skins = count
				status.Fresh = a.cache.IsFresh(model.CachedCatalog{CapturedAt: at}, time.Now())
			}

			return cli.RenderCatalogStatus(cmd.OutOrStdout(), status, time.Now())
		},
	}
}

func catalogClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the cached catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, viper.GetViper(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.cache.Invalidate(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Catalog cache cleared"))
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deusflow/noticias/internal/app"
)

func newSeenCommand(flags *flagValues) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Show the published item hashes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := flags.load()
			if err != nil {
				return err
			}

			store, release, err := app.OpenSeenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer release()

			set, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d items already published\n", set.Len())
			if list {
				for _, hash := range set.Hashes() {
					fmt.Fprintln(out, hash)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Print every hash")
	return cmd
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deusflow/noticias/internal/app"
)

func newPreviewCommand(flags *flagValues) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the posts the next run would write, without writing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, catalog, log, err := flags.load()
			if err != nil {
				return err
			}

			pipeline, release, err := app.Build(cmd.Context(), cfg, catalog, log)
			if err != nil {
				return err
			}
			defer release()

			docs, err := pipeline.Preview(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, doc := range docs {
				fmt.Fprintf(out, "==> %s.%s\n%s\n\n", doc.Slug, cfg.FileExt, doc.Content)
			}
			fmt.Fprintf(out, "%d posts would be written\n", len(docs))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Posts to render (defaults to the run cap)")
	return cmd
}

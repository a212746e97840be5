package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/family-gazette-api/internal/generator"
	"github.com/family-gazette-api/internal/models"
	"github.com/family-gazette-api/internal/render"
	"github.com/family-gazette-api/internal/validation"
	"github.com/spf13/cobra"
)

// articleFlags are the generator inputs shared by generate and render
type articleFlags struct {
	prompt     string
	fileName   string
	capturedAt string
}

func (f *articleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.prompt, "prompt", "", "short description of the photo")
	cmd.Flags().StringVar(&f.fileName, "file", "", "photo file name")
	cmd.Flags().StringVar(&f.capturedAt, "captured-at", "", "capture date (RFC 3339 or YYYY-MM-DD, default today)")
}

func (f *articleFlags) generate() (generator.Article, error) {
	req := &models.GenerateRequest{Prompt: f.prompt, FileName: f.fileName, CapturedAt: f.capturedAt}
	if errs := validation.NewValidator().ValidateGenerate(req); len(errs) > 0 {
		return generator.Article{}, fmt.Errorf("%s: %s", errs[0].Field, errs[0].Message)
	}

	capturedAt := time.Now()
	if f.capturedAt != "" {
		t, err := validation.ParseCapturedAt(f.capturedAt)
		if err != nil {
			return generator.Article{}, err
		}
		capturedAt = t
	}

	return generator.Generate(generator.Options{
		Prompt:     f.prompt,
		FileName:   f.fileName,
		CapturedAt: capturedAt,
	}), nil
}

func newGenerateCmd() *cobra.Command {
	var flags articleFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated article as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			article, err := flags.generate()
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(article)
		},
	}
	flags.register(cmd)
	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		flags    articleFlags
		layout   string
		imageURL string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print a generated article as an HTML page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			article, err := flags.generate()
			if err != nil {
				return err
			}
			if imageURL != "" && !render.IsSafeImageURL(imageURL) {
				return fmt.Errorf("image must be an absolute http or https URL")
			}

			page, err := render.NewRenderer().Render(layout, render.Document{
				Headline:    article.Headline,
				Subheadline: article.Subheadline,
				Byline:      article.Byline,
				Dateline:    article.Dateline,
				Body:        article.Body,
				Quote:       article.Quote,
				Tags:        article.Tags,
				ImageURL:    imageURL,
				ImageAlt:    article.Headline,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), page)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&layout, "layout", render.DefaultLayout, "page layout id")
	cmd.Flags().StringVar(&imageURL, "image", "", "photo URL")
	return cmd
}

func newLayoutsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List the available page layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
			for _, l := range render.Layouts() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", l.ID, l.Name, l.Description)
			}
			return w.Flush()
		},
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"draftgen/internal/content"
	"draftgen/internal/logging"
	"draftgen/internal/model"
	"draftgen/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render a draft bill to a PDF file",
	Long: `Generate resolves the content for --category, lays it out as a PDF and
writes it into --out under its generated file name. The path of the written
file is printed on stdout.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("category", "", "policy category; unknown values fall back to the default")
	generateCmd.Flags().String("out", ".", "directory the PDF is written to")
	generateCmd.Flags().Int("max-pages", render.DefaultMaxPages, "fail when the layout needs more pages")

	_ = viper.BindPFlag("category", generateCmd.Flags().Lookup("category"))
	_ = viper.BindPFlag("out", generateCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("max_pages", generateCmd.Flags().Lookup("max-pages"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.NewWithWriter(cmd.ErrOrStderr(), viper.GetString("log_level"), content.WIB).Named("cli")
	defer log.Sync()

	path, doc, err := generateDraft(viper.GetString("category"), viper.GetString("out"), viper.GetInt("max_pages"), time.Now())
	if err != nil {
		log.Error("draft_generate_failed", zap.Error(err))
		return err
	}

	log.Info("draft_written", zap.String("path", path), zap.Int("pages", doc.Pages), zap.Int("bytes", len(doc.Bytes)))
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// generateDraft renders one draft and writes it into dir.
func generateDraft(category, dir string, maxPages int, now time.Time) (string, *model.RenderedDocument, error) {
	resolver, err := content.New()
	if err != nil {
		return "", nil, fmt.Errorf("load catalog: %w", err)
	}

	doc, err := render.New(render.WithMaxPages(maxPages)).Render(resolver.Resolve(category, now))
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, doc.Filename)
	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return "", nil, fmt.Errorf("write draft: %w", err)
	}
	return path, doc, nil
}

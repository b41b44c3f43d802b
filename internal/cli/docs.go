package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lukaszlap/paragonyOSA/internal/config"
	"github.com/lukaszlap/paragonyOSA/internal/store"
)

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage the assistant knowledge base",
	}

	cmd.AddCommand(newDocsImportCmd())
	return cmd
}

func newDocsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import markdown files into the knowledge base",
		Long:  "Splits each markdown file on second-level headings and indexes the fragments for documentation questions.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}
			if err := paths.EnsureDirs(); err != nil {
				return err
			}

			dbPath := cfg.Database.Path
			if !filepath.IsAbs(dbPath) && dbPath != ":memory:" {
				dbPath = filepath.Join(paths.Data, dbPath)
			}
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			total := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}

				base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				chunks := splitMarkdown(base, string(data))
				for _, c := range chunks {
					if _, err := db.AddDocChunk(cmd.Context(), c.title, c.content); err != nil {
						return fmt.Errorf("indexing %s: %w", c.title, err)
					}
				}
				total += len(chunks)
				log.Info().Str("file", path).Int("chunks", len(chunks)).Msg("imported")
			}

			fmt.Printf("Imported %d fragment(s) from %d file(s)\n", total, len(args))
			return nil
		},
	}
}

type docChunk struct {
	title   string
	content string
}

// splitMarkdown cuts a document on "## " headings. Text before the first
// heading becomes a fragment titled after the file itself.
func splitMarkdown(base, text string) []docChunk {
	var chunks []docChunk

	title := base
	var buf []string
	flush := func() {
		content := strings.TrimSpace(strings.Join(buf, "\n"))
		if content != "" {
			chunks = append(chunks, docChunk{title: title, content: content})
		}
		buf = buf[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			title = base + ": " + strings.TrimSpace(strings.TrimPrefix(line, "## "))
			continue
		}
		buf = append(buf, line)
	}
	flush()

	return chunks
}

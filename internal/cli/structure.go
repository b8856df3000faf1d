package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgallion1/docstruct/internal/chunker"
	"github.com/dgallion1/docstruct/internal/cleaner"
	"github.com/dgallion1/docstruct/internal/extractor"
	"github.com/dgallion1/docstruct/internal/structure"
	"github.com/spf13/cobra"
)

var outputPath string
var noClean bool
var withChunks bool
var chunkSize int
var chunkOverlap int
var compact bool
var summary bool

var structureCmd = &cobra.Command{
	Use:   "structure <file>",
	Short: "Build an outline from a document",
	Long: `Structure extracts text from the given document, optionally cleans
common artifacts (page numbers, watermarks, encoding issues), rebuilds
the heading hierarchy, and writes the outline as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		ex, err := extractor.ForFile(path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()

		res, err := ex.Extract(f, path)
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}

		if !noClean && len(res.FormattingNotes) == 0 {
			cleaned := cleaner.Clean(res.RawText, cleaner.DefaultOptions())
			res.RawText = cleaned.CleanedText
			for _, issue := range cleaned.IssuesFixed {
				fmt.Fprintf(cmd.ErrOrStderr(), "cleaned: %s\n", issue)
			}
		}

		doc := structure.Build(res.StructureInput())

		out := map[string]any{"outline": doc.ToDict()}
		var chunks []chunker.Chunk
		if withChunks {
			chunks = chunker.ChunkDocument(doc, chunker.Config{
				ChunkSize:    chunkSize,
				ChunkOverlap: chunkOverlap,
				MinChunk:     100,
			})
			out["chunks"] = chunks
		}

		if summary {
			printSummary(cmd, doc, len(chunks))
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		if outputPath != "" {
			of, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outputPath, err)
			}
			defer of.Close()
			enc = json.NewEncoder(of)
		}
		if !compact {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(out)
	},
}

func printSummary(cmd *cobra.Command, doc *structure.StructuredDocument, chunkCount int) {
	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "chapters: %d  confidence: %.2f\n",
		doc.Metadata.TotalChapters, doc.Metadata.ConfidenceScore)
	for _, ch := range doc.Chapters {
		fmt.Fprintf(w, "  %s (lines %d-%d, %d sections)\n",
			ch.Title, ch.LineStart, ch.LineEnd, len(ch.Sections))
	}
	if withChunks {
		fmt.Fprintf(w, "chunks: %d\n", chunkCount)
	}
	for _, warn := range doc.Metadata.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn)
	}
}

func init() {
	structureCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write JSON to a file instead of stdout")
	structureCmd.Flags().BoolVar(&noClean, "no-clean", false, "Skip text cleaning before structure building")
	structureCmd.Flags().BoolVar(&withChunks, "chunks", false, "Include breadcrumbed chunks in the output")
	structureCmd.Flags().IntVar(&chunkSize, "chunk-size", 1500, "Target chunk size in tokens")
	structureCmd.Flags().IntVar(&chunkOverlap, "overlap", 200, "Overlap between consecutive chunks in tokens")
	structureCmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON without indentation")
	structureCmd.Flags().BoolVar(&summary, "summary", false, "Print a chapter summary to stderr")

	rootCmd.AddCommand(structureCmd)
}

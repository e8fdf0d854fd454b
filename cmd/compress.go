package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AnyUserName/jpegcore-cli/internal/dump"
	"github.com/AnyUserName/jpegcore-cli/internal/encoder"
	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/AnyUserName/jpegcore-cli/internal/pipeline"
	"github.com/AnyUserName/jpegcore-cli/internal/profile"
	"github.com/spf13/cobra"
)

var (
	compressProfile   string
	compressQuality   int
	compressRounding  string
	compressMaxWidth  int
	compressWorkers   int
	compressDirectDCT bool
	compressReference bool
	compressDump      string
	compressManifest  string
	compressShow      int
)

var compressCmd = &cobra.Command{
	Use:   "compress <image>",
	Short: "Encode a single image and print per-plane statistics",
	Long: `Runs one image through the block encoder and prints, for the Y, Cb
and Cr planes, the plane and block-grid sizes, zero blocks, token counts
and the token digest.

--dump writes the full token lists (zstd-compressed when the path ends in
.zst); --manifest writes a one-asset manifest readable by stats/validate.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompress,
}

func init() {
	compressCmd.Flags().StringVarP(&compressProfile, "profile", "p", profile.DefaultName, profileHelp())
	compressCmd.Flags().IntVarP(&compressQuality, "quality", "q", 0, "quality 1-99 (0 = profile default)")
	compressCmd.Flags().StringVar(&compressRounding, "rounding", "", "coefficient rounding: truncate or nearest (empty = profile default)")
	compressCmd.Flags().IntVar(&compressMaxWidth, "max-width", -1, "downscale wider images (-1 = profile default, 0 = never)")
	compressCmd.Flags().IntVarP(&compressWorkers, "workers", "w", 0, "block rows encoded in parallel (0 = NumCPU)")
	compressCmd.Flags().BoolVar(&compressDirectDCT, "direct-dct", false, "use the double-sum DCT instead of the separable form")
	compressCmd.Flags().BoolVar(&compressReference, "reference", false, "also report stdlib JPEG size at the same quality")
	compressCmd.Flags().StringVar(&compressDump, "dump", "", "write token dump to this path (.json or .json.zst)")
	compressCmd.Flags().StringVar(&compressManifest, "manifest", "", "write a one-asset manifest to this path")
	compressCmd.Flags().IntVar(&compressShow, "show", 0, "print the tokens of the first N blocks of each plane")
	rootCmd.AddCommand(compressCmd)
}

func runCompress(_ *cobra.Command, args []string) error {
	start := time.Now()

	src, err := pipeline.SourceFromFile(args[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	prof, err := resolveProfile(compressProfile, compressQuality, compressRounding, compressMaxWidth)
	if err != nil {
		return err
	}

	logVerbose("input:   %s (%s, %s)", src.AbsPath, src.Format, formatBytes(src.Size))
	logVerbose("profile: %s (quality=%d, rounding=%s, max-width=%d)",
		prof.Name, prof.Quality, prof.Rounding, prof.MaxWidth)

	asset, res, err := pipeline.Process(src, pipeline.Config{
		Profile:      prof,
		BlockWorkers: compressWorkers,
		DirectDCT:    compressDirectDCT,
		Reference:    compressReference,
		Verbose:      verbose,
	})
	if err != nil {
		return err
	}

	if compressDump != "" {
		if err := ensureDir(compressDump); err != nil {
			return fmt.Errorf("create dump dir: %w", err)
		}
		if err := dump.Write(compressDump, res); err != nil {
			return fmt.Errorf("write dump: %w", err)
		}
		logVerbose("dump:    %s", compressDump)
	}

	if compressManifest != "" {
		m := manifest.New(prof.Name, res.Quality, res.Rounding.String())
		if compressDump != "" {
			if rel, err := filepath.Rel(filepath.Dir(compressManifest), compressDump); err == nil {
				asset.Dump = filepath.ToSlash(rel)
			}
		}
		m.Assets[src.Key] = asset
		if err := ensureDir(compressManifest); err != nil {
			return fmt.Errorf("create manifest dir: %w", err)
		}
		if err := manifest.WriteJSON(m, compressManifest); err != nil {
			return fmt.Errorf("write manifest: %w", err)
		}
		logVerbose("manifest: %s", compressManifest)
	}

	printCompressReport(src, asset, res, time.Since(start))
	return nil
}

func printCompressReport(src pipeline.Source, asset manifest.Asset, res *encoder.Result, elapsed time.Duration) {
	fmt.Println()
	fmt.Printf("  Image:     %s (%s, %s)\n", src.RelPath, src.Format, formatBytes(src.Size))
	fmt.Printf("  Original:  %dx%d\n", asset.Original.Width, asset.Original.Height)
	if asset.Encoded.Width != asset.Original.Width {
		fmt.Printf("  Encoded:   %dx%d\n", asset.Encoded.Width, asset.Encoded.Height)
	}
	fmt.Printf("  Quality:   %d (%s)\n", res.Quality, res.Rounding)
	if asset.ReferenceJPG > 0 {
		fmt.Printf("  Reference: %s (stdlib JPEG)\n", formatBytes(asset.ReferenceJPG))
	}
	fmt.Printf("  Time:      %s\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	fmt.Printf("    %-3s %-12s %11s %7s %7s %6s %8s %8s  %s\n",
		"", "kind", "size", "grid", "blocks", "zero", "tokens", "nonzero", "digest")
	for _, p := range asset.Planes {
		fmt.Printf("    %-3s %-12s %11s %7s %7d %6d %8d %8d  %s\n",
			p.Name, p.Kind,
			fmt.Sprintf("%dx%d", p.Width, p.Height),
			fmt.Sprintf("%dx%d", p.Cols, p.Rows),
			p.Blocks, p.ZeroBlocks, p.Tokens, p.NonZero, p.Digest)
	}
	fmt.Println()

	if compressShow > 0 {
		for i := range res.Planes {
			p := &res.Planes[i]
			n := compressShow
			if n > len(p.Blocks) {
				n = len(p.Blocks)
			}
			fmt.Printf("  %s, first %d block(s):\n", p.Name, n)
			for b := 0; b < n; b++ {
				r, c := b/p.Cols, b%p.Cols
				tokens := p.BlockAt(r, c)
				parts := make([]string, len(tokens))
				for j, t := range tokens {
					parts[j] = t.String()
				}
				fmt.Printf("    [%d,%d] %s\n", r, c, strings.Join(parts, " "))
			}
		}
		fmt.Println()
	}
}

// ensureDir creates the parent directory of path.
func ensureDir(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		return os.MkdirAll(dir, 0o755)
	}
	return nil
}

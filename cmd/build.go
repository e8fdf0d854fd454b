package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/AnyUserName/jpegcore-cli/internal/pipeline"
	"github.com/AnyUserName/jpegcore-cli/internal/profile"
	"github.com/AnyUserName/jpegcore-cli/internal/quant"
	"github.com/spf13/cobra"
)

var (
	buildOutDir       string
	buildProfile      string
	buildWorkers      int
	buildBlockWorkers int
	buildQuality      int
	buildRounding     string
	buildMaxWidth     int
	buildDump         string
	buildReference    bool
	buildDirectDCT    bool
)

var buildCmd = &cobra.Command{
	Use:   "build <input_dir>",
	Short: "Encode every image in a directory and write a manifest",
	Long: `Scans input directory for images (png, jpg, jpeg, webp, gif, bmp, tiff),
runs each through the block encoder and writes jpegcore.manifest.json with
per-plane block, token and digest statistics.

With --dump, full token lists are written next to the manifest as
<key>.<hash>.tokens.json (or .json.zst with --dump zst).`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutDir, "out", "o", "./jpegcore_out", "output directory")
	buildCmd.Flags().StringVarP(&buildProfile, "profile", "p", profile.DefaultName, profileHelp())
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "images encoded in parallel (0 = NumCPU)")
	buildCmd.Flags().IntVar(&buildBlockWorkers, "block-workers", 1, "block rows encoded in parallel per image (0 = NumCPU)")
	buildCmd.Flags().IntVarP(&buildQuality, "quality", "q", 0, "quality 1-99 (0 = profile default)")
	buildCmd.Flags().StringVar(&buildRounding, "rounding", "", "coefficient rounding: truncate or nearest (empty = profile default)")
	buildCmd.Flags().IntVar(&buildMaxWidth, "max-width", -1, "downscale wider images (-1 = profile default, 0 = never)")
	buildCmd.Flags().StringVar(&buildDump, "dump", "none", "token dumps: none, json or zst")
	buildCmd.Flags().BoolVar(&buildReference, "reference", false, "record stdlib JPEG size at the same quality")
	buildCmd.Flags().BoolVar(&buildDirectDCT, "direct-dct", false, "use the double-sum DCT instead of the separable form")
	rootCmd.AddCommand(buildCmd)
}

// profileHelp lists the built-in profiles for the --profile flag.
func profileHelp() string {
	return "processing profile (" + strings.Join(profile.Names(), ", ") + ")"
}

// resolveProfile applies flag overrides on top of a named profile.
func resolveProfile(name string, quality int, rounding string, maxWidth int) (profile.Profile, error) {
	prof := profile.Get(name)
	if quality > 0 {
		prof.Quality = quant.ClampQuality(quality)
	}
	if rounding != "" {
		r, err := quant.ParseRounding(rounding)
		if err != nil {
			return prof, err
		}
		prof.Rounding = r
	}
	if maxWidth >= 0 {
		prof.MaxWidth = maxWidth
	}
	return prof, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	inputDir := args[0]
	start := time.Now()

	// Resolve absolute paths.
	absInput, err := filepath.Abs(inputDir)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(buildOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	prof, err := resolveProfile(buildProfile, buildQuality, buildRounding, buildMaxWidth)
	if err != nil {
		return err
	}
	dumpKind, err := pipeline.ParseDumpKind(buildDump)
	if err != nil {
		return err
	}

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (quality=%d, rounding=%s, max-width=%d)",
		prof.Name, prof.Quality, prof.Rounding, prof.MaxWidth)

	// Create output dir.
	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Run pipeline.
	p := pipeline.New(pipeline.Config{
		InputDir:     absInput,
		OutputDir:    absOutput,
		Profile:      prof,
		Workers:      buildWorkers,
		BlockWorkers: buildBlockWorkers,
		DirectDCT:    buildDirectDCT,
		Dump:         dumpKind,
		Reference:    buildReference,
		Verbose:      verbose,
	})

	m, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	// Write manifest.
	manifestPath := filepath.Join(absOutput, manifestName)
	if err := manifest.WriteJSON(m, manifestPath); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	elapsed := time.Since(start)

	// Print report.
	printBuildReport(m, elapsed)

	return nil
}

func printBuildReport(m *manifest.Manifest, elapsed time.Duration) {
	fmt.Println()
	fmt.Println("╔══════════════════════════════════════════════════╗")
	fmt.Println("║             jpegcore build complete              ║")
	fmt.Println("╚══════════════════════════════════════════════════╝")
	fmt.Println()

	stats := m.Stats
	fmt.Printf("  Assets:      %d\n", stats.TotalAssets)
	fmt.Printf("  Quality:     %d (%s, %s)\n", m.Quality, m.Profile, m.Rounding)
	fmt.Printf("  Blocks:      %d (%s zero)\n", stats.TotalBlocks, percent(stats.TotalZeroBlocks, stats.TotalBlocks))
	fmt.Printf("  Tokens:      %d (%.2f per block)\n", stats.TotalTokens, ratio(stats.TotalTokens, stats.TotalBlocks))
	fmt.Printf("  Input size:  %s\n", formatBytes(stats.TotalInputBytes))
	if stats.TotalReferenceBytes > 0 {
		fmt.Printf("  Reference:   %s (stdlib JPEG)\n", formatBytes(stats.TotalReferenceBytes))
	}
	fmt.Printf("  Time:        %s\n", elapsed.Round(time.Millisecond))

	if m.BuildInfo != nil {
		fmt.Printf("  Workers:     %d\n", m.BuildInfo.Workers)
	}
	fmt.Println()

	// Top 10 assets by token count.
	if len(m.Assets) > 0 {
		type assetTokens struct {
			key    string
			blocks int
			tokens int
		}
		var items []assetTokens
		for key, a := range m.Assets {
			it := assetTokens{key: key}
			for _, p := range a.Planes {
				it.blocks += p.Blocks
				it.tokens += p.Tokens
			}
			items = append(items, it)
		}
		sort.Slice(items, func(i, j int) bool {
			if items[i].tokens != items[j].tokens {
				return items[i].tokens > items[j].tokens
			}
			return items[i].key < items[j].key
		})
		n := len(items)
		if n > 10 {
			n = 10
		}
		fmt.Printf("  Top %d by tokens (blocks → tokens):\n", n)
		for _, it := range items[:n] {
			fmt.Printf("    %-40s %7d → %8d  (%.2f/block)\n",
				truncKey(it.key, 40),
				it.blocks,
				it.tokens,
				ratio(it.tokens, it.blocks),
			)
		}
		fmt.Println()
	}

	// Manifest path.
	data, _ := json.Marshal(m)
	fmt.Printf("  Manifest:    %s (%s)\n", manifestName, formatBytes(int64(len(data))))
	fmt.Println()
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

func percent(a, b int) string {
	return fmt.Sprintf("%.1f%%", ratio(a, b)*100)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}

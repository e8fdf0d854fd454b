package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_manifest>",
	Short: "Display statistics for a build manifest",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, args []string) error {
	path := args[0]

	// If path is a directory, look for manifest inside.
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		path = filepath.Join(path, manifestName)
	}

	m, err := manifest.ReadJSON(path)
	if err != nil {
		return err
	}

	printStats(m)
	return nil
}

func printStats(m *manifest.Manifest) {
	fmt.Println()
	fmt.Printf("  Manifest version: %d\n", m.Version)
	fmt.Printf("  Generated:        %s\n", m.GeneratedAt)
	fmt.Printf("  Profile:          %s\n", m.Profile)
	fmt.Printf("  Quality:          %d (%s)\n", m.Quality, m.Rounding)
	if m.BuildInfo != nil {
		fmt.Printf("  Workers:          %d\n", m.BuildInfo.Workers)
		if m.BuildInfo.DirectDCT {
			fmt.Println("  DCT:              direct")
		}
	}
	fmt.Println()

	s := m.Stats
	fmt.Printf("  Total assets:     %d\n", s.TotalAssets)
	fmt.Printf("  Total blocks:     %d\n", s.TotalBlocks)
	fmt.Printf("  Zero blocks:      %d (%s)\n", s.TotalZeroBlocks, percent(s.TotalZeroBlocks, s.TotalBlocks))
	fmt.Printf("  Total tokens:     %d (%.2f per block)\n", s.TotalTokens, ratio(s.TotalTokens, s.TotalBlocks))
	fmt.Printf("  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	if s.TotalReferenceBytes > 0 && s.TotalInputBytes > 0 {
		pct := float64(s.TotalReferenceBytes) / float64(s.TotalInputBytes) * 100
		fmt.Printf("  Reference JPEG:   %s (%.1f%% of input)\n", formatBytes(s.TotalReferenceBytes), pct)
	}
	fmt.Println()

	// Per-plane breakdown.
	type planeAgg struct {
		blocks, zero, tokens, nonzero int
	}
	planeStats := map[string]planeAgg{}
	for _, a := range m.Assets {
		for _, p := range a.Planes {
			ps := planeStats[p.Name]
			ps.blocks += p.Blocks
			ps.zero += p.ZeroBlocks
			ps.tokens += p.Tokens
			ps.nonzero += p.NonZero
			planeStats[p.Name] = ps
		}
	}

	fmt.Println("  Plane breakdown:")
	for _, name := range []string{"Y", "Cb", "Cr"} {
		if ps, ok := planeStats[name]; ok {
			fmt.Printf("    %-3s  %7d blocks  %6s zero  %8d tokens  %.2f nonzero/block\n",
				name, ps.blocks, percent(ps.zero, ps.blocks), ps.tokens, ratio(ps.nonzero, ps.blocks))
		}
	}
	fmt.Println()

	// Grid-size breakdown for the luma plane.
	gridStats := map[string]int{}
	for _, a := range m.Assets {
		if len(a.Planes) > 0 {
			gridStats[fmt.Sprintf("%dx%d", a.Planes[0].Cols, a.Planes[0].Rows)]++
		}
	}
	var grids []string
	for g := range gridStats {
		grids = append(grids, g)
	}
	sort.Strings(grids)
	fmt.Println("  Luma grid breakdown:")
	for _, g := range grids {
		fmt.Printf("    %9s  %4d assets\n", g, gridStats[g])
	}
	fmt.Println()

	var dumps int
	for _, a := range m.Assets {
		if a.Dump != "" {
			dumps++
		}
	}
	fmt.Printf("  Token dump coverage: %d / %d assets\n", dumps, len(m.Assets))

	// Warnings.
	var warnings []string
	for key, a := range m.Assets {
		if len(a.Planes) != 3 {
			warnings = append(warnings, fmt.Sprintf("asset %q has %d planes", key, len(a.Planes)))
			continue
		}
		allZero := true
		for _, p := range a.Planes {
			if p.ZeroBlocks != p.Blocks {
				allZero = false
			}
		}
		if allZero {
			warnings = append(warnings, fmt.Sprintf("asset %q quantized to all-zero blocks", key))
		}
	}
	sort.Strings(warnings)
	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	fmt.Println()
}

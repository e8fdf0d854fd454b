package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/AnyUserName/jpegcore-cli/internal/block"
	"github.com/AnyUserName/jpegcore-cli/internal/dump"
	"github.com/AnyUserName/jpegcore-cli/internal/hasher"
	"github.com/AnyUserName/jpegcore-cli/internal/manifest"
	"github.com/AnyUserName/jpegcore-cli/internal/rle"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <manifest_path>",
	Short: "Validate a jpegcore manifest and verify referenced token dumps",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	manifestPath := args[0]

	m, err := manifest.ReadJSON(manifestPath)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(manifestPath)
	errors := validateManifest(m, baseDir)

	if len(errors) == 0 {
		fmt.Println("  ✓ Manifest is valid")
		fmt.Printf("  ✓ %d assets, %d blocks, %d tokens\n", m.Stats.TotalAssets, m.Stats.TotalBlocks, m.Stats.TotalTokens)
		return nil
	}

	fmt.Printf("  ✗ Manifest has %d error(s):\n", len(errors))
	for _, e := range errors {
		fmt.Printf("    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errors))
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }

func validateManifest(m *manifest.Manifest, baseDir string) []string {
	var errs []string

	// Check version.
	if m.Version != manifest.SupportedManifestVersion {
		errs = append(errs, fmt.Sprintf("unsupported manifest version: %d", m.Version))
	}
	if m.Quality < 1 || m.Quality > 99 {
		errs = append(errs, fmt.Sprintf("quality %d outside 1-99", m.Quality))
	}

	// Check each asset.
	for key, asset := range m.Assets {
		// Check original dimensions.
		if asset.Original.Width <= 0 || asset.Original.Height <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid original dimensions %dx%d",
				key, asset.Original.Width, asset.Original.Height))
		}
		w, h := asset.Encoded.Width, asset.Encoded.Height
		if w <= 0 || h <= 0 {
			errs = append(errs, fmt.Sprintf("asset %q: invalid encoded dimensions %dx%d", key, w, h))
			continue
		}

		if len(asset.Planes) != 3 {
			errs = append(errs, fmt.Sprintf("asset %q: %d planes, want 3", key, len(asset.Planes)))
			continue
		}

		for i, p := range asset.Planes {
			// Luma keeps the encoded size; chroma is halved, rounding up.
			wantW, wantH := w, h
			if i > 0 {
				wantW, wantH = ceilDiv(w, 2), ceilDiv(h, 2)
			}
			if p.Width != wantW || p.Height != wantH {
				errs = append(errs, fmt.Sprintf("asset %q plane %s: size %dx%d, want %dx%d",
					key, p.Name, p.Width, p.Height, wantW, wantH))
			}
			cols, rows := ceilDiv(p.Width, block.Size), ceilDiv(p.Height, block.Size)
			if p.Cols != cols || p.Rows != rows {
				errs = append(errs, fmt.Sprintf("asset %q plane %s: grid %dx%d, want %dx%d",
					key, p.Name, p.Cols, p.Rows, cols, rows))
			}
			if p.Blocks != p.Cols*p.Rows {
				errs = append(errs, fmt.Sprintf("asset %q plane %s: %d blocks, grid holds %d",
					key, p.Name, p.Blocks, p.Cols*p.Rows))
			}
			// Each block has between 2 and 65 tokens.
			if p.Tokens < 2*p.Blocks || p.Tokens > 65*p.Blocks {
				errs = append(errs, fmt.Sprintf("asset %q plane %s: %d tokens for %d blocks",
					key, p.Name, p.Tokens, p.Blocks))
			}
			if p.Digest == "" {
				errs = append(errs, fmt.Sprintf("asset %q plane %s: missing digest", key, p.Name))
			}
		}

		if asset.Dump != "" {
			errs = append(errs, validateDump(key, asset, filepath.Join(baseDir, asset.Dump))...)
		}
	}

	// Verify stats consistency.
	var want manifest.Stats
	want.TotalAssets = len(m.Assets)
	for _, a := range m.Assets {
		for _, p := range a.Planes {
			want.TotalBlocks += p.Blocks
			want.TotalZeroBlocks += p.ZeroBlocks
			want.TotalTokens += p.Tokens
		}
	}
	if m.Stats.TotalAssets != want.TotalAssets {
		errs = append(errs, fmt.Sprintf("stats.total_assets mismatch: %d != %d", m.Stats.TotalAssets, want.TotalAssets))
	}
	if m.Stats.TotalBlocks != want.TotalBlocks {
		errs = append(errs, fmt.Sprintf("stats.total_blocks mismatch: %d != %d", m.Stats.TotalBlocks, want.TotalBlocks))
	}
	if m.Stats.TotalZeroBlocks != want.TotalZeroBlocks {
		errs = append(errs, fmt.Sprintf("stats.total_zero_blocks mismatch: %d != %d", m.Stats.TotalZeroBlocks, want.TotalZeroBlocks))
	}
	if m.Stats.TotalTokens != want.TotalTokens {
		errs = append(errs, fmt.Sprintf("stats.total_tokens mismatch: %d != %d", m.Stats.TotalTokens, want.TotalTokens))
	}

	return errs
}

// validateDump checks that every block in the dump expands to 64
// coefficients and that the dump matches the manifest's plane stats.
func validateDump(key string, asset manifest.Asset, path string) []string {
	var errs []string

	d, err := dump.Read(path)
	if err != nil {
		return []string{fmt.Sprintf("asset %q: dump: %v", key, err)}
	}
	if d.Width != asset.Encoded.Width || d.Height != asset.Encoded.Height {
		errs = append(errs, fmt.Sprintf("asset %q: dump size %dx%d, manifest %dx%d",
			key, d.Width, d.Height, asset.Encoded.Width, asset.Encoded.Height))
	}
	if len(d.Planes) != len(asset.Planes) {
		return append(errs, fmt.Sprintf("asset %q: dump has %d planes, manifest %d",
			key, len(d.Planes), len(asset.Planes)))
	}

	for i, dp := range d.Planes {
		mp := asset.Planes[i]
		if len(dp.Blocks) != mp.Blocks {
			errs = append(errs, fmt.Sprintf("asset %q plane %s: dump has %d blocks, manifest %d",
				key, mp.Name, len(dp.Blocks), mp.Blocks))
		}
		for b, tokens := range dp.Blocks {
			seq, err := rle.Expand(tokens)
			if err != nil {
				errs = append(errs, fmt.Sprintf("asset %q plane %s block %d: %v", key, mp.Name, b, err))
				continue
			}
			if len(seq) != block.Size*block.Size {
				errs = append(errs, fmt.Sprintf("asset %q plane %s block %d: expands to %d values",
					key, mp.Name, b, len(seq)))
			}
		}
		if got := hasher.TokenDigest(dp.Blocks, len(mp.Digest)); got != mp.Digest {
			errs = append(errs, fmt.Sprintf("asset %q plane %s: digest mismatch: manifest=%s, dump=%s",
				key, mp.Name, mp.Digest, got))
		}
	}
	return errs
}

package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

// manifestName is the file build writes into its output directory.
const manifestName = "jpegcore.manifest.json"

var rootCmd = &cobra.Command{
	Use:   "jpegcore",
	Short: "Lossy JPEG-style block encoder and batch analyzer",
	Long: `jpegcore — runs the lossy half of a JPEG encoder over images:
YCbCr conversion, 4:2:0 chroma subsampling, 8×8 DCT, quality-scaled
quantization, zig-zag reordering and run-length encoding.

Produces per-plane token statistics, content digests and optional
token dumps, collected in a manifest for whole directories.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"jpegcore %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[jpegcore] "+format+"\n", args...)
	}
}

package cmd

import (
	"fmt"

	"github.com/AnyUserName/jpegcore-cli/internal/quant"
	"github.com/AnyUserName/jpegcore-cli/internal/zigzag"
	"github.com/spf13/cobra"
)

var (
	tablesQuality int
	tablesZigzag  bool
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the quality-scaled quantization tables",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

func init() {
	tablesCmd.Flags().IntVarP(&tablesQuality, "quality", "q", 80, "quality 1-99")
	tablesCmd.Flags().BoolVar(&tablesZigzag, "zigzag", false, "also print the zig-zag scan order")
	rootCmd.AddCommand(tablesCmd)
}

func runTables(_ *cobra.Command, _ []string) error {
	q := quant.ClampQuality(tablesQuality)
	if q != tablesQuality {
		logVerbose("quality %d clamped to %d", tablesQuality, q)
	}

	fmt.Println()
	fmt.Printf("  Quality %d (scale %.4f)\n", q, quant.Scale(q))
	for _, k := range []quant.Kind{quant.Luminance, quant.Chrominance} {
		t := quant.NewTable(k, q)
		fmt.Println()
		fmt.Printf("  %s:\n", k)
		for row := 0; row < 8; row++ {
			fmt.Print("   ")
			for col := 0; col < 8; col++ {
				fmt.Printf(" %4d", t[row*8+col])
			}
			fmt.Println()
		}
	}

	if tablesZigzag {
		fmt.Println()
		fmt.Println("  Zig-zag order (scan index → block position):")
		for row := 0; row < 8; row++ {
			fmt.Print("   ")
			for col := 0; col < 8; col++ {
				fmt.Printf(" %4d", zigzag.Order[row*8+col])
			}
			fmt.Println()
		}
	}
	fmt.Println()
	return nil
}

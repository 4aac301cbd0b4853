package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/gnatsgo/internal/convert"
	"github.com/sells-group/gnatsgo/internal/gdal"
	"github.com/sells-group/gnatsgo/internal/gdb"
)

var showCmd = &cobra.Command{
	Use:   "show IN TABLE",
	Short: "Print a table consolidated across every region",
	Long: `Reads TABLE from every regional geodatabase in IN, the same way to-parquet
does, and prints the first --limit rows. Partitioned tables carry their
region column. Geometry is printed as its WKB size.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		in, name := args[0], args[1]
		if err := requireLocal(in, "IN"); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		var columns []string
		if s, _ := cmd.Flags().GetString("columns"); s != "" {
			columns = splitAndTrim(s)
		}

		opener := gdal.NewOpener()
		t, err := convert.NewTable(opener, in, name, "")
		if err != nil {
			return eris.Wrap(err, "show")
		}
		f, err := convert.NewConsolidator(opener, nil).Concat(ctx, t, columns)
		if err != nil {
			return eris.Wrap(err, "show")
		}
		if f == nil {
			return eris.Errorf("show: %s has no regions", name)
		}

		zap.L().With(zap.String("command", "show")).Info("table read",
			zap.String("table", name), zap.Int("rows", f.Len()))
		return printFrame(cmd, f, limit)
	},
}

func printFrame(cmd *cobra.Command, f *gdb.Frame, limit int) error {
	names := f.Names()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, n := range names {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, n)
	}
	fmt.Fprintln(w)

	rows := f.Len()
	if limit > 0 && limit < rows {
		rows = limit
	}
	for r := 0; r < rows; r++ {
		for i, n := range names {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell(f.Column(n)[r]))
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []byte:
		return fmt.Sprintf("<%d bytes>", len(v))
	default:
		return fmt.Sprint(v)
	}
}

func init() {
	showCmd.Flags().Int("limit", 20, "rows to print (0 prints every row)")
	showCmd.Flags().String("columns", "", "comma-separated columns to read (default: all)")
	rootCmd.AddCommand(showCmd)
}

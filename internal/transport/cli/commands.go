package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"schooladmin/internal/domain/auth"
	"schooladmin/internal/domain/payroll"
	"schooladmin/internal/domain/roster"
	"schooladmin/internal/export"
	"schooladmin/internal/importer"
	"schooladmin/internal/platform/config"
	"schooladmin/internal/platform/seed"
)

// Options carries what the commands read from the process. Tests replace the
// terminal check. When LogOutput is set, a JSON slog handler writing to it
// becomes the process default.
type Options struct {
	Config     func() config.Config
	IsTerminal func() bool
	LogOutput  io.Writer
}

func DefaultOptions() Options {
	return Options{
		Config: func() config.Config {
			if err := config.LoadDotEnv(".env"); err != nil {
				fmt.Fprintln(os.Stderr, "warning:", err)
			}
			return config.Load()
		},
		IsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		LogOutput:  os.Stderr,
	}
}

type app struct {
	opts    Options
	cfg     config.Config
	dataDir string
}

// NewRootCommand builds the schoolctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	a := &app{opts: opts}
	root := &cobra.Command{
		Use:           "schoolctl",
		Short:         "Roster and payroll tools for a school administration office",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.opts.LogOutput != nil {
				slog.SetDefault(slog.New(slog.NewJSONHandler(a.opts.LogOutput, nil)))
			}
			a.cfg = a.opts.Config()
			if a.dataDir != "" {
				a.cfg.DataDir = a.dataDir
			}
		},
	}
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory holding the classes, students and staff files (default $DATA_DIR)")

	root.AddCommand(a.seedCommand(), a.rosterCommand(), a.payrollCommand(), a.hashCodeCommand())
	return root
}

func (a *app) seedCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the sample classes, students and staff files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = a.cfg.DataDir
			}
			if err := seed.Write(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "sample data written to %s\n", dir)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "target directory (default the data directory)")
	return cmd
}

func (a *app) rosterCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "roster", Short: "Inspect and promote the school roster"}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Print roster statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadRoster()
			if err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), store.AggregateStatistics())
		},
	}

	var yes bool
	var xlsxPath, pdfPath string
	promote := &cobra.Command{
		Use:   "promote",
		Short: "Promote every class by one grade and graduate the final grade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := a.loadRoster()
			if err != nil {
				return err
			}
			before := store.AggregateStatistics()
			fmt.Fprintln(out, "Before promotion")
			if err := printStats(out, before); err != nil {
				return err
			}

			if !yes {
				ok, err := Confirm(cmd.InOrStdin(), out, "Promote all classes?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "promotion cancelled")
					return nil
				}
			}

			report := store.PromoteAll()
			if err := store.Verify(); err != nil {
				return err
			}
			printPromotion(out, report)
			after := store.AggregateStatistics()
			fmt.Fprintln(out, "After promotion")
			if err := printStats(out, after); err != nil {
				return err
			}

			if xlsxPath != "" {
				wb := export.Workbook{Classes: store.ClassTable(), Students: store.StudentTable()}
				if err := wb.Save(xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "workbook written to %s\n", xlsxPath)
			}
			if pdfPath != "" {
				if err := writeFile(pdfPath, func(w io.Writer) error {
					return export.NewRenderer(a.cfg.PDFFontPath).RosterReport(w,
						export.ReportPage{Label: "before promotion", Stats: before},
						export.ReportPage{Label: "after promotion", Stats: after},
					)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "report written to %s\n", pdfPath)
			}
			return nil
		},
	}
	promote.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	promote.Flags().StringVar(&xlsxPath, "xlsx", "", "write the promoted roster to this workbook")
	promote.Flags().StringVar(&pdfPath, "pdf", "", "write a before/after report to this PDF")

	cmd.AddCommand(stats, promote)
	return cmd
}

func (a *app) payrollCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "payroll", Short: "Compute staff payroll"}

	var bonusRaw, outPath, xlsxPath, pdfPath string
	run := &cobra.Command{
		Use:   "run",
		Short: "Compute salaries, apply a bonus and write the payroll CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			engine, err := importer.LoadEngine(a.cfg.StaffPath(), payroll.Policy{TeacherZeroExperienceBase: a.cfg.TeacherZeroExperienceBase})
			if err != nil {
				return err
			}

			bonus, err := a.resolveBonus(cmd, bonusRaw)
			if err != nil {
				return err
			}
			if err := engine.SetBonus(bonus); err != nil {
				return err
			}
			rows, err := engine.Snapshot()
			if err != nil {
				return err
			}
			summary := payroll.Summarize(rows)
			if err := printPayroll(out, rows, summary); err != nil {
				return err
			}

			if outPath == "" {
				outPath = filepath.Join(a.cfg.OutputDir, "payroll.csv")
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return err
			}
			if err := export.SavePayrollCSV(outPath, rows); err != nil {
				return err
			}
			fmt.Fprintf(out, "payroll written to %s\n", outPath)

			if xlsxPath != "" {
				if err := (export.Workbook{Payroll: rows}).Save(xlsxPath); err != nil {
					return err
				}
				fmt.Fprintf(out, "workbook written to %s\n", xlsxPath)
			}
			if pdfPath != "" {
				if err := writeFile(pdfPath, func(w io.Writer) error {
					return export.NewRenderer(a.cfg.PDFFontPath).PayrollReport(w, a.cfg.SchoolName+" payroll", rows, summary)
				}); err != nil {
					return err
				}
				fmt.Fprintf(out, "report written to %s\n", pdfPath)
			}
			return nil
		},
	}
	run.Flags().StringVar(&bonusRaw, "bonus", "", "bonus for every employee; prompted for when omitted on a terminal")
	run.Flags().StringVar(&outPath, "out", "", "payroll CSV path (default $OUTPUT_DIR/payroll.csv)")
	run.Flags().StringVar(&xlsxPath, "xlsx", "", "also write the payroll to this workbook")
	run.Flags().StringVar(&pdfPath, "pdf", "", "also write a payroll report to this PDF")

	cmd.AddCommand(run)
	return cmd
}

// resolveBonus takes the --bonus flag when given, otherwise prompts on a
// terminal. Non-interactive runs without the flag pay no bonus.
func (a *app) resolveBonus(cmd *cobra.Command, raw string) (float64, error) {
	if cmd.Flags().Changed("bonus") {
		return payroll.ParseBonus(raw)
	}
	if a.opts.IsTerminal() {
		return PromptBonus(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return 0, nil
}

func (a *app) hashCodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-code [CODE]",
		Short: "Print a bcrypt hash for ACCESS_CODE_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var code string
			switch {
			case len(args) == 1:
				code = args[0]
			case a.opts.IsTerminal():
				fmt.Fprint(cmd.OutOrStdout(), "Access code: ")
				raw, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				code = string(raw)
			default:
				scanner := bufio.NewScanner(cmd.InOrStdin())
				if scanner.Scan() {
					code = scanner.Text()
				}
				if err := scanner.Err(); err != nil {
					return err
				}
			}
			hash, err := auth.HashAccessCode(strings.TrimSpace(code))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func (a *app) loadRoster() (*roster.Store, error) {
	return importer.LoadRoster(a.cfg.SchoolName, a.cfg.ClassesPath(), a.cfg.StudentsPath())
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return write(f)
}

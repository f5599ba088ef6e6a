package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"attritionlens/adapters/excel"
	"attritionlens/adapters/postgres"
	"attritionlens/domain/employee"
	"attritionlens/internal/aggregate"
	"attritionlens/internal/config"
	"attritionlens/internal/dataset"
	apperrors "attritionlens/internal/errors"
	"attritionlens/internal/filter"
	"attritionlens/internal/migration"
	"attritionlens/internal/testkit"
	"attritionlens/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

// sourceFlags select where the employee table is read from
type sourceFlags struct {
	path        string
	source      string
	databaseURL string
	table       string
}

// filterFlags mirror the dashboard sidebar
type filterFlags struct {
	attrition      []string
	department     []string
	jobRole        []string
	educationField []string
	ageMin, ageMax float64
	incMin, incMax float64
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd wires every subcommand; flag defaults come from the same
// environment keys the dashboard server reads.
func newRootCmd() *cobra.Command {
	data := config.LoadDataConfig()
	db := config.LoadDatabaseConfig()

	src := &sourceFlags{}
	rootCmd := &cobra.Command{
		Use:           "attritionlens-cli",
		Short:         "Attrition reports and dataset tooling from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&src.path, "data", data.Path, "CSV or XLSX dataset path")
	rootCmd.PersistentFlags().StringVar(&src.source, "source", data.Source, "Dataset source: file or postgres")
	rootCmd.PersistentFlags().StringVar(&src.databaseURL, "database-url", db.URL, "PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&src.table, "table", db.Table, "Employees table name")

	rootCmd.AddCommand(
		newKPIsCmd(src),
		newRateCmd(src),
		newTenureCmd(src),
		newIncomeCmd(src),
		newGenerateCmd(),
		newMigrateCmd(src),
		newImportCmd(src),
	)
	return rootCmd
}

func newKPIsCmd(src *sourceFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "kpis",
		Short: "Print total employees, attrition count and attrition rate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd, src, ff)
			if err != nil || view == nil {
				return err
			}
			k := aggregate.ComputeKPIs(view)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "Total Employees\t%s\n", k.TotalLabel)
			fmt.Fprintf(w, "Attrition Count\t%s\n", k.AttritionCountLabel)
			fmt.Fprintf(w, "Attrition Rate (%%)\t%s\n", k.RateLabel)
			return w.Flush()
		},
	}
	ff.register(cmd)
	return cmd
}

func newRateCmd(src *sourceFlags) *cobra.Command {
	ff := &filterFlags{}
	var sortName string

	cmd := &cobra.Command{
		Use:   "rate [field]",
		Short: "Attrition rate (%) per value of a field",
		Long: `Group the filtered employees by a field and print the attrition rate of each group.

Example: attritionlens-cli rate JobRole --sort rate_desc --department Sales`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := employee.ParseField(args[0])
			if err != nil {
				return err
			}
			policy, ok := aggregate.ParseSortPolicy(sortName)
			if !ok {
				return fmt.Errorf("unknown sort policy %q (use key or rate_desc)", sortName)
			}
			view, err := loadView(cmd, src, ff)
			if err != nil || view == nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), aggregate.RateBy(view, field, policy))
		},
	}
	cmd.Flags().StringVar(&sortName, "sort", string(aggregate.SortByKey), "Sort policy: key or rate_desc")
	ff.register(cmd)
	return cmd
}

func newTenureCmd(src *sourceFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "tenure",
		Short: "Attrition rate (%) per YearsAtCompany band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd, src, ff)
			if err != nil || view == nil {
				return err
			}
			res := aggregate.RateByTenure(view)
			if err := printResult(cmd.OutOrStdout(), res.Result); err != nil {
				return err
			}
			if res.OutOfRange > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d employees outside the 0-40 year bands\n", res.OutOfRange)
			}
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func newIncomeCmd(src *sourceFlags) *cobra.Command {
	ff := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Mean monthly income by Education and Attrition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := loadView(cmd, src, ff)
			if err != nil || view == nil {
				return err
			}
			res := aggregate.MeanIncomeByEducationAttrition(view)
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "%s\t%s\tMEAN INCOME\tCOUNT\n", res.First, res.Second)
			for _, p := range res.Points {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%d\n", p.First, p.Second, p.Value, p.Count)
			}
			return w.Flush()
		},
	}
	ff.register(cmd)
	return cmd
}

func newGenerateCmd() *cobra.Command {
	cfg := testkit.DefaultEmployeeConfig()
	var out string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic employee dataset as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := testkit.NewEmployeeGenerator(cfg)
			if out == "-" {
				return gen.WriteCSV(cmd.OutOrStdout())
			}
			if err := gen.WriteCSVFile(out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d employees to %s\n", cfg.Rows, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&cfg.Rows, "rows", cfg.Rows, "Number of employees")
	cmd.Flags().Float64Var(&cfg.BaseAttritionRate, "attrition-rate", cfg.BaseAttritionRate, "Baseline attrition probability")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for deterministic output")
	cmd.Flags().StringVarP(&out, "out", "o", "EA.csv", "Output path, or - for stdout")
	return cmd
}

func newMigrateCmd(src *sourceFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the employees table and its indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := src.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.ErrOrStderr(), "table %s is up to date\n", src.table)
			return nil
		},
	}
}

func newImportCmd(src *sourceFlags) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load a CSV or XLSX dataset into PostgreSQL",
		Long: `Validate a dataset file with the same rules as the dashboard and copy its rows
into the employees table.

Example: attritionlens-cli import EA.csv --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, err := excel.NewDataReader(args[0]).Read(ctx)
			if err != nil {
				return err
			}
			records, err := dataset.Parse(raw)
			if err != nil {
				return err
			}

			db, err := src.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := postgres.NewEmployeeImporter(db, src.table).Import(ctx, records, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "imported %d employees into %s\n", n, src.table)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Truncate the table before importing")
	return cmd
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&ff.attrition, "attrition", nil, "Attrition values to keep")
	cmd.Flags().StringSliceVar(&ff.department, "department", nil, "Departments to keep")
	cmd.Flags().StringSliceVar(&ff.jobRole, "role", nil, "Job roles to keep")
	cmd.Flags().StringSliceVar(&ff.educationField, "education-field", nil, "Education fields to keep")
	cmd.Flags().Float64Var(&ff.ageMin, "age-min", 0, "Minimum age")
	cmd.Flags().Float64Var(&ff.ageMax, "age-max", 0, "Maximum age")
	cmd.Flags().Float64Var(&ff.incMin, "income-min", 0, "Minimum monthly income")
	cmd.Flags().Float64Var(&ff.incMax, "income-max", 0, "Maximum monthly income")
}

// criteria starts from the unrestricted defaults and narrows only what was passed.
func (ff *filterFlags) criteria(cmd *cobra.Command, table *employee.Table) filter.Criteria {
	c := filter.Defaults(table)
	sets := map[employee.Field][]string{
		employee.Attrition:      ff.attrition,
		employee.Department:     ff.department,
		employee.JobRole:        ff.jobRole,
		employee.EducationField: ff.educationField,
	}
	for f, vals := range sets {
		if len(vals) > 0 {
			c.Select(f, vals...)
		}
	}
	if cmd.Flags().Changed("age-min") || cmd.Flags().Changed("age-max") {
		c.Age = narrow(c.Age, ff.ageMin, ff.ageMax, cmd.Flags().Changed("age-min"), cmd.Flags().Changed("age-max"))
	}
	if cmd.Flags().Changed("income-min") || cmd.Flags().Changed("income-max") {
		c.MonthlyIncome = narrow(c.MonthlyIncome, ff.incMin, ff.incMax, cmd.Flags().Changed("income-min"), cmd.Flags().Changed("income-max"))
	}
	return c
}

func narrow(base *filter.Range, min, max float64, hasMin, hasMax bool) *filter.Range {
	r := filter.Range{}
	if base != nil {
		r = *base
	}
	if hasMin {
		r.Min = min
	}
	if hasMax {
		r.Max = max
	}
	return &r
}

func (s *sourceFlags) dataSource(ctx context.Context) (ports.DatasetSource, func(), error) {
	switch strings.ToLower(s.source) {
	case config.SourcePostgres:
		db, err := s.openDB(ctx)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewEmployeeSource(db, s.table), func() { db.Close() }, nil
	case config.SourceFile:
		return excel.NewDataReader(s.path), func() {}, nil
	}
	return nil, nil, apperrors.ConfigInvalid(fmt.Sprintf("unknown source %q (use file or postgres)", s.source))
}

func (s *sourceFlags) openDB(ctx context.Context) (*sqlx.DB, error) {
	if s.databaseURL == "" {
		return nil, apperrors.ConfigInvalid("DATABASE_URL is required for the postgres source")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", s.databaseURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to connect to database")
	}
	if err := migration.NewRunner(s.table).Run(ctx, db); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// loadView loads the table and applies the filter flags. An empty result
// prints the notice and returns a nil view without error.
func loadView(cmd *cobra.Command, src *sourceFlags, ff *filterFlags) (*employee.View, error) {
	ctx := cmd.Context()
	source, closeFn, err := src.dataSource(ctx)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	table, err := dataset.Load(ctx, source)
	if err != nil {
		return nil, err
	}
	view, err := filter.Apply(table, ff.criteria(cmd, table))
	if apperrors.IsEmptyResult(err) {
		fmt.Fprintln(cmd.OutOrStdout(), apperrors.EmptyResultNotice)
		return nil, nil
	}
	return view, err
}

func printResult(out io.Writer, res aggregate.Result) error {
	w := newTable(out)
	fmt.Fprintf(w, "%s\tRATE (%%)\tCOUNT\n", res.Field)
	for _, p := range res.Points {
		fmt.Fprintf(w, "%s\t%.2f\t%d\n", p.Key, p.Value, p.Count)
	}
	return w.Flush()
}

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

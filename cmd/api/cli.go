package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"securecheck/models"
	"securecheck/services"

	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the canned queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range services.NewCatalog(nil).Entries() {
			fmt.Fprintln(cmd.OutOrStdout(), e.Name)
		}
		return nil
	},
}

var queryCmd = &cobra.Command{
	Use:   "query [name]",
	Short: "Run one canned query and print its table",
	Example: `  securecheck query "Count of Stops by Gender"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := services.NewCatalog(services.NewStore(services.NewDialer(cfg.Database), logger))
		notices := &services.Notices{}
		table, err := catalog.Run(cmd.Context(), args[0], notices)
		if err != nil {
			return err
		}
		printNotices(cmd.ErrOrStderr(), notices)
		if table.Empty() {
			fmt.Fprintln(cmd.OutOrStdout(), "No data available for the selected query.")
			return nil
		}
		return printTable(cmd.OutOrStdout(), table)
	},
}

var predictIn models.PredictionInput

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Look up the most common outcome and violation for a stop",
	Example: `  securecheck predict --gender female --age 33 --duration "16-30 Min" --drugs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := predictIn
		now := time.Now()
		if err := services.ValidateInput(&in, now); err != nil {
			return err
		}
		store := services.NewStore(services.NewDialer(cfg.Database), logger)
		notices := &services.Notices{}
		records := models.RecordsFromTable(store.FetchAll(cmd.Context(), notices))
		printNotices(cmd.ErrOrStderr(), notices)

		p := services.Predict(records, in, now)
		fmt.Fprintln(cmd.OutOrStdout(), p.Summary)
		return nil
	},
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Print a bcrypt hash for AUTH_PASSWORD_HASH",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := services.NewAuthService(cfg.JWT, cfg.Auth).HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	f := predictCmd.Flags()
	f.StringVar(&predictIn.DriverGender, "gender", "male", "driver gender (male or female)")
	f.IntVar(&predictIn.DriverAge, "age", 27, "driver age (16-100)")
	f.BoolVar(&predictIn.SearchConducted, "search", false, "a search was conducted")
	f.BoolVar(&predictIn.DrugsRelatedStop, "drugs", false, "the stop was drug related")
	f.StringVar(&predictIn.StopDuration, "duration", services.DefaultStopDurations[0], "stop duration")
	f.StringVar(&predictIn.CountryName, "country", "", "country name")
	f.StringVar(&predictIn.DriverRace, "race", "", "driver race")
	f.StringVar(&predictIn.VehicleNumber, "vehicle", "", "vehicle number")
	f.StringVar(&predictIn.StopDate, "date", "", "stop date, YYYY-MM-DD (default today)")
	f.StringVar(&predictIn.StopTime, "time", "", "stop time, HH:MM (default now)")
}

func printNotices(w io.Writer, n *services.Notices) {
	for _, it := range n.Items {
		fmt.Fprintf(w, "%s: %s\n", it.Level, it.Message)
	}
}

func printTable(w io.Writer, t *models.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = models.Cell(v)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

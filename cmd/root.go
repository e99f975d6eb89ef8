package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/wcampbell0x2a/compact-calendar-cli/internal/calendar"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/config"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/grid"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/logging"
	"github.com/wcampbell0x2a/compact-calendar-cli/internal/rules"
)

var (
	cfgFile       string
	year          int
	sundayStart   bool
	noDimWeekends bool
	workMode      bool
	noStrikePast  bool
	noWeekNumbers bool
	maxNoteWidth  int
	verbosity     int
)

var rootCmd = &cobra.Command{
	Use:   "compact-calendar",
	Short: "Render a year-at-a-glance calendar in the terminal",
	Long: `Compact-calendar renders a whole year as a single dense grid of week
rows, highlighting individual days from declarative rules in a TOML file:
fixed dates, yearly-recurring dates, and date ranges of either kind.`,
	RunE:          runRender,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeatable)")

	rootCmd.Flags().IntVarP(&year, "year", "y", 0, "Year to display (defaults to the current year)")
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "Path to the TOML configuration file")
	rootCmd.Flags().BoolVarP(&sundayStart, "sunday", "s", false, "Start weeks on Sunday (default is Monday)")
	rootCmd.Flags().BoolVar(&noDimWeekends, "no-dim-weekends", false, "Don't dim weekend dates")
	rootCmd.Flags().BoolVarP(&workMode, "work", "w", false, "Work mode: never color Saturdays and Sundays")
	rootCmd.Flags().BoolVar(&noStrikePast, "no-strikethrough-past", false, "Don't cross out past dates")
	rootCmd.Flags().BoolVar(&noWeekNumbers, "no-week-numbers", false, "Hide the week-number gutter")
	rootCmd.Flags().IntVar(&maxNoteWidth, "max-note-width", 0, "Truncate annotations to this width (0 = no limit)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logging.Setup(verbosity)
	log := logging.GetLogger("cli")

	now := time.Now()
	if year == 0 {
		year = now.Year()
	}

	cfg := config.Empty()
	path, found := config.Locate(cfgFile)
	if found {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	} else {
		log.Warn().Msg("no configuration file found, rendering without highlights")
	}

	rangeRules, dateRules, err := cfg.Rules()
	if err != nil {
		return err
	}
	store, err := rules.NewStore(rangeRules, dateRules)
	if err != nil {
		return err
	}

	weekStart := time.Monday
	if sundayStart {
		weekStart = time.Sunday
	}
	opts := rules.Options{
		Today:       calendar.FromTime(now),
		DimWeekends: !noDimWeekends,
		WorkMode:    workMode,
		StrikePast:  !noStrikePast,
	}
	log.Debug().Int("year", year).
		Str("weekStart", weekStart.String()).
		Bool("workMode", opts.WorkMode).
		Msg("resolving")

	days, err := rules.ResolveYear(year, store, opts, weekStart)
	if err != nil {
		return err
	}

	renderer := grid.Renderer{
		Year:            year,
		WeekStart:       weekStart,
		ShowWeekNumbers: !noWeekNumbers,
		MaxNoteWidth:    maxNoteWidth,
		Styles:          grid.NewStyles(outputRenderer()),
	}
	out, err := renderer.Render(days, store.Notes(year))
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

// outputRenderer picks the color profile for stdout: full color on a
// terminal (subject to the usual TERM/NO_COLOR environment), plain text
// when piped.
func outputRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		r.SetColorProfile(termenv.EnvColorProfile())
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

package app

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/steamtrack/steamtrack"
	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/errors"
	"github.com/steamtrack/steamtrack/pkg/logging"
	"github.com/steamtrack/steamtrack/pkg/pins"
	"github.com/steamtrack/steamtrack/pkg/rank"
	"github.com/steamtrack/steamtrack/pkg/types"
)

// RootCommand builds the full command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "steamtrack",
		Short: "Aggregate game facts from across the Steam ecosystem",
		Long: `steamtrack reconciles per-game data from the Steam storefront,
SteamSpy, CheapShark, PCGamingWiki, and ProtonDB into one record,
and browses the ranked lists around it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetDefault(*a.logger)
			cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.config.Verbose, "verbose", "v", a.config.Verbose, "enable debug logging")
	flags.BoolVarP(&a.config.Quiet, "quiet", "q", a.config.Quiet, "only log warnings and errors")
	flags.String("config", "", "config file (default ~/.steamtrack.yaml)")
	flags.String("cc", a.config.RegionCC, "storefront country code")
	flags.String("lang", a.config.RegionLang, "storefront language")
	flags.String("proxy", a.config.Proxy, "CORS-style proxy prefix for provider requests")
	_ = viper.BindPFlag("region.cc", flags.Lookup("cc"))
	_ = viper.BindPFlag("region.lang", flags.Lookup("lang"))
	_ = viper.BindPFlag("proxy", flags.Lookup("proxy"))

	root.AddCommand(
		a.gameCommand(),
		a.searchCommand(),
		a.browseCommand(),
		a.trendingCommand(),
		a.suggestCommand(),
		a.pinsCommand(),
		a.versionCommand(),
	)
	return root
}

// gameCommand aggregates and prints the full record for one game.
func (a *App) gameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "game <name>",
		Short: "Aggregate the full fact sheet for one game",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}
			term := strings.Join(args, " ")

			rows, err := client.Search(cmd.Context(), term)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return errors.NewNotFoundError("game", term)
			}

			record, err := client.Game(cmd.Context(), rows[0].AppID, rows[0].Name)
			if err != nil {
				return err
			}
			printRecord(cmd, record)
			return nil
		},
	}
}

// searchCommand lists storefront matches for a term.
func (a *App) searchCommand() *cobra.Command {
	var sortKey string
	var page int

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search the storefront by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			rows, err := client.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			rows = sortRows(client.Sort, rows, sortKey)
			printRows(cmd, rank.Rows(rows, constants.DefaultPageSize, page), len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort by name, date, or popularity")
	cmd.Flags().IntVar(&page, "page", 0, "page index")
	return cmd
}

// browseCommand lists games for a storefront tag or category.
func (a *App) browseCommand() *cobra.Command {
	var sortKey string
	var page int

	cmd := &cobra.Command{
		Use:   "browse <tag>",
		Short: "Browse the storefront by tag or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			rows, err := client.Browse(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			rows = sortRows(client.Sort, rows, sortKey)
			printRows(cmd, rank.Rows(rows, constants.DefaultPageSize, page), len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort by name, date, or popularity")
	cmd.Flags().IntVar(&page, "page", 0, "page index")
	return cmd
}

// trendingCommand lists one of the trending charts, defaulting to the
// most-played of the last two weeks.
func (a *App) trendingCommand() *cobra.Command {
	var sortKey string
	var page int
	var mode string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List a trending chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			trendingMode, err := parseTrendingMode(mode)
			if err != nil {
				return err
			}
			rows, err := client.Trending(cmd.Context(), trendingMode)
			if err != nil {
				return err
			}
			rows = sortRows(client.Sort, rows, sortKey)
			printRows(cmd, rank.Rows(rows, constants.DefaultPageSize, page), len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&sortKey, "sort", "", "sort by name, date, or popularity")
	cmd.Flags().IntVar(&page, "page", 0, "page index")
	cmd.Flags().StringVar(&mode, "mode", "2weeks", "chart: 2weeks, topsellers, or new")
	return cmd
}

// parseTrendingMode maps the CLI chart names onto the client's modes.
func parseTrendingMode(mode string) (steamtrack.TrendingMode, error) {
	switch mode {
	case "", "2weeks":
		return steamtrack.TrendingTwoWeeks, nil
	case "topsellers":
		return steamtrack.TrendingTopSellers, nil
	case "new":
		return steamtrack.TrendingNewReleases, nil
	default:
		return "", errors.NewValidationError("mode", mode, "must be 2weeks, topsellers, or new")
	}
}

// suggestCommand prints autocomplete candidates from the app catalog.
func (a *App) suggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Suggest game names from the app catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.Client()
			if err != nil {
				return err
			}

			suggestions, err := client.Suggest(cmd.Context(), strings.Join(args, " "), 0)
			if err != nil {
				return err
			}
			for _, s := range suggestions {
				cmd.Printf("%s\t%s\n", s.AppID, s.Name)
			}
			return nil
		},
	}
}

// pinsCommand manages the pinned-games list.
func (a *App) pinsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pins",
		Short: "Manage the pinned-games list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pinned games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := a.pinStore()
			list, err := store.List()
			if err != nil {
				return err
			}
			for _, pin := range list {
				cmd.Printf("%s\t%s\n", pin.AppID, pin.Name)
			}
			cmd.Printf("%d of %d pins used\n", len(list), constants.MaxPins)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <appid> <name>",
		Short: "Pin a game",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			store := a.pinStore()
			return store.Add(pins.Pin{AppID: args[0], Name: strings.Join(args[1:], " ")})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <appid>",
		Short: "Unpin a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			store := a.pinStore()
			return store.Remove(args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all pins",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			store := a.pinStore()
			return store.Clear()
		},
	})

	return cmd
}

// versionCommand prints build information.
func (a *App) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("steamtrack %s (commit %s, built %s)\n", a.version, a.commit, a.date)
		},
	}
}

// pinStore opens the configured pin store without building the full
// engine client.
func (a *App) pinStore() pins.Store {
	return pins.NewFileStore(a.config.PinsFile)
}

// sortRows applies an optional sort key; an empty key keeps the
// provider's order.
func sortRows(sorter func([]types.ListRow, rank.Key, rank.Direction) []types.ListRow, rows []types.ListRow, key string) []types.ListRow {
	switch key {
	case "name":
		return sorter(rows, rank.ByName, rank.Ascending)
	case "date":
		return sorter(rows, rank.ByDate, rank.Descending)
	case "popularity":
		return sorter(rows, rank.ByPopularity, rank.Descending)
	default:
		return rows
	}
}

// printRows renders a list page as a table.
func printRows(cmd *cobra.Command, rows []types.ListRow, total int) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "APPID\tNAME\tRELEASED\tPRICE\tOWNERS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.AppID, row.Name, row.Released, row.Price, row.Owners)
	}
	w.Flush() //nolint:errcheck
	if total > len(rows) {
		cmd.Printf("showing %d of %d results\n", len(rows), total)
	}
}

// printRecord renders the full fact sheet.
func printRecord(cmd *cobra.Command, r *types.GameRecord) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	line := func(label, value string) {
		fmt.Fprintf(w, "%s\t%s\n", label, value)
	}

	line("Name", r.Name)
	line("App ID", r.AppID)
	if !types.IsUnknown(r.Description) {
		line("Description", r.Description)
	}
	line("Developer", r.Developer)
	line("Publisher", r.Publisher)
	if len(r.Tags) > 0 {
		line("Tags", strings.Join(r.Tags, ", "))
	}

	line("Price", r.Price)
	line("Historical low", r.HistoricalLow)
	line("Best deal", r.BestDeal)

	line("Players now", optional(r.LivePlayers))
	line("Peak (2 weeks)", optional(r.TwoWeekCCU))
	line("Owners", r.Owners.Text)
	line("Score", r.Score)
	line("Reviews", r.ReviewCount)

	line("Avg playtime", r.AvgForever)
	line("Median playtime", r.MedianForever)
	line("Avg last 2 weeks", r.Avg2Weeks)

	line("Released", r.Release.Display)
	line("Platforms", platformList(r.Platforms))
	line("Languages", optional(r.Languages))
	line("Controller", r.Controller)
	line("Storage", r.Storage)
	line("Achievements", r.Achievements)

	line("Ultrawide", r.Ultrawide)
	line("HDR", r.HDR)
	line("Steam Deck", r.Deck)

	w.Flush() //nolint:errcheck
}

func optional(n *int) string {
	if n == nil {
		return types.Unknown
	}
	return fmt.Sprintf("%d", *n)
}

func platformList(platforms []string) string {
	if len(platforms) == 0 {
		return types.Unknown
	}
	return strings.Join(platforms, ", ")
}

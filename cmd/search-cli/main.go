package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/brunotrento11/Teste-sub000/internal/search"
	"github.com/brunotrento11/Teste-sub000/internal/search/config"
	"github.com/brunotrento11/Teste-sub000/pkg/logger"
	"github.com/brunotrento11/Teste-sub000/pkg/redis"

	"github.com/spf13/cobra"
)

var (
	configPath string

	families       []string
	riskBand       string
	maturityBefore string
	pages          int
	riskCategory   string
	profitBucket   string
	maturityBucket string
	sortSpec       string
	suggestLimit   int
)

// session bundles the persisted client state of one CLI run.
type session struct {
	cfg     *config.Config
	logger  *logger.Logger
	store   search.Store
	state   *search.State
	history *search.LatencyHistory
	cache   *search.Cache
	flush   func() error
	close   func()
}

func openSession(ctx context.Context) *session {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	s := &session{cfg: cfg, logger: appLogger, flush: func() error { return nil }, close: func() {}}

	switch cfg.State.Backend {
	case "redis":
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		s.store = search.NewRedisStore(redisClient.Client, cfg.State.KeyPrefix)
		s.close = func() { _ = redisClient.Close() }
	default:
		fileStore, err := search.NewFileStore(cfg.State.Path)
		if err != nil {
			appLogger.Fatal("Failed to open state file", logger.ErrorField(err))
		}
		s.store = fileStore
		s.flush = fileStore.Flush
	}

	s.state = search.NewState(s.store, appLogger)
	s.history = s.state.RestoreHistory(ctx)
	s.cache = s.state.RestoreCache(ctx)
	return s
}

// save persists latencies and cache. Failures are logged; the next run starts from defaults.
func (s *session) save(ctx context.Context) {
	if err := s.state.SaveLatencies(ctx, s.history.Samples()); err != nil {
		s.logger.Warn("Failed to save latency history", logger.ErrorField(err))
	}
	if err := s.state.SaveCache(ctx, s.cache); err != nil {
		s.logger.Warn("Failed to save search cache", logger.ErrorField(err))
	}
	if err := s.flush(); err != nil {
		s.logger.Warn("Failed to flush client state", logger.ErrorField(err))
	}
	s.close()
	_ = s.logger.Sync()
}

func (s *session) dialog() *search.Dialog {
	querier := search.NewHTTPQuerier(s.cfg.Server.BaseURL, s.cfg.Server.Timeout)
	return search.NewDialog(querier, s.history, s.cache, s.logger)
}

func serverFilters(text string) (search.ServerFilters, error) {
	f := search.ServerFilters{Text: text, Families: families, RiskBand: riskBand}
	if riskBand != "" {
		if _, _, ok := search.RiskBandRange(riskBand); !ok {
			return f, fmt.Errorf("unknown risk band %q", riskBand)
		}
	}
	for _, fam := range families {
		if _, ok := search.FamilyAssetTypes[fam]; !ok {
			return f, fmt.Errorf("unknown asset family %q", fam)
		}
	}
	if maturityBefore != "" {
		t, err := time.Parse("2006-01-02", maturityBefore)
		if err != nil {
			return f, fmt.Errorf("invalid maturity-before date: %w", err)
		}
		f.MaturityBefore = &t
	}
	return f, nil
}

func clientFilters(text string) (search.ClientFilters, error) {
	keys, err := parseSort(sortSpec)
	if err != nil {
		return search.ClientFilters{}, err
	}
	return search.ClientFilters{
		Text:          text,
		RiskCategory:  riskCategory,
		Profitability: profitBucket,
		Maturity:      maturityBucket,
		Sort:          keys,
	}, nil
}

// parseSort reads "risk_score,-profitability" into sort keys; a leading "-" sorts descending.
func parseSort(raw string) ([]search.SortKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var keys []search.SortKey
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := search.SortField(strings.TrimPrefix(part, "-"))
		switch field {
		case search.SortRiskScore, search.SortProfitability, search.SortMaturity, search.SortLiquidity, search.SortCode:
		default:
			return nil, fmt.Errorf("unknown sort field %q", field)
		}
		keys = append(keys, search.SortKey{Field: field, Desc: desc})
	}
	return keys, nil
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Query the asset search view page by page",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := ""
		if len(args) == 1 {
			text = args[0]
		}
		sf, err := serverFilters(text)
		if err != nil {
			return err
		}
		cf, err := clientFilters("")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		s := openSession(ctx)
		defer s.save(ctx)

		d := s.dialog()
		if err := d.SetFilters(ctx, sf); err != nil {
			return err
		}
		for i := 1; i < pages && d.HasMore(); i++ {
			if _, err := d.LoadMore(ctx); err != nil {
				return err
			}
		}

		rows := d.Rows(cf)
		printRows(os.Stdout, rows)
		fmt.Printf("\n%d shown, %d matching on server", len(rows), d.Total())
		if d.HasMore() {
			fmt.Print(" (more available, raise --pages)")
		}
		fmt.Println()
		return nil
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest <text>",
	Short: "Show suggestions from the local search cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		s := openSession(ctx)
		defer s.save(ctx)

		printSuggestions(os.Stdout, s.cache.Suggestions(args[0], suggestLimit))
		return nil
	},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Type queries line by line; the server is queried after the adaptive debounce delay",
	RunE: func(cmd *cobra.Command, args []string) error {
		base, err := serverFilters("")
		if err != nil {
			return err
		}
		cf, err := clientFilters("")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := openSession(ctx)
		defer s.save(context.Background())

		d := s.dialog()
		var out sync.Mutex
		debouncer := search.NewDebouncer(s.history, s.cfg.Debounce, func(text string) {
			f := base
			f.Text = text
			err := d.SetFilters(ctx, f)

			out.Lock()
			defer out.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
				return
			}
			printRows(os.Stdout, d.Rows(cf))
			fmt.Printf("%d matching on server, next delay %s\n> ", d.Total(), s.history.Delay(s.cfg.Debounce))
		})
		defer debouncer.Stop()

		fmt.Printf("debounce delay %s; type a query, :more for the next page, :q to quit\n> ", debouncer.CurrentDelay())
		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					return nil
				}
				switch line = strings.TrimSpace(line); line {
				case ":q":
					return nil
				case ":more":
					if _, err := d.LoadMore(ctx); err != nil {
						fmt.Fprintf(os.Stderr, "load more failed: %v\n", err)
					}
					out.Lock()
					printRows(os.Stdout, d.Rows(cf))
					fmt.Print("> ")
					out.Unlock()
				default:
					out.Lock()
					printSuggestions(os.Stdout, s.cache.Suggestions(line, search.DefaultSuggestions))
					out.Unlock()
					debouncer.Set(line)
				}
			}
		}
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Reset the local search cache to the popular assets",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		s := openSession(ctx)
		defer s.save(ctx)

		s.cache.Clear()
		fmt.Println("Search cache cleared.")
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "search-cli", SilenceUsage: true}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-search-cli.yaml", "Path to the configuration file")

	for _, c := range []*cobra.Command{searchCmd, interactiveCmd} {
		c.Flags().StringSliceVar(&families, "family", nil, "Asset family filter, repeatable (tesouro, credito_bancario, credito_privado, isentos, acoes, fiis, etfs, bdrs)")
		c.Flags().StringVar(&riskBand, "risk-band", "", "Risk band filter (baixo, moderado, alto)")
		c.Flags().StringVar(&maturityBefore, "maturity-before", "", "Only assets maturing before this date (YYYY-MM-DD)")
		c.Flags().StringVar(&riskCategory, "category", "", "Client-side risk category filter")
		c.Flags().StringVar(&profitBucket, "profitability", "", "Client-side profitability bucket (ate_10, 10_a_15, acima_15)")
		c.Flags().StringVar(&maturityBucket, "maturity", "", "Client-side maturity bucket (ate_1_ano, 1_a_5_anos, acima_5_anos)")
		c.Flags().StringVar(&sortSpec, "sort", "", "Sort keys, e.g. risk_score,-profitability")
	}
	searchCmd.Flags().IntVar(&pages, "pages", 1, "Number of pages to load")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", search.DefaultSuggestions, "Maximum suggestions")

	rootCmd.AddCommand(searchCmd, suggestCmd, interactiveCmd, clearCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing search-cli: %s\n", err)
		os.Exit(1)
	}
}

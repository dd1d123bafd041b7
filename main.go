// Maderas Premium: server-rendered storefront for a sustainable wood supplier.
// Author: vesaa | License: MIT | https://github.com/vesaa/maderas
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/vesaa/maderas/internal/config"
	"github.com/vesaa/maderas/internal/gateway"
	"github.com/vesaa/maderas/internal/logging"
	"github.com/vesaa/maderas/internal/server"
	"github.com/vesaa/maderas/internal/site"
	"github.com/vesaa/maderas/internal/store"
)

const asciiLogo = `
 ███╗   ███╗ █████╗ ██████╗ ███████╗██████╗  █████╗ ███████╗
 ████╗ ████║██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝
 ██╔████╔██║███████║██║  ██║█████╗  ██████╔╝███████║███████╗
 ██║╚██╔╝██║██╔══██║██║  ██║██╔══╝  ██╔══██╗██╔══██║╚════██║
 ██║ ╚═╝ ██║██║  ██║██████╔╝███████╗██║  ██║██║  ██║███████║
 ╚═╝     ╚═╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝
`

const version = "v0.1.0"

func printBanner() {
	fmt.Print(asciiLogo)
	fmt.Printf("  ► Maderas Premium %s  |  Author: vesaa\n\n", version)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the CLI tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "maderas",
		Short: "Maderas Premium storefront and contact inbox for a wood supplier",
		Long: `Maderas serves the Maderas Premium landing page (catalogue, features and
contact form) as plain HTML, and keeps the inquiries visitors send.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Path to config.yaml (default ./config.yaml or ~/.maderas/config.yaml)")

	// ── serve subcommand ──────────────────────────────────────────────────────
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			printBanner()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	// ── inquiries subcommand ──────────────────────────────────────────────────
	inquiriesCmd := &cobra.Command{
		Use:   "inquiries",
		Short: "List stored contact inquiries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			return listInquiries(cmd.Context(), cfg, limit)
		},
	}
	inquiriesCmd.Flags().Int("limit", 20, "Maximum number of inquiries to print")

	// ── version subcommand ────────────────────────────────────────────────────
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print Maderas version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Maderas %s  |  Author: vesaa\n", version)
		},
	}

	root.AddCommand(serveCmd, inquiriesCmd, versionCmd)
	return root
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func serve(cfg *config.Config) error {
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	st, err := store.Open(cfg, logging.Module(log, "store"))
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer st.Close()

	chain, err := gateway.FromConfig(cfg, st, logging.Module(log, "gateway"))
	if err != nil {
		return fmt.Errorf("building contact gateway: %w", err)
	}

	// Inject security settings into server package globals.
	server.SetJWTSecret(cfg.JWTSecret)
	if err := server.SetAdminCredentials(cfg.AdminUser, cfg.AdminPass); err != nil {
		return err
	}

	metrics, err := server.NewMetrics()
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	siteLog := logging.Module(log, "site")
	visitors, err := server.NewVisitors(server.VisitorsOptions{
		Secret:   cfg.SessionSecret,
		TTL:      cfg.SessionTTL(),
		Secure:   cfg.SecureCookies,
		MaxPages: cfg.MaxVisitors,
		NewPage: func() *site.Page {
			return site.NewPage(chain, siteLog, site.WithSuccessDisplay(cfg.SuccessDisplay()))
		},
		OnMount: metrics.ObservePage,
		Log:     logging.Module(log, "visitors"),
	})
	if err != nil {
		return fmt.Errorf("initializing sessions: %w", err)
	}
	if err := metrics.TrackVisitors(visitors); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), logging.GinMiddleware(logging.Module(log, "http")))
	server.RegisterSiteRoutes(engine, visitors, metrics, siteLog)
	server.RegisterAdminRoutes(engine, st)
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))
	server.RegisterStaticFiles(engine)

	fmt.Printf("  ✓ Storefront      → http://%s\n", cfg.Addr())
	fmt.Printf("  ✓ Contact gateway → %v\n", chain.Steps())
	fmt.Printf("  ✓ Admin API login: %s\n\n", cfg.AdminUser)

	// Shut down gracefully on SIGINT/SIGTERM.
	srv := &http.Server{Addr: cfg.Addr(), Handler: engine, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-quit:
		fmt.Println("\n  → Shutting down gracefully…")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		// let submissions already handed to the gateway finish
		visitors.Close()
		log.Info("server stopped")
		return nil
	}
}

func listInquiries(ctx context.Context, cfg *config.Config, limit int) error {
	st, err := store.Open(cfg, logging.Discard())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	rows, err := st.ListInquiries(ctx, limit)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No inquiries yet.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tNAME\tEMAIL\tWOOD\tMESSAGE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Name, r.Email, r.WoodType, truncate(r.Message, 40))
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}


// Command nextmcp starts an MCP server that exposes a Nextcloud instance's
// notes, calendars, contacts, tables and files as tools.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/nextmcp/internal/analytics"
	"github.com/rusq/nextmcp/internal/mcp"
	"github.com/rusq/nextmcp/internal/nextcloud"
	"github.com/rusq/nextmcp/internal/web"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// params is the command line parameters.
type params struct {
	host     string
	username string
	password string

	transport     string
	listenAddr    string
	analyticsFile string
	flushInterval time.Duration

	printVersion bool
	verbose      bool
}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:])
	if err != nil {
		slog.Error("invalid parameters", "error", err)
		os.Exit(1)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}
	if p.verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, p); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, p params) error {
	lg := slog.Default()

	cl, err := nextcloud.New(p.host, p.username, p.password, nextcloud.WithLogger(lg))
	if err != nil {
		return fmt.Errorf("nextcloud client: %w", err)
	}

	store := analytics.NewFileStore(p.analyticsFile)
	tracker := analytics.Load(store, lg)

	srv := mcp.New(cl,
		mcp.WithLogger(lg),
		mcp.WithTracker(tracker),
	)

	// The transport ending is a clean exit (stdio returns nil on EOF), so it
	// must cancel the group explicitly or the auto-saver keeps it alive.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return tracker.AutoSave(ctx, store, p.flushInterval)
	})

	switch strings.ToLower(p.transport) {
	case "stdio", "":
		eg.Go(func() error {
			defer cancel()
			return srv.ServeStdio(ctx)
		})
	case "http":
		websrv := web.New(tracker, srv.Handler(), lg)
		eg.Go(func() error {
			defer cancel()
			return websrv.ListenAndServe(ctx, p.listenAddr)
		})
	default:
		return fmt.Errorf("unknown transport %q (use \"stdio\" or \"http\")", p.transport)
	}

	return eg.Wait()
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string) (params, error) {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"nextmcp %s\n"+
				"MCP server for Nextcloud: exposes notes, calendars, contacts, tables\n"+
				"and files as tools over stdio or streamable HTTP.\n\n"+
				"Usage:  %s [flags]\n\n",
			build, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}

	var p params
	fs.StringVar(&p.host, "host", osenv.Value("NEXTCLOUD_HOST", ""), "Nextcloud base `URL`, e.g. https://cloud.example.com (environment: NEXTCLOUD_HOST)")
	fs.StringVar(&p.username, "user", osenv.Value("NEXTCLOUD_USERNAME", ""), "Nextcloud `username` (environment: NEXTCLOUD_USERNAME)")
	fs.StringVar(&p.password, "password", osenv.Secret("NEXTCLOUD_PASSWORD", ""), "Nextcloud `password` or app password (environment: NEXTCLOUD_PASSWORD)")

	fs.StringVar(&p.transport, "transport", "stdio", "MCP transport: \"stdio\" or \"http\"")
	fs.StringVar(&p.listenAddr, "listen", "127.0.0.1:8080", "address to listen on when -transport=http")
	fs.StringVar(&p.analyticsFile, "analytics-file", osenv.Value("NEXTMCP_ANALYTICS_FILE", "analytics.json"), "`path` of the analytics snapshot file (environment: NEXTMCP_ANALYTICS_FILE)")
	fs.DurationVar(&p.flushInterval, "analytics-interval", analytics.DefaultFlushInterval, "analytics snapshot `interval`")

	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")
	fs.BoolVar(&p.verbose, "v", false, "verbose messages")

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	return p, p.validate()
}

func (p *params) validate() error {
	if p.printVersion {
		return nil
	}
	if p.host == "" {
		return fmt.Errorf("nextcloud host is required (flag -host or NEXTCLOUD_HOST)")
	}
	if p.username == "" {
		return fmt.Errorf("nextcloud username is required (flag -user or NEXTCLOUD_USERNAME)")
	}
	if p.password == "" {
		return fmt.Errorf("nextcloud password is required (flag -password or NEXTCLOUD_PASSWORD)")
	}
	return nil
}

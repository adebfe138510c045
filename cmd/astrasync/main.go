package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/astrasync/astrasync-go/pkg/astrasync"
	"github.com/astrasync/astrasync-go/pkg/config"
	"github.com/astrasync/astrasync-go/pkg/normalize"
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/telemetry"
)

type globalFlags struct {
	ConfigPath string
	BaseURL    string
	Timeout    time.Duration
	TimeoutSet bool
	JSON       bool
	Help       bool
}

type statusResult struct {
	Version   string `json:"version"`
	BaseURL   string `json:"base_url"`
	Reachable bool   `json:"reachable"`
}

type detectResult struct {
	File      string `json:"file"`
	Framework string `json:"framework"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	global, args, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	if global.Help || len(args) == 0 {
		printUsage()
		return
	}

	cfg, err := config.Load(global.ConfigPath)
	if err != nil {
		fatal(err)
	}
	if global.BaseURL != "" {
		cfg.API.BaseURL = global.BaseURL
	}
	if !global.TimeoutSet && cfg.API.Timeout > 0 {
		global.Timeout = cfg.API.Timeout
	}

	telemetry.ConfigureSlog(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	shutdown, err := telemetry.InitWithConfig("astrasync-cli", astrasync.Version, telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		fatal(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	}()

	switch cmd := args[0]; cmd {
	case "register":
		runRegister(ctx, global, cfg, args[1:])
	case "verify":
		runVerify(ctx, global, cfg, args[1:])
	case "detect":
		runDetect(global, args[1:])
	case "status":
		ensureNoArgs(args[1:])
		runStatus(global, cfg)
	case "help":
		printUsage()
	case "version":
		fmt.Println(astrasync.Version)
	default:
		fatal(fmt.Errorf("unknown command %q", cmd))
	}
}

func parseGlobalFlags(args []string) (globalFlags, []string, error) {
	flags := globalFlags{
		BaseURL: getenv("ASTRASYNC_API_BASE_URL", ""),
		Timeout: 30 * time.Second,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return flags, args[i+1:], nil
		}
		if !strings.HasPrefix(arg, "-") {
			return flags, args[i:], nil
		}
		switch {
		case arg == "-h" || arg == "--help":
			flags.Help = true
			return flags, nil, nil
		case arg == "--json":
			flags.JSON = true
		case arg == "--config":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("missing value for --config")
			}
			flags.ConfigPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			flags.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--base-url":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("missing value for --base-url")
			}
			flags.BaseURL = args[i+1]
			i++
		case strings.HasPrefix(arg, "--base-url="):
			flags.BaseURL = strings.TrimPrefix(arg, "--base-url=")
		case arg == "--timeout":
			if i+1 >= len(args) {
				return flags, nil, fmt.Errorf("missing value for --timeout")
			}
			value, err := time.ParseDuration(args[i+1])
			if err != nil {
				return flags, nil, fmt.Errorf("invalid --timeout: %w", err)
			}
			flags.Timeout = value
			flags.TimeoutSet = true
			i++
		case strings.HasPrefix(arg, "--timeout="):
			value, err := time.ParseDuration(strings.TrimPrefix(arg, "--timeout="))
			if err != nil {
				return flags, nil, fmt.Errorf("invalid --timeout: %w", err)
			}
			flags.Timeout = value
			flags.TimeoutSet = true
		default:
			return flags, nil, fmt.Errorf("unknown global flag %q", arg)
		}
	}
	return flags, nil, nil
}

func runRegister(ctx context.Context, flags globalFlags, cfg *config.Config, args []string) {
	cmd := flag.NewFlagSet("register", flag.ContinueOnError)
	email := cmd.String("email", cfg.Auth.Email, "developer email")
	owner := cmd.String("owner", "", "owner override")
	if err := cmd.Parse(args); err != nil {
		fatal(err)
	}
	if cmd.NArg() != 1 {
		fatal(fmt.Errorf("usage: astrasync register [--email <addr>] [--owner <name>] <file>"))
	}

	input, err := readInput(cmd.Arg(0))
	if err != nil {
		fatal(err)
	}

	client, err := newClient(cfg, *email)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(ctx, flags.Timeout)
	defer cancel()

	opts := []astrasync.RegisterOption{}
	if *owner != "" {
		opts = append(opts, astrasync.WithOwner(*owner))
	}
	resp, err := client.Register(ctx, input, opts...)
	if err != nil {
		fatal(err)
	}

	if flags.JSON {
		printJSON(resp)
		return
	}
	writer := newTabWriter()
	writeRow(writer, "AGENT ID", "STATUS", "TRUST SCORE")
	writeRow(writer, resp.AgentID, resp.Status, fmt.Sprintf("%d", resp.TrustScore))
	_ = writer.Flush()
}

func runVerify(ctx context.Context, flags globalFlags, cfg *config.Config, args []string) {
	if len(args) != 1 {
		fatal(fmt.Errorf("usage: astrasync verify <agent_id>"))
	}

	client, err := newClient(cfg, cfg.Auth.Email)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(ctx, flags.Timeout)
	defer cancel()

	resp, err := client.Verify(ctx, args[0])
	if err != nil {
		fatal(err)
	}

	if flags.JSON {
		printJSON(resp)
		return
	}
	writer := newTabWriter()
	writeRow(writer, "AGENT ID", "VERIFIED", "STATUS", "TRUST SCORE")
	writeRow(writer, resp.AgentID, fmt.Sprintf("%t", resp.Verified), resp.Status, fmt.Sprintf("%d", resp.TrustScore))
	_ = writer.Flush()
}

func runDetect(flags globalFlags, args []string) {
	cmd := flag.NewFlagSet("detect", flag.ContinueOnError)
	full := cmd.Bool("full", false, "print the normalized record instead of the framework tag")
	if err := cmd.Parse(args); err != nil {
		fatal(err)
	}
	if cmd.NArg() != 1 {
		fatal(fmt.Errorf("usage: astrasync detect [--full] <file>"))
	}

	path := cmd.Arg(0)
	input, err := readInput(path)
	if err != nil {
		fatal(err)
	}

	if *full {
		printRecord(flags, normalize.Normalize(input))
		return
	}

	result := detectResult{File: path, Framework: normalize.Detect(input)}
	if flags.JSON {
		printJSON(result)
		return
	}
	fmt.Println(result.Framework)
}

func runStatus(flags globalFlags, cfg *config.Config) {
	result := statusResult{
		Version:   astrasync.Version,
		BaseURL:   cfg.API.BaseURL,
		Reachable: checkHTTP(cfg.API.BaseURL),
	}

	if flags.JSON {
		printJSON(result)
		return
	}

	fmt.Printf("AstraSync CLI: %s\n", result.Version)
	fmt.Printf("Registry: %s (reachable=%t)\n", result.BaseURL, result.Reachable)
}

func newClient(cfg *config.Config, email string) (*astrasync.Client, error) {
	return astrasync.NewClient(
		astrasync.WithEmail(email),
		astrasync.WithAPIKey(cfg.Auth.APIKey),
		astrasync.WithPassword(cfg.Auth.Password),
		astrasync.WithBaseURL(cfg.API.BaseURL),
		astrasync.WithTimeout(cfg.API.Timeout),
	)
}

// readInput loads an agent description file. The content is handed to
// the normalizer as raw text, which parses JSON and YAML alike.
func readInput(path string) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(payload), nil
}

func printRecord(flags globalFlags, rec *record.Agent) {
	if flags.JSON {
		printJSON(rec)
		return
	}
	writer := newTabWriter()
	writeRow(writer, "FIELD", "VALUE")
	writeRow(writer, "agentType", rec.AgentType)
	writeRow(writer, "name", rec.Name)
	writeRow(writer, "description", truncateMessage(rec.Description, 60))
	writeRow(writer, "owner", rec.Owner)
	writeRow(writer, "version", rec.Version)
	writeRow(writer, "capabilities", strings.Join(rec.Capabilities, ", "))
	writeRow(writer, "trustScore", fmt.Sprintf("%d", rec.TrustScore))
	_ = writer.Flush()
}

func checkTCP(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return false
	}
	conn, err := net.DialTimeout("tcp", addr, 500*time.Millisecond)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func checkHTTP(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Host
	if host == "" {
		host = parsed.Path
	}
	if host == "" {
		return false
	}
	if !strings.Contains(host, ":") {
		if parsed.Scheme == "https" {
			host += ":443"
		} else {
			host += ":80"
		}
	}
	return checkTCP(host)
}

func printJSON(value any) {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Println(string(payload))
}

func newTabWriter() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
}

func writeRow(writer *tabwriter.Writer, cols ...string) {
	for i, col := range cols {
		cols[i] = normalizeCell(col)
	}
	fmt.Fprintln(writer, strings.Join(cols, "\t"))
}

func normalizeCell(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return strings.Join(strings.Fields(value), " ")
}

func truncateMessage(value string, limit int) string {
	value = normalizeCell(value)
	if limit <= 0 || len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}

func printUsage() {
	fmt.Println(`AstraSync CLI

Usage:
  astrasync [global flags] <command> [args]

Global flags:
  --config <path>      Path to config file (yaml)
  --base-url <url>     Registry base URL (default https://astrasync.ai/api/v1)
  --timeout <dur>      Request timeout (default 30s)
  --json               JSON output

Commands:
  register [--email <addr>] [--owner <name>] <file>
  verify <agent_id>
  detect [--full] <file>
  status
  version`)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func ensureNoArgs(args []string) {
	if len(args) > 0 {
		fatal(fmt.Errorf("unexpected args: %v", args))
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

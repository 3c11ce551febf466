package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/candor/internal/api"
	"github.com/ppiankov/candor/internal/logging"
	"github.com/ppiankov/candor/internal/pipeline"
	"github.com/ppiankov/candor/internal/telemetry"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Serve exposes the analyzer over HTTP:

  POST /api/analyze       JSON {text, place_name, star_rating, business_type}
  POST /api/analyze-csv   multipart upload, field "file"
  GET  /api/health        service status
  GET  /metrics           Prometheus metrics

Example:
  candor serve
  candor serve --addr :9090
  CANDOR_SERVER_RATE_LIMIT_ENABLED=false candor serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	metrics := telemetry.NewMetrics()

	a, err := newApp(pipeline.WithRecorder(metrics))
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	if !a.cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("analyzer ready",
		logging.Int("max_rows", a.cfg.Batch.MaxRows),
		logging.Int("workers", a.cfg.Batch.Workers),
		logging.Bool("rate_limit", a.cfg.Server.RateLimit.Enabled),
	)
	return api.NewServer(a.cfg.Server, a.analyzer, a.logger, metrics).Run(ctx)
}

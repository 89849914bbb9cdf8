package cli

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/verdict/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction HTTP API",
	Long: `Serve starts the HTTP API:
  POST /v1/extract   {"id": "...", "text": "..."} or {"html": "..."}
  POST /v1/upload    multipart "file": a .txt record file or a .json result
  GET  /healthz      liveness and enabled annotators
  GET  /metrics      Prometheus metrics

Example:
  verdict serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default from config)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	fmt.Fprintf(os.Stderr, "Verdict %s serving on %s (annotators: %v)\n",
		Version, a.cfg.Server.Addr, a.pipeline.Registry().Enabled())

	return server.New(a.pipeline, a.cfg, a.metrics, a.logger).Run(cmd.Context())
}

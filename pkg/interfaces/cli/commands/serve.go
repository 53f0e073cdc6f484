package commands

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sporadiq/mrp/pkg/application/services"
	"github.com/sporadiq/mrp/pkg/interfaces/httpapi"
	"github.com/sporadiq/mrp/pkg/logger"
)

var (
	servePort    int
	serveLogFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the planning HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port (PORT env overrides)")
	serveCmd.Flags().StringVar(&serveLogFile, "log-file", "", "optional rotating log file")
}

func runServe(cmd *cobra.Command, args []string) error {
	// .env is optional; missing files are not an error.
	_ = godotenv.Load()

	log := logger.New(newLogger(serveLogFile))
	logger.SetGlobalLogger(log)

	port := servePort
	if env := os.Getenv("PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpapi.New(services.NewPlanService(log), log, port)
	return server.Start(ctx)
}

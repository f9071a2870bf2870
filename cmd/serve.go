package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skill-heatmap/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the comparison dashboard over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", defaultAddr, "address to listen on")

	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(cmd *cobra.Command) {
	ctx := cmd.Context()
	env := prepare(cmd.Name())
	logger := env.logger

	b, err := env.board(ctx)
	if err != nil {
		logger.Fatal("preparing the board", zap.Error(err))
	}
	defer b.Close()

	// an empty roster is served until the next refresh succeeds
	_ = b.Load(ctx)

	srv := server.New(b, logger, env.metrics, env.metrics.Handler())
	if err := srv.ListenAndServe(ctx, env.config.Server.Addr); err != nil {
		logger.Fatal("serving the dashboard", zap.Error(err))
	}

	logger.Info("exiting", zap.String("reason", "shutdown requested"))
}

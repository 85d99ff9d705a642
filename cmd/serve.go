package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/khalari/khalari/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, true)
		if err != nil {
			return err
		}
		defer e.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			e.cfg.Server.Addr = addr
		}
		if err := e.cfg.Server.Validate(); err != nil {
			return err
		}

		var quizzes server.QuizSource
		if e.gen != nil {
			quizzes = e.gen
		} else {
			e.logger.Warn("quiz endpoints disabled", zap.Error(e.genErr))
		}

		srv := server.New(server.Config{
			Addr:          e.cfg.Server.Addr,
			JWTSecret:     e.cfg.Server.JWTSecret,
			WebhookSecret: e.cfg.Payment.WebhookSecret,
		}, e.svc, quizzes, e.logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", e.cfg.Server.Addr)
		return srv.Run(ctx)
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for the local HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if ttl, _ := cmd.Flags().GetDuration("ttl"); ttl > 0 {
			e.cfg.Server.TokenTTL = ttl
		}
		if err := e.cfg.Server.Validate(); err != nil {
			return err
		}
		if err := e.requireOnboarded(); err != nil {
			return err
		}

		token, err := server.IssueToken(e.cfg.Server.JWTSecret, e.svc.Learner().Name, e.cfg.Server.TokenTTL, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (overrides server.token_ttl)")
}

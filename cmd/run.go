package cmd

import (
	"github.com/khalari/khalari/internal/app"
	"github.com/khalari/khalari/internal/screen"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, false, true)
	if err != nil {
		return err
	}
	defer e.Close()

	deps := screen.Deps{
		Engine:       e.svc,
		Videos:       e.videos(),
		Jobs:         e.jobs(),
		Logger:       e.logger,
		PaymentKeyID: e.cfg.Payment.KeyID,
	}
	// Left as a nil interface so screens can tell content is unavailable.
	if e.gen != nil {
		deps.Content = e.gen
	} else {
		cmd.PrintErrln("LLM provider not configured:", e.genErr)
		cmd.PrintErrln("Roadmap and quiz generation will be unavailable.")
	}

	return app.Run(deps)
}

package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sololevel/internal/ui"
)

const Version = "0.1.0"

var (
	flagPlayer string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:           "sl",
	Short:         "Solo Level: daily quests with RPG progression",
	Long:          "Solo Level turns a daily task list into quests that pay XP and gold, level you up, and grow your stat-gated time caps.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player id (default from config, SL_PLAYER)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default from SL_CONFIG or the user config dir)")

	rootCmd.AddCommand(
		newStartCmd(),
		newAddCmd(),
		newFromCmd(),
		newDoCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newAllocCmd(),
		newTplCmd(),
		newBoardCmd(),
		newServeCmd(),
		newSweepCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}

package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
	"github.com/mehranjafarii/heat-simulation-fdm/server"
)

// ServeCmd represents the serve command
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over a websocket at /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		upgrader := websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}
		s := server.NewServer(cfg.Addr, upgrader, calculator.NewCalculator(cfg), cfg.Defaults)
		return s.Serve()
	},
}

func init() {
	rootCmd.AddCommand(ServeCmd)
	ServeCmd.Flags().StringP("addr", "a", ":9000", "listen address, overrides [server] Addr")
}

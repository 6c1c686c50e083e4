package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/kamalavk/esp/datarecording"
	"github.com/kamalavk/esp/monitoring"
	"github.com/kamalavk/esp/platform"
	"github.com/kamalavk/esp/socmap"
	"github.com/kamalavk/esp/topology"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a tile grid into a concrete SoC configuration.",
	Long: "`resolve --grid [grid.json] --config [esp_config]` resolves " +
		"the topology and writes the configuration tables to a SQLite " +
		"database. With --serve, it also starts a web explorer.",
	Run: func(cmd *cobra.Command, _ []string) {
		gridPath, _ := cmd.Flags().GetString("grid")
		configPath, _ := cmd.Flags().GetString("config")
		output, _ := cmd.Flags().GetString("output")
		serve, _ := cmd.Flags().GetBool("serve")
		open, _ := cmd.Flags().GetBool("open")
		port, _ := cmd.Flags().GetInt("port")

		grid, err := topology.LoadGrid(gridPath)
		if err != nil {
			log.Fatalf("Error loading grid: %v", err)
		}

		cfg := topology.Config{}
		if configPath != "" {
			cfg, err = topology.LoadConfig(configPath)
			if err != nil {
				log.Fatalf("Error loading config: %v", err)
			}
		}
		if cfg.SLMDDRKBytes == 0 {
			cfg.SLMDDRKBytes = platform.SLMDDRKBytes
		}

		resolved, err := socmap.MakeBuilder().
			WithGrid(grid).
			WithConfig(cfg).
			Build()
		if err != nil {
			log.Fatalf("Error resolving topology: %v", err)
		}

		rec := datarecording.New(output)
		datarecording.Dump(rec, resolved)

		if serve || open {
			monitor := monitoring.NewMonitor()
			if port != 0 {
				monitor = monitor.WithPortNumber(port)
			}
			monitor.RegisterConfig(resolved)
			monitor.StartServer(open)
			select {}
		}
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("grid", "grid.json",
		"Path to the tile grid JSON file")
	resolveCmd.Flags().String("config", "",
		"Path to the platform options file")
	resolveCmd.Flags().String("output", "",
		"Name of the output database, without extension")
	resolveCmd.Flags().Bool("serve", false,
		"Serve the resolved configuration over HTTP")
	resolveCmd.Flags().Bool("open", false,
		"Open the web explorer in a browser; implies --serve")
	resolveCmd.Flags().Int("port", 0,
		"Port for the web explorer, random when 0")
}

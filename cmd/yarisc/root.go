package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarisc/go-yarisc/emulator"
	"github.com/yarisc/go-yarisc/machfile"
	"github.com/yarisc/go-yarisc/mem"
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "yarisc",
	Short: "A 32-bit RISC machine simulator.",
	Long:  "A simulator and monitor for the YaRISC 32-bit instruction set.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

// Execute runs the root command. It is called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("machine", "m", "", "machine description file")
	rootCmd.PersistentFlags().Bool("strict", false, "fault on branch targets outside executable memory")
	rootCmd.PersistentFlags().Uint32("entry", 0, "override the entry point")
}

// defaultConfig is the machine used when no description file is given:
// 64K of code at the bottom, 64K of data above it.
func defaultConfig() emulator.Config {
	return emulator.Config{
		Regions: []emulator.RegionConfig{
			{Name: "rom", Base: 0x00000000, Size: 0x10000, Perm: mem.PERM_RX},
			{Name: "ram", Base: 0x00010000, Size: 0x10000, Perm: mem.PERM_RW},
		},
	}
}

// buildMachine constructs the machine named by the persistent flags.
func buildMachine(cmd *cobra.Command) (m *emulator.Machine, err error) {
	cfg := defaultConfig()
	if path, _ := cmd.Flags().GetString("machine"); path != "" {
		cfg, err = machfile.Load(path)
		if err != nil {
			return
		}
	}

	if strict, _ := cmd.Flags().GetBool("strict"); strict {
		cfg.Strict = true
	}
	if cmd.Flags().Changed("entry") {
		entry, _ := cmd.Flags().GetUint32("entry")
		cfg.Entry = entry
	}

	return emulator.NewMachine(cfg)
}

// loadInto loads a raw binary image file into the machine at its entry
// point region.
func loadInto(m *emulator.Machine, path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	n, err := m.LoadImage(inf, m.Regs.PC())
	if err != nil {
		return
	}

	log.Debugf("loaded %v: %v bytes", path, n)
	return
}

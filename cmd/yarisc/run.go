package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/emulator"
	"github.com/yarisc/go-yarisc/isa"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] image_file",
	Short: "Run a binary image to completion",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := buildMachine(cmd)
		if err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}

		if err := loadInto(m, args[0]); err != nil {
			log.Fatalf("%v: %v", args[0], err)
		}

		if cmd.Flags().Changed("console") {
			base, _ := cmd.Flags().GetUint32("console")
			if _, err := m.AttachConsole(base, os.Stdin, os.Stdout); err != nil {
				log.Fatalf("console: %v", err)
			}
		}

		m.Trace, _ = cmd.Flags().GetBool("trace")
		maxSteps, _ := cmd.Flags().GetUint64("steps")

		steps, outcome, err := m.Run(maxSteps)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%v after %v steps\n", outcome, steps)
		if dump, _ := cmd.Flags().GetBool("registers"); dump {
			printRegisters(m)
		}

		if outcome.Status == cpu.STATUS_UNHANDLED {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().Uint64("steps", 1_000_000, "step budget before giving up")
	runCmd.Flags().Uint32("console", 0, "map a console device at this address")
	runCmd.Flags().Bool("trace", false, "log every executed instruction")
	runCmd.Flags().BoolP("registers", "r", false, "print registers on exit")

	rootCmd.AddCommand(runCmd)
}

func printRegisters(m *emulator.Machine) {
	fmt.Printf("pc  0x%08x\n", m.Regs.PC())
	for i := 0; i < isa.NUM_REGISTERS; i++ {
		fmt.Printf("r%-2d 0x%08x", i, m.Regs.Read(i))
		if i%4 == 3 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
}

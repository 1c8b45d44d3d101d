package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yarisc/go-yarisc/cpu"
	"github.com/yarisc/go-yarisc/emulator"
	"github.com/yarisc/go-yarisc/isa"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor [flags] [image_file]",
	Short: "Interactively step and inspect a machine",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m, err := buildMachine(cmd)
		if err != nil {
			log.Fatal(err)
		}

		if len(args) == 1 {
			if err := loadInto(m, args[0]); err != nil {
				log.Fatalf("%v: %v", args[0], err)
			}
		}

		if err := monitor(m); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

var monitorCompleter = readline.NewPrefixCompleter(
	readline.PcItem("step"),
	readline.PcItem("continue"),
	readline.PcItem("regs"),
	readline.PcItem("mem"),
	readline.PcItem("dis"),
	readline.PcItem("break"),
	readline.PcItem("unbreak"),
	readline.PcItem("watch"),
	readline.PcItem("unwatch"),
	readline.PcItem("reset"),
	readline.PcItem("info"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

// monitor runs the interactive command loop until quit or end of input.
func monitor(m *emulator.Machine) (err error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "yarisc> ",
		HistoryFile:  "/tmp/yarisc_monitor_history.txt",
		AutoComplete: monitorCompleter,
	})
	if err != nil {
		return
	}
	defer rl.Close()

	for {
		line, rerr := rl.Readline()
		if errors.Is(rerr, readline.ErrInterrupt) {
			continue
		}
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				rerr = nil
			}
			return rerr
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		if words[0] == "quit" || words[0] == "exit" {
			return
		}

		if cerr := command(m, words[0], words[1:]); cerr != nil {
			fmt.Printf("%v\n", cerr)
		}
	}
}

var errMonitorUsage = errors.New("usage: step|continue|regs|mem|dis|break|unbreak|watch|unwatch|reset|info|quit")

// command dispatches one monitor command.
func command(m *emulator.Machine, verb string, args []string) (err error) {
	switch verb {
	case "step", "s":
		count := uint64(1)
		if len(args) > 0 {
			if count, err = parseCount(args[0]); err != nil {
				return
			}
		}
		for i := uint64(0); i < count; i++ {
			outcome, serr := m.Step()
			if serr != nil {
				return serr
			}
			fmt.Printf("%-32v %v\n", m.Listing(outcome.PC), outcome)
			if outcome.Status.Terminal() || outcome.Status == cpu.STATUS_PAUSED {
				break
			}
		}

	case "continue", "c":
		budget := uint64(1_000_000)
		if len(args) > 0 {
			if budget, err = parseCount(args[0]); err != nil {
				return
			}
		}
		steps, outcome, rerr := m.Run(budget)
		if rerr != nil {
			return rerr
		}
		fmt.Printf("%v after %v steps\n", outcome, steps)

	case "regs", "r":
		printRegisters(m)
		fmt.Printf("tpc 0x%08x  tcause %v  tval 0x%08x\n",
			m.Regs.TrapPC(), int(m.Regs.TrapCause()), m.Regs.TrapValue())

	case "mem", "x":
		addr, length := isa.Address(0), isa.Address(64)
		if addr, err = parseAddr(args, 0); err != nil {
			return
		}
		if len(args) > 1 {
			if length, err = parseAddr(args, 1); err != nil {
				return
			}
		}
		err = printMemory(m, addr, length)

	case "dis", "d":
		addr, count := isa.Address(0), 8
		if addr, err = parseAddr(args, 0); err != nil {
			return
		}
		for i := 0; i < count; i++ {
			at := addr + isa.Address(i*isa.WORD_SIZE)
			fmt.Printf("0x%08x: %v\n", at, m.Listing(at))
		}

	case "break", "b":
		return pointCommand(args, m.AddBreakpoint)
	case "unbreak":
		return pointCommand(args, m.ClearBreakpoint)
	case "watch", "w":
		return pointCommand(args, m.AddWatchpoint)
	case "unwatch":
		return pointCommand(args, m.ClearWatchpoint)

	case "reset":
		m.Reset()
		fmt.Println("reset")

	case "info", "i":
		for key, value := range m.Info() {
			fmt.Printf("%-16v %v\n", key, value)
		}

	case "help", "h":
		fmt.Println(errMonitorUsage)

	default:
		err = errMonitorUsage
	}
	return
}

func pointCommand(args []string, set func(isa.Address)) (err error) {
	addr, err := parseAddr(args, 0)
	if err != nil {
		return
	}
	set(addr)
	return
}

func parseAddr(args []string, index int) (addr isa.Address, err error) {
	if index >= len(args) {
		err = errMonitorUsage
		return
	}

	value, err := strconv.ParseUint(args[index], 0, 32)
	if err != nil {
		return
	}

	addr = isa.Address(value)
	return
}

func parseCount(arg string) (count uint64, err error) {
	return strconv.ParseUint(arg, 0, 64)
}

// printMemory hex dumps length bytes starting at addr, sixteen per row.
func printMemory(m *emulator.Machine, addr, length isa.Address) (err error) {
	data := make([]byte, length)
	if err = m.Space.ReadBytes(addr, data); err != nil {
		return
	}

	for row := isa.Address(0); row < length; row += 16 {
		fmt.Printf("0x%08x:", addr+row)
		for col := row; col < row+16 && col < length; col++ {
			fmt.Printf(" %02x", data[col])
		}
		fmt.Println()
	}
	return
}

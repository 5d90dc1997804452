package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/kalunga-dev/dmgcore/dmgcore"
)

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Description = "Runs a Game Boy ROM against the SM83 core in isolation"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.IntFlag{
			Name:  "max-cycles",
			Usage: "Stop after this many machine cycles (0 = unlimited)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log each retired instruction at debug level",
		},
	}
	app.Action = runCore

	if err := app.Run(os.Args); err != nil {
		slog.Error("dmgcore exited with error", "error", err)
		os.Exit(1)
	}
}

func runCore(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu := dmgcore.New(dmgcore.WithLogger(logger))
	if err := emu.LoadROM(romPath); err != nil {
		return err
	}

	maxCycles := c.Int("max-cycles")
	verbose := c.Bool("verbose")
	var executed uint64

	for maxCycles <= 0 || executed < uint64(maxCycles) {
		if err := emu.Fatal(); err != nil {
			return err
		}

		pc := emu.PC()
		mnemonic := ""
		if verbose {
			mnemonic = emu.Disassemble(pc)
		}

		cycles := emu.StepInstruction()
		executed += cycles

		if verbose {
			logger.Debug("instruction retired", "pc", pc, "mnemonic", mnemonic, "cycles", cycles)
		}

		if maxCycles > 0 && executed >= uint64(maxCycles) {
			break
		}
	}

	if err := emu.Fatal(); err != nil {
		return err
	}

	logger.Info("run complete", "cycles", emu.Cycles(), "pc", emu.PC())
	return nil
}

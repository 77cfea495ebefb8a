// dk61ctl programs the key map and per-key lighting of a Kemove DK61
// keyboard from a declarative keymap profile, over the keyboard's USB HID
// control interface.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/ebayerle/dk61ctl/config"
	"github.com/ebayerle/dk61ctl/kemove"
)

var (
	keymapFile   = flag.String("keymap", "", "keymap profile file (json, yaml or toml)")
	debug        = flag.Int("debug", 0, "libusb debug level (0..3)")
	verbose      = flag.Bool("verbose", false, "hexdump every packet sent and received")
	keysOnly     = flag.Bool("keys-only", false, "program key layers only, leave lighting alone")
	lightingOnly = flag.Bool("lighting-only", false, "program lighting only, leave key layers alone")
	yes          = flag.Bool("yes", false, "skip the confirmation prompt")
)

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func chooseDevice(candidates []string) (int, error) {
	prompt := promptui.Select{
		Label: "Multiple keyboards attached, pick one",
		Items: candidates,
	}
	idx, _, err := prompt.Run()
	return idx, err
}

func confirm(modelName string) bool {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Overwrite layer data on the %s", modelName),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func run(log *zap.Logger) error {
	profile, err := config.Load(*keymapFile)
	if err != nil {
		return err
	}

	model := kemove.DK61

	if !*yes && !confirm(model.Name) {
		return errors.New("aborted")
	}

	ch, err := kemove.OpenUSB(model, *debug, chooseDevice)
	if err != nil {
		return err
	}
	defer ch.Close()

	dev := kemove.NewDevice(ch, model, log, *verbose)
	prog := kemove.NewProgrammer(dev, log)

	switch {
	case *keysOnly:
		return prog.ApplyKeyLayers(profile)
	case *lightingOnly:
		return prog.ApplyStaticColorLayers(profile)
	default:
		return prog.Apply(profile)
	}
}

func main() {
	flag.Parse()
	if *keymapFile == "" || (*keysOnly && *lightingOnly) {
		flag.Usage()
		os.Exit(2)
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Error("programming failed", zap.Error(err))
		os.Exit(1)
	}
	log.Info("keyboard programmed")
}

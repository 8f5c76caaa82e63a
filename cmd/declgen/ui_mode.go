package main

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", errors.Newf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func shouldUseTUI(mode uiMode, out io.Writer) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(out)
	}
}

// applyColorMode sets the process-wide color switch used by diagfmt and
// version output.
func applyColorMode(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return errors.Wrap(err, "failed to get color flag")
	}
	mode, err := readUIMode(value)
	if err != nil {
		return errors.Newf("invalid --color value %q (expected auto|on|off)", value)
	}
	switch mode {
	case uiModeOn:
		color.NoColor = false
	case uiModeOff:
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(cmd.ErrOrStderr())
	}
	return nil
}

func useColor() bool { return !color.NoColor }

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/irbview/gradient"
)

const previewWidth = 48

func newGradientsCmd(f *rootFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "gradients",
		Short: "List available gradients with a color preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range cfg.GradientNames() {
				g, err := cfg.Gradient(name)
				if err != nil {
					return err
				}
				marker := " "
				if strings.EqualFold(name, cfg.View.Gradient) {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-10s ", marker, name)
				if !plain {
					writeStrip(out, gradient.Preview(g, previewWidth))
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "names only, no color preview")
	return cmd
}

// writeStrip emits 24-bit background escapes, one space per color
func writeStrip(w io.Writer, strip []gradient.RGBA8) {
	var sb strings.Builder
	for _, c := range strip {
		fmt.Fprintf(&sb, "\x1b[48;2;%d;%d;%dm ", c.R, c.G, c.B)
	}
	sb.WriteString("\x1b[0m")
	io.WriteString(w, sb.String())
}

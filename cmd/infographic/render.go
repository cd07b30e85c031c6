package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"infographic/internal/domain"
	"infographic/internal/providers/extract"
	"infographic/internal/render"
)

type renderOptions struct {
	in         string
	layout     string
	background string
	outDir     string
	out        string
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a saved outline without calling any backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.in, "in", "", "outline JSON (as exported in infographic.json)")
	f.StringVar(&opts.layout, "layout", "", "override the layout: GRID_CARDS, CONNECTED_FLOW or ZIGZAG_TIMELINE")
	f.StringVar(&opts.background, "background", "", "background image composited beneath the content")
	f.StringVar(&opts.outDir, "out-dir", ".", "directory receiving the output")
	f.StringVar(&opts.out, "out", "infographic.html", "output file name")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	raw, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read outline: %w", err)
	}
	var data domain.Infographic
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("decode outline: %w", err)
	}
	data.Palette = data.Palette.Complete()
	if opts.layout != "" {
		l, ok := domain.ParseLayout(opts.layout)
		if !ok {
			return fmt.Errorf("unknown layout %q", opts.layout)
		}
		data.Layout = l
	}

	bg := domain.NoBackground
	if opts.background != "" {
		img, err := os.ReadFile(opts.background)
		if err != nil {
			return fmt.Errorf("read background: %w", err)
		}
		mime, err := extract.DetectMIME(domain.SourceImage{Filename: opts.background, Data: img})
		if err != nil {
			return err
		}
		bg = domain.Background{URI: "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img)}
	}

	var buf bytes.Buffer
	if err := render.MustNew().RenderPage(&buf, data, bg); err != nil {
		return err
	}
	path, err := writeOutput(cmd.Context(), opts.outDir, opts.out, buf.Bytes())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) written: %s\n", data.Topic, data.Layout.OrDefault(), path)
	return nil
}

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"infographic/internal/domain"
	"infographic/internal/export"
	"infographic/internal/layout"
	"infographic/internal/render"
	"infographic/internal/storage"
)

type generateOptions struct {
	text     string
	textFile string
	images   []string
	outDir   string
	out      string
	zip      bool
	seed     uint64
	timeout  time.Duration
}

func newGenerateCmd(d deps) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract an outline from lesson text or images and render it",
		Example: `  infographic generate --text "Quang hợp là quá trình..." --out quang-hop.html
  infographic generate --text-file bai-hoc.txt --image so-do.png --zip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, d, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.text, "text", "", "lesson text")
	f.StringVar(&opts.textFile, "text-file", "", "read lesson text from a file")
	f.StringSliceVar(&opts.images, "image", nil, "reference image (repeatable)")
	f.StringVar(&opts.outDir, "out-dir", ".", "directory receiving the output")
	f.StringVar(&opts.out, "out", "", "output file name (default infographic.html or infographic.zip)")
	f.BoolVar(&opts.zip, "zip", false, "write a zip bundle with page, outline and background")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for layout selection (0 picks randomly)")
	f.DurationVar(&opts.timeout, "timeout", 5*time.Minute, "overall deadline for the run")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	return cmd
}

func runGenerate(cmd *cobra.Command, d deps, opts *generateOptions) error {
	text := opts.text
	if opts.textFile != "" {
		raw, err := os.ReadFile(opts.textFile)
		if err != nil {
			return fmt.Errorf("read text file: %w", err)
		}
		text = string(raw)
	}
	images, err := readImages(opts.images)
	if err != nil {
		return err
	}

	var selector *layout.Selector
	if opts.seed != 0 {
		selector = layout.NewSeeded(opts.seed)
	}
	o, err := d.newOrchestrator(selector)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	if err := o.Generate(ctx, text, images); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return errors.New(domain.UserMessage(err))
		}
		return err
	}
	snap := o.Snapshot()
	if snap.Result == nil {
		return domain.ErrNoResult
	}

	var payload []byte
	name := opts.out
	if opts.zip {
		if name == "" {
			name = "infographic.zip"
		}
		payload, err = export.Bundle(render.MustNew(), *snap.Result, snap.Background, time.Now())
		if err != nil {
			return err
		}
	} else {
		if name == "" {
			name = "infographic.html"
		}
		var buf bytes.Buffer
		if err := render.MustNew().RenderPage(&buf, *snap.Result, snap.Background); err != nil {
			return err
		}
		payload = buf.Bytes()
	}

	path, err := writeOutput(cmd.Context(), opts.outDir, name, payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n  layout: %s\n  points: %d\n  background: %t\n  written: %s\n",
		snap.Result.Topic, snap.Result.Layout, len(snap.Result.Points), snap.Background.Present(), path)
	return nil
}

func readImages(paths []string) ([]domain.SourceImage, error) {
	images := make([]domain.SourceImage, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
		images = append(images, domain.SourceImage{Filename: filepath.Base(p), Data: data})
	}
	return images, nil
}

func writeOutput(ctx context.Context, dir, name string, data []byte) (string, error) {
	store, err := storage.NewFileStore(dir)
	if err != nil {
		return "", err
	}
	key, err := store.Write(ctx, name, data)
	if err != nil {
		return "", err
	}
	return store.Path(key)
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thierryx96/cellar-ai/model"
)

var (
	okStyle    = color.New(color.Bold, color.FgHiGreen)
	countStyle = color.New(color.FgHiCyan)
	noiseStyle = color.New(color.FgHiYellow)
	labelStyle = color.New(color.FgHiMagenta)
)

// openInput returns the named file, or stdin for "" and "-"
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, nil
}

// readTokens decodes a JSON token array
func readTokens(cmd *cobra.Command, path string) ([]model.Token, error) {
	in, err := openInput(cmd, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var tokens []model.Token
	if err := json.NewDecoder(in).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode tokens: %w", err)
	}
	return tokens, nil
}

// openOutput returns the --output file, or stdout when none is set
func (a *app) openOutput(cmd *cobra.Command) (io.WriteCloser, error) {
	if a.output == "" {
		return nopWriteCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(a.output)
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// writeJSON writes v indented to the --output file or stdout
func (a *app) writeJSON(cmd *cobra.Command, v any) error {
	w, err := a.openOutput(cmd)
	if err != nil {
		return err
	}
	defer w.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// summary prints a one-line coloured summary to stderr
func summary(cmd *cobra.Command, label string, entries, noise int, detail string) {
	w := cmd.ErrOrStderr()
	okStyle.Fprint(w, "✔ ")
	labelStyle.Fprintf(w, "%s: ", label)
	countStyle.Fprintf(w, "%d entries", entries)
	fmt.Fprint(w, ", ")
	noiseStyle.Fprintf(w, "%d noise", noise)
	if detail != "" {
		fmt.Fprintf(w, " (%s)", detail)
	}
	fmt.Fprintln(w)
}

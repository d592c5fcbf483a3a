package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"bennypowers.dev/clampwind/internal/clamp"
	"bennypowers.dev/clampwind/internal/collections"
	"bennypowers.dev/clampwind/internal/config"
	"bennypowers.dev/clampwind/internal/documents"
	"bennypowers.dev/clampwind/internal/log"
	"bennypowers.dev/clampwind/internal/parser"
	"bennypowers.dev/clampwind/internal/tokens"
)

const stdinPath = "-"

func run(cmd *cobra.Command, f *flags, args []string) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}

	opts, err := processorOptions(cmd, f, cfg)
	if err != nil {
		return err
	}

	patterns := args
	if len(patterns) == 0 && cfg != nil {
		for _, p := range cfg.Include {
			patterns = append(patterns, cfg.ResolvePath(p))
		}
	}
	if len(patterns) == 0 {
		return runStdin(cmd, f, opts)
	}

	paths, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no input files matched")
	}
	if len(paths) > 1 && !f.write && f.outDir == "" {
		return fmt.Errorf("%d input files need --write or --out-dir", len(paths))
	}

	return runFiles(cmd, f, opts, paths)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		log.Debug("Loaded config from %s", cfg.Dir)
	}
	return cfg, nil
}

// processorOptions layers token breakpoints, the config file and the
// command line flags, in increasing precedence
func processorOptions(cmd *cobra.Command, f *flags, cfg *config.Config) (clamp.Options, error) {
	opts := cfg.Options()

	tokenPaths := append(cfg.TokensPaths(), f.tokens...)
	if len(tokenPaths) > 0 {
		b, err := tokens.LoadBreakpoints(tokenPaths)
		if err != nil {
			return opts, err
		}
		log.Debug("Token breakpoints: %s", b)
		opts = b.Overlay(opts)
	}

	if cmd.Flags().Changed("root-font-size") {
		opts.RootFontSize = f.rootFontSize
	}
	if cmd.Flags().Changed("spacing") {
		opts.Spacing = f.spacing
	}
	if cmd.Flags().Changed("precision") {
		opts.Precision = f.precision
	}
	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid flags: %w", err)
	}
	return opts, nil
}

// expandPatterns expands globs and removes duplicate paths, keeping the
// order in which files were first named
func expandPatterns(patterns []string) ([]string, error) {
	seen := collections.NewSet[string]()
	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			seen.Add(filepath.Clean(pattern))
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Warn("No files match %s", pattern)
		}
		for _, m := range matches {
			if parser.LanguageForPath(m) == "" {
				log.Debug("Skipping unsupported file %s", m)
				continue
			}
			seen.Add(filepath.Clean(m))
		}
	}
	return seen.Members(), nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func runStdin(cmd *cobra.Command, f *flags, opts clamp.Options) error {
	if !parser.IsCSSSupportedLanguage(f.lang) {
		return fmt.Errorf("unsupported language %q", f.lang)
	}
	if f.write {
		return errors.New("--write needs input files")
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}

	doc := documents.NewDocument(stdinPath, f.lang, string(data))
	result, err := documents.Transform(doc, opts)
	if err != nil {
		return err
	}
	reportDiagnostics(doc.Path(), result.Diagnostics)

	_, err = io.WriteString(cmd.OutOrStdout(), result.Content)
	return err
}

func runFiles(cmd *cobra.Command, f *flags, opts clamp.Options, paths []string) error {
	var errs []error
	expanded, changed := 0, 0

	for _, path := range paths {
		doc, err := documents.ReadDocument(path, "")
		if err != nil {
			errs = append(errs, err)
			continue
		}

		result, err := documents.Transform(doc, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		reportDiagnostics(path, result.Diagnostics)
		expanded += result.Expanded
		if result.Changed {
			changed++
			doc.SetContent(result.Content)
		}

		if err := writeResult(cmd, f, doc, result.Changed); err != nil {
			errs = append(errs, err)
		}
	}

	if f.write || f.outDir != "" {
		log.Info("Expanded %d placeholders, %d of %d files changed", expanded, changed, len(paths))
	}
	return errors.Join(errs...)
}

func writeResult(cmd *cobra.Command, f *flags, doc *documents.Document, changed bool) error {
	switch {
	case f.outDir != "":
		target := filepath.Join(f.outDir, outputName(doc.Path()))
		if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
		}
		return writeFile(target, doc.Content(), 0o644)

	case f.write:
		if !changed {
			return nil
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(doc.Path()); err == nil {
			mode = info.Mode().Perm()
		}
		return writeFile(doc.Path(), doc.Content(), mode)

	default:
		_, err := io.WriteString(cmd.OutOrStdout(), doc.Content())
		return err
	}
}

// outputName keeps the relative layout of local paths and flattens others
func outputName(path string) string {
	if filepath.IsLocal(path) {
		return path
	}
	return filepath.Base(path)
}

func writeFile(path, content string, mode os.FileMode) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debug("Wrote %s", path)
	return nil
}

func reportDiagnostics(path string, diagnostics []clamp.Diagnostic) {
	for _, d := range diagnostics {
		log.Warn("%s:%d:%d: %s (%s: %s)", path, d.Line, d.Column, d.Kind, d.Property, d.Value)
	}
}

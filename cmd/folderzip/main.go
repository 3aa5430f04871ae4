// Copyright 2025 Google LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/folderzip/pkg/archive"
	"github.com/google/folderzip/pkg/folders"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	outfile        = flag.String("out", folders.DownloadName, "Output path for the generated archive.")
	includeContent = flag.Bool("include-content", true, "Copy each original file into its folder.")
	noSanitize     = flag.Bool("no-sanitize", false, "Skip name normalization; only trim whitespace and apply the empty-name fallback.")
	rulesFile      = flag.String("rules", "", "Path to a yaml file of additional system-artifact exclusion rules.")
)

var green = color.New(color.FgGreen).SprintFunc()

var rootCmd = &cobra.Command{
	Use:   "folderzip [subcommand]",
	Short: "Build a zip of per-name folders from a name list, loose files, or a source zip",
}

func buildOpts() folders.Options {
	return folders.Options{
		Sanitize:       !*noSanitize,
		IncludeContent: *includeContent,
	}
}

func loadRules() (folders.Rules, error) {
	if *rulesFile == "" {
		return folders.DefaultRules(), nil
	}
	f, err := os.Open(*rulesFile)
	if err != nil {
		return folders.Rules{}, errors.Wrap(err, "opening rules file")
	}
	defer f.Close()
	return folders.LoadRules(f)
}

// readNames splits the input into lines and drops blank ones, the same
// pre-trimming a document or spreadsheet frontend applies before handing
// names to the core.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading names")
	}
	return names, nil
}

func deliver(cmd *cobra.Command, out []byte) error {
	if err := os.WriteFile(*outfile, out, 0644); err != nil {
		return errors.Wrap(err, "writing output archive")
	}
	zr, err := archive.OpenZip(bytes.NewReader(out))
	if err != nil {
		return errors.Wrap(err, "reading back output archive")
	}
	var count int
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/"+folders.Marker) {
			count++
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %d folders to %s\n", green("OK"), count, *outfile)
	return nil
}

var namesCmd = &cobra.Command{
	Use:   "names [<file>]",
	Short: "Build folders from a list of names, one per line (stdin if no file given)",
	Args:  cobra.MaximumNArgs(1),
	// Silence errors because we will print the error ourselves in main.
	SilenceErrors: true,
	// Don't show usage for every error.
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening names file")
			}
			defer f.Close()
			in = f
		}
		names, err := readNames(in)
		if err != nil {
			return err
		}
		out, err := folders.BuildFromNames(names, buildOpts())
		if err != nil {
			return errors.Wrap(err, "building archive")
		}
		return deliver(cmd, out)
	},
}

var zipCmd = &cobra.Command{
	Use:           "zip <source.zip>",
	Short:         "Build one folder per file entry of a source zip",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if archive.FormatForPath(args[0]) != archive.ZipFormat {
			return errors.Errorf("unsupported source format: %s", filepath.Ext(args[0]))
		}
		rules, err := loadRules()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening source archive")
		}
		defer f.Close()
		out, err := folders.BuildFromZip(f, rules, buildOpts())
		if err != nil {
			return errors.Wrap(err, "building archive")
		}
		return deliver(cmd, out)
	},
}

var filesCmd = &cobra.Command{
	Use:           "files <file>...",
	Short:         "Build one folder per loose file",
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var payloads []folders.NamedPayload
		for _, arg := range args {
			data, err := os.ReadFile(arg)
			if err != nil {
				return errors.Wrapf(err, "reading %s", arg)
			}
			payloads = append(payloads, folders.NamedPayload{
				Basename: filepath.Base(arg),
				Data:     data,
			})
		}
		out, err := folders.BuildFromFiles(payloads, buildOpts())
		if err != nil {
			return errors.Wrap(err, "building archive")
		}
		return deliver(cmd, out)
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)
	namesCmd.Flags().AddGoFlag(flag.Lookup("out"))
	namesCmd.Flags().AddGoFlag(flag.Lookup("no-sanitize"))

	rootCmd.AddCommand(zipCmd)
	zipCmd.Flags().AddGoFlag(flag.Lookup("out"))
	zipCmd.Flags().AddGoFlag(flag.Lookup("include-content"))
	zipCmd.Flags().AddGoFlag(flag.Lookup("no-sanitize"))
	zipCmd.Flags().AddGoFlag(flag.Lookup("rules"))

	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().AddGoFlag(flag.Lookup("out"))
	filesCmd.Flags().AddGoFlag(flag.Lookup("include-content"))
	filesCmd.Flags().AddGoFlag(flag.Lookup("no-sanitize"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

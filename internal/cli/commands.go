package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"intl-extract/internal/extract"
	"intl-extract/internal/filewalker"
	"intl-extract/internal/interpolation"
	"intl-extract/internal/literal"
	"intl-extract/internal/parser"
	"intl-extract/internal/worker"
)

func convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <literal>",
		Short: "Show the resource value, suggested key and placeholders for a literal",
		Long: `Normalizes a quoted literal such as 'Hello $name' and converts its
interpolations into named placeholders. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := interpolation.Convert(literal.Strip(args[0]))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "value: %s\n", res.Value)
			if res.SuggestedKey != "" {
				fmt.Fprintf(out, "key:   %s\n", res.SuggestedKey)
			}
			for _, p := range res.Params {
				fmt.Fprintf(out, "param: %s = %s (%s)\n", p.Name, p.Expr, p.Kind)
			}
			return nil
		},
	}
}

func addCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "add <key> <value>",
		Short: "Write a message to every resource file of the project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !extract.ValidKey(key) {
				return fmt.Errorf("%w: %q", extract.ErrInvalidKey, key)
			}

			a, err := newApp(flags)
			if err != nil {
				return err
			}
			ctx, cancel := setupContext()
			defer cancel()

			p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), force)
			n := a.sync.Write(ctx, a.set.Files, key, value, p.ConfirmOverwrite)
			if n == 0 {
				return errors.New("no resource file was written")
			}

			log.Info().Str("key", key).Int("files", n).Msg("Message added")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing key without asking")
	return cmd
}

func lookupCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <value>",
		Short: "Print the key holding a value in the lookup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}

			key, ok := a.sync.FindKeyByValue(a.set.LookupScope(), args[0])
			if !ok {
				return fmt.Errorf("no key holds %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}

func pickCmd(flags *rootFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "pick <file> <offset>",
		Short: "Extract the literal at a byte offset of a Dart file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse offset: %w", err)
			}

			a, err := newApp(flags)
			if err != nil {
				return err
			}
			ctx, cancel := setupContext()
			defer cancel()

			p := parser.NewDartParser()
			result, err := p.Parse(args[0])
			if err != nil {
				return err
			}

			var target *parser.ExtractedLiteral
			for i := range result.Literals {
				if l := &result.Literals[i]; l.Start <= offset && offset < l.End {
					target = l
					break
				}
			}
			if target == nil {
				return fmt.Errorf("no translatable literal at offset %d", offset)
			}

			prompt := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr(), force)
			out, err := a.extractor.ExtractOne(ctx, a.set, target.SourceLiteral, prompt)
			if err != nil {
				return err
			}
			if out.Written == 0 {
				return errors.New("no resource file was written, source left unchanged")
			}

			src, err := p.Reconstruct(result, map[int]string{target.Start: out.Replacement})
			if err != nil {
				return err
			}
			if err := os.WriteFile(result.FilePath, src, 0644); err != nil {
				return fmt.Errorf("write source: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out.Replacement)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing key without asking")
	return cmd
}

func extractCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "extract <path>...",
		Short: "Extract every translatable literal under the given files or directories",
		Long: `Scans Dart sources, plans one key per distinct value, adds the new keys to
every resource file and rewrites the sources. Existing keys are never
overwritten.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			ctx, cancel := setupContext()
			defer cancel()

			return runExtract(ctx, cmd, a, args, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the plan without writing anything")
	return cmd
}

// literalRef ties a planned entry back to the file it came from.
type literalRef struct {
	file int
	line int
}

func runExtract(ctx context.Context, cmd *cobra.Command, a *app, paths []string, dryRun bool) error {
	entries, err := filewalker.NewWalker().Walk(paths...)
	if err != nil {
		return err
	}

	parsePool := worker.NewPool[filewalker.FileEntry, *parser.ParseResult](a.cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
			return entry.Parser.Parse(entry.Path)
		},
	)
	parseResults := parsePool.Execute(ctx, entries)
	if err := ctx.Err(); err != nil {
		return err
	}

	var lits []literal.SourceLiteral
	var refs []literalRef
	for i, pr := range parseResults {
		if pr.Err != nil {
			log.Error().Err(pr.Err).Str("file", pr.Input.Path).Msg("Parse failed")
			continue
		}
		for _, l := range pr.Result.Literals {
			lits = append(lits, l.SourceLiteral)
			refs = append(refs, literalRef{file: i, line: l.Line})
		}
	}

	if len(lits) == 0 {
		log.Info().Int("files", len(entries)).Msg("No translatable literals found")
		return nil
	}

	planned := a.extractor.Plan(a.set, lits)

	out := cmd.OutOrStdout()
	for i, e := range planned {
		mark := "+"
		if e.Reused {
			mark = "="
		}
		fmt.Fprintf(out, "%s %s:%d  %s  %q\n", mark, parseResults[refs[i].file].Input.Path, refs[i].line, e.Key, e.Value)
	}
	if dryRun {
		return nil
	}

	n := a.extractor.Apply(ctx, a.set, planned)
	if n == 0 {
		return errors.New("no resource file was written, sources left unchanged")
	}

	byFile := make(map[int]map[int]string)
	for i, e := range planned {
		f := refs[i].file
		if byFile[f] == nil {
			byFile[f] = make(map[int]string)
		}
		byFile[f][e.Anchor.Start] = extract.Replacement(a.set.ClassName, e)
	}

	rewritten := 0
	for f, replacements := range byFile {
		pr := parseResults[f]
		src, err := pr.Input.Parser.Reconstruct(pr.Result, replacements)
		if err != nil {
			log.Error().Err(err).Str("file", pr.Input.Path).Msg("Reconstruct failed")
			continue
		}
		if err := os.WriteFile(pr.Input.Path, src, 0644); err != nil {
			log.Error().Err(err).Str("file", pr.Input.Path).Msg("Write source failed")
			continue
		}
		rewritten++
	}

	log.Info().
		Int("literals", len(planned)).
		Int("resource_files", n).
		Int("sources", rewritten).
		Msg("Extraction complete")

	return nil
}

// Package main is the command line client for the translation pipeline.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katyfelkner/fairseq-server/internal/batch"
	"github.com/katyfelkner/fairseq-server/internal/engine"
	"github.com/katyfelkner/fairseq-server/internal/vocab"
)

var rootCmd = &cobra.Command{
	Use:   "fairseq-server",
	Short: "SYM expression translation pipeline",
}

var translateCmd = &cobra.Command{
	Use:   "translate [expression ...]",
	Short: "Translate expressions through the model",
	Long: "Reads expressions from the arguments, or one per line from stdin, " +
		"canonicalizes variable names, runs the sequences through the " +
		"translator, and prints source and translation separated by a tab.",
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().String("function", "", "translator Lambda function name (env TRANSLATOR_FUNCTION)")
	translateCmd.Flags().String("vocab", "", "path to a vocabulary YAML file (env VOCAB_PATH)")
	translateCmd.Flags().Bool("identity", false, "skip the model and echo canonical sequences back (round-trip check)")
	translateCmd.Flags().Int("max-src-len", 0, "reject sources longer than this many bytes")
	rootCmd.AddCommand(translateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	sources := args
	if len(sources) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				sources = append(sources, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	if len(sources) == 0 {
		return fmt.Errorf("no expressions to translate")
	}

	v := vocab.Default()
	vocabPath := os.Getenv("VOCAB_PATH")
	if p, _ := cmd.Flags().GetString("vocab"); p != "" {
		vocabPath = p
	}
	if vocabPath != "" {
		loaded, err := vocab.Load(vocabPath)
		if err != nil {
			return err
		}
		v = loaded
	}

	var eng engine.Engine
	if identity, _ := cmd.Flags().GetBool("identity"); identity {
		eng = engine.Identity()
	} else {
		functionName := os.Getenv("TRANSLATOR_FUNCTION")
		if f, _ := cmd.Flags().GetString("function"); f != "" {
			functionName = f
		}
		if functionName == "" {
			return fmt.Errorf("--function or TRANSLATOR_FUNCTION is required (or use --identity)")
		}
		le, err := engine.NewLambda(cmd.Context(), functionName)
		if err != nil {
			return err
		}
		eng = le
	}

	o := batch.New(eng, v)
	if n, _ := cmd.Flags().GetInt("max-src-len"); n > 0 {
		o.MaxSourceBytes = n
	}

	results, _ := o.Run(cmd.Context(), sources)
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s\terror: %v\n", r.Source, r.Err)
			continue
		}
		fmt.Printf("%s\t%s\n", r.Source, r.Translation)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(results))
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/evandrarf/microlearn-be/internal/config"
	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
	"github.com/evandrarf/microlearn-be/internal/pkg/llm"
	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "scorectl",
		Short:        "Score quiz sessions and compare texts from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Config file with scoring.* and embedding.* keys")
	root.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(scoreCmd(), similarCmd(), clusterCmd())
	return root
}

func scoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a session JSON file (- for stdin) and print the result",
		RunE:  runScore,
	}
	cmd.Flags().StringP("file", "f", "-", "Session JSON file")
	return cmd
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar",
		Short: "Rank candidate texts by similarity to a query",
		RunE:  runSimilar,
	}
	f := cmd.Flags()
	f.StringP("query", "q", "", "Query text (required)")
	f.StringArrayP("candidate", "t", nil, "Candidate text (repeatable)")
	f.Float64("threshold", embedding.DefaultFindThreshold, "Minimum similarity")
	_ = cmd.MarkFlagRequired("query")
	_ = cmd.MarkFlagRequired("candidate")
	return cmd
}

func clusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cluster",
		Short: "Group texts whose similarity to a cluster seed exceeds the threshold",
		RunE:  runCluster,
	}
	f := cmd.Flags()
	f.StringArrayP("text", "t", nil, "Text to cluster (repeatable)")
	f.Float64("threshold", embedding.DefaultClusterThreshold, "Similarity a text needs to join a cluster")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

// viperForCmd binds flags and APP_* environment, then reads --config when given.
func viperForCmd(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.Root().PersistentFlags())

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func newLogger(v *viper.Viper) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(v.GetString("log-level"))
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
	return log
}

func runScore(cmd *cobra.Command, _ []string) error {
	v, err := viperForCmd(cmd)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if path := v.GetString("file"); path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var session scoring.Session
	if err := json.NewDecoder(in).Decode(&session); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}

	engine, err := config.NewScoringEngine(v)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), engine.Calculate(session))
}

func newService(ctx context.Context, v *viper.Viper) (*embedding.Service, func(), error) {
	log := newLogger(v)
	embedder, err := llm.NewEmbedder(ctx, v, nil, log)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := embedder.(io.Closer); ok {
			_ = c.Close()
		}
	}
	svc := embedding.NewService(embedder,
		embedding.WithConcurrency(v.GetInt("embedding.concurrency")),
		embedding.WithLogger(log),
	)
	return svc, cleanup, nil
}

func runSimilar(cmd *cobra.Command, _ []string) error {
	v, err := viperForCmd(cmd)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer cleanup()

	candidates, _ := cmd.Flags().GetStringArray("candidate")
	results, err := svc.FindSimilar(cmd.Context(), v.GetString("query"), candidates, v.GetFloat64("threshold"))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), results)
}

func runCluster(cmd *cobra.Command, _ []string) error {
	v, err := viperForCmd(cmd)
	if err != nil {
		return err
	}
	svc, cleanup, err := newService(cmd.Context(), v)
	if err != nil {
		return err
	}
	defer cleanup()

	texts, _ := cmd.Flags().GetStringArray("text")
	clusters, err := svc.ClusterTexts(cmd.Context(), texts, v.GetFloat64("threshold"))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), clusters)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	semcolar "github.com/rangel3l/sem-colar-system"
	"github.com/rangel3l/sem-colar-system/rewrite"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "semcolar",
		Short: "Gera variantes embaralhadas de provas a partir de PDF ou DOCX",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "registra o progresso detalhado")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newInspectCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		outputDir  string
		versions   []string
		seed       int64
		title      string
	)

	cmd := &cobra.Command{
		Use:   "gerar <arquivo>",
		Short: "Gera uma prova embaralhada por versão, com gabarito",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			p := semcolar.Open(args[0]).Overrides(cfg.overrides())

			switch {
			case cmd.Flags().Changed("seed"):
				p = p.Seed(seed)
			case cfg.Seed != nil:
				p = p.Seed(*cfg.Seed)
			}

			if len(versions) > 0 {
				p = p.Versions(versions...)
			} else if len(cfg.Versions) > 0 {
				p = p.Versions(cfg.Versions...)
			}

			if outputDir != "" {
				p = p.OutputDir(outputDir)
			} else if cfg.Output != "" {
				p = p.OutputDir(cfg.Output)
			}

			if title != "" {
				p = p.Title(title)
			} else if cfg.Title != "" {
				p = p.Title(cfg.Title)
			}

			if cfg.Shuffle.Questions != nil {
				p = p.ShuffleQuestions(*cfg.Shuffle.Questions)
			}
			if cfg.Shuffle.Alternatives != nil {
				p = p.ShuffleAlternatives(*cfg.Shuffle.Alternatives)
			}

			if cfg.Rewrite.APIKey != "" {
				rw, err := rewrite.NewGemini(cmd.Context(), cfg.Rewrite.APIKey, cfg.Rewrite.Model)
				if err != nil {
					return err
				}
				defer rw.Close()
				policy := rewrite.FailClosed
				if cfg.Rewrite.FallbackOriginal {
					policy = rewrite.FallbackOriginal
				}
				p = p.Rewrite(rw, policy)
			}

			results, err := p.Generate(cmd.Context())
			if err != nil {
				return err
			}
			for _, res := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "versão %s: %s\n", res.Version, res.ExamPath)
				if res.KeyPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "gabarito %s: %s\n", res.Version, res.KeyPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "arquivo de configuração YAML")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "diretório de saída")
	cmd.Flags().StringSliceVar(&versions, "versions", nil, "rótulos das versões a gerar (ex.: A,B)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "semente do embaralhamento, para reprodutibilidade")
	cmd.Flags().StringVar(&title, "title", "", "título do documento gerado")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspecionar <arquivo>",
		Short: "Mostra as questões segmentadas sem gerar nada",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := semcolar.Open(args[0]).Questions(cmd.Context())
			if err != nil {
				return err
			}
			for i, q := range questions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d) %s\n", i+1, q.Statement)
				for _, alt := range q.Alternatives {
					fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", alt)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d questões\n", len(questions))
			return nil
		},
	}
}

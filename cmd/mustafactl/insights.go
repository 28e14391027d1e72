package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mustafa-app/console/internal/domain"
)

func kpisCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kpis",
		Short: "Show the dashboard indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			kpis, err := client.KPIs(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Fotos hoje:              %d\n", kpis.FotosHoje)
			fmt.Printf("Promotores ativos hoje:  %d\n", kpis.PromotoresAtivosHoje)
			fmt.Printf("Fotos no mês:            %d\n", kpis.FotosMes)

			if len(kpis.RankingPromotores) > 0 {
				fmt.Println("\nRanking:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for i, item := range kpis.RankingPromotores {
					fmt.Fprintf(w, "  %d.\t%s\t%d\n", i+1, item.Nome, item.Total)
				}
				return w.Flush()
			}
			return nil
		},
	}
}

func askCmd() *cobra.Command {
	var (
		promotorID int
		dataInicio string
		dataFim    string
	)

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the AI panel a question about field activity",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			answer, err := client.Ask(cmd.Context(), domain.Question{
				Question:   strings.Join(args, " "),
				PromotorID: promotorID,
				DataInicio: dataInicio,
				DataFim:    dataFim,
			})
			if err != nil {
				return err
			}

			fmt.Println(answer.Answer)
			return nil
		},
	}

	cmd.Flags().IntVar(&promotorID, "promotor", 0, "Scope the question to one promoter")
	cmd.Flags().StringVar(&dataInicio, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dataFim, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

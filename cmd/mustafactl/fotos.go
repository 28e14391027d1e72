package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mustafa-app/console/internal/domain"
)

func fotosCmd() *cobra.Command {
	var (
		promotorID int
		dataInicio string
		dataFim    string
		busca      string
	)

	cmd := &cobra.Command{
		Use:   "fotos",
		Short: "List promoter photos",
		Long: `List promoter photos, newest first.

Examples:
  mustafactl fotos
  mustafactl fotos --promotor 7
  mustafactl fotos --from 2026-08-01 --to 2026-08-27 --busca "loja centro"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := authedClient()
			if err != nil {
				return err
			}

			filter := domain.FotoFilter{PromotorID: promotorID, Busca: busca}
			if dataInicio != "" {
				t, err := domain.ParseDate(dataInicio)
				if err != nil {
					return fmt.Errorf("--from must be YYYY-MM-DD")
				}
				filter.DataInicio = t
			}
			if dataFim != "" {
				t, err := domain.ParseDate(dataFim)
				if err != nil {
					return fmt.Errorf("--to must be YYYY-MM-DD")
				}
				filter.DataFim = t
			}

			fotos, err := client.ListFotos(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if len(fotos) == 0 {
				fmt.Println("No photos found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATA\tPROMOTOR\tLOJA\tCIDADE\tURL")
			for _, f := range fotos {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
					f.ID, f.DataEnvio.Format("2006-01-02 15:04"), f.PromotorID, f.Loja, f.Cidade, f.URLFoto)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&promotorID, "promotor", 0, "Filter by promoter ID")
	cmd.Flags().StringVar(&dataInicio, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dataFim, "to", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&busca, "busca", "", "Search store or city names")

	return cmd
}

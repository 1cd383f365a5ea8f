package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trainerbot/internal/services/materials/repo"
	"trainerbot/internal/services/materials/service"
)

func materialsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the material registry",
		Long: `Materials loads the registry the bot would load and prints one line per task.
Without --file the built in table is used.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			y := repo.NewYAML(file)
			f, err := y.File(ctx)
			if err != nil {
				return err
			}
			reg, err := service.FromList(f.Materials, f.Default)
			if err != nil {
				return err
			}
			xs, err := reg.List(ctx)
			if err != nil {
				return err
			}
			def, _ := reg.Default(ctx)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TASK\tTITLE\tFILE\tCOURSE")
			for _, m := range xs {
				id := m.TaskID
				if id == def.TaskID {
					id = color.CyanString(id + " *")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, m.Title, m.DownloadFilename, m.CourseURL)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML registry (default: built in)")
	return cmd
}

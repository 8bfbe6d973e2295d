package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"gohaz/adapters/calc"
	"gohaz/adapters/excel"
	"gohaz/adapters/gsim"
	"gohaz/adapters/report"
	"gohaz/app"
	"gohaz/domain/imt"
	"gohaz/domain/seismic"
	"gohaz/internal/config"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hazard",
		Short: "Probabilistic seismic hazard curve calculator",
	}
	rootCmd.AddCommand(newRunCmd(), newModelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		modelFile string
		gsimName  string
		imls      []string
		outFile   string
		htmlFile  string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute hazard curves from an xlsx input model",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if modelFile == "" {
				modelFile = cfg.Paths.ModelFile
			}
			if modelFile == "" {
				return fmt.Errorf("no input model: pass --model or set MODEL_FILE")
			}

			reader := excel.NewModelReader(modelFile)
			sites, err := reader.ReadSites()
			if err != nil {
				return err
			}
			srcs, err := reader.ReadSources()
			if err != nil {
				return err
			}

			levels, err := parseIMLs(imls)
			if err != nil {
				return err
			}

			registry := make(map[seismic.TectonicRegionType]string)
			for _, src := range srcs {
				registry[src.TectonicRegionType()] = gsimName
			}
			gsims, err := gsim.BuildRegistry(registry)
			if err != nil {
				return err
			}

			in := calc.Inputs{
				Sources:         srcs,
				Sites:           sites,
				Levels:          levels,
				TimeSpan:        cfg.Calculation.TimeSpan,
				GSIMs:           gsims,
				TruncationLevel: cfg.Calculation.TruncationLevel,
				CAVMin:          cfg.Calculation.CAVMin,
			}
			if cfg.Calculation.MaxDistance > 0 {
				in.SourceSiteFilter = calc.NewSourceSiteDistanceFilter(cfg.Calculation.MaxDistance)
				in.RuptureSiteFilter = calc.NewRuptureSiteDistanceFilter(cfg.Calculation.MaxDistance)
			}

			service := app.NewCalculationService(nil, cfg.Calculation.Workers)
			result, err := service.Run(context.Background(), in)
			if err != nil {
				return err
			}
			log.Printf("Calculation %s complete in %d ms", result.Calculation.ID, result.RuntimeMs)

			if outFile == "" {
				outFile = filepath.Join(cfg.Paths.ExportDir, fmt.Sprintf("curves-%s.xlsx", result.Calculation.ID))
			}
			if err := excel.NewCurveWriter(outFile).Write(in.Levels, result.Curves); err != nil {
				return err
			}
			log.Printf("Curves written to %s", outFile)

			if htmlFile != "" {
				html, err := report.NewGenerator().HTML(result.Calculation, in.Levels, result.Curves)
				if err != nil {
					return err
				}
				if err := os.WriteFile(htmlFile, html, 0o644); err != nil {
					return err
				}
				log.Printf("Report written to %s", htmlFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modelFile, "model", "", "xlsx input model (Sites + Sources sheets)")
	cmd.Flags().StringVar(&gsimName, "gsim", "BergeThierry2003", "ground motion model name")
	cmd.Flags().StringSliceVar(&imls, "iml", []string{"SA(0.2):0.05,0.1,0.2,0.4"}, "measure:level,level,... (repeatable)")
	cmd.Flags().StringVar(&outFile, "out", "", "output xlsx path")
	cmd.Flags().StringVar(&htmlFile, "report", "", "optional HTML report path")
	return cmd
}

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available ground motion models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range gsim.Names() {
				fmt.Println(name)
			}
		},
	}
}

// parseIMLs parses "SA(0.2):0.05,0.1,0.2" flag values into a level map
func parseIMLs(specs []string) (imt.Levels, error) {
	levels := make(imt.Levels, len(specs))
	for _, spec := range specs {
		name, rest, ok := strings.Cut(spec, ":")
		if !ok {
			return nil, fmt.Errorf("malformed iml %q, want measure:levels", spec)
		}
		m, err := imt.Parse(name)
		if err != nil {
			return nil, err
		}
		var lv []float64
		for _, field := range strings.Split(rest, ",") {
			var v float64
			if _, err := fmt.Sscanf(strings.TrimSpace(field), "%g", &v); err != nil {
				return nil, fmt.Errorf("malformed level %q in %q", field, spec)
			}
			lv = append(lv, v)
		}
		levels[m] = lv
	}
	if err := levels.Validate(); err != nil {
		return nil, err
	}
	return levels, nil
}

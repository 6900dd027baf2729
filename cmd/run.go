package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
	"github.com/mehranjafarii/heat-simulation-fdm/plot"
)

// RunCmd represents the run command
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one simulation and print the equations, node temperatures and matrices",
	Long: `Run one simulation and print the equations, node temperatures and matrices.

Inputs come from the [defaults] section of the config, then the YAML file
given with --input, then individual flags. Example input file:
` + exampleInput,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ip, err := processInput(cmd, cfg.Defaults)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		ip.Print(out)
		fmt.Fprintln(out)

		res, err := calculator.NewCalculator(cfg).Simulate(ip.SimulationInput)
		if err != nil {
			return err
		}
		fmt.Fprint(out, res.Report())
		fmt.Fprintf(out, "\nkernel cond = %.3e, FDM residual = %.3e, elapsed = %v\n",
			res.KernelCond, res.Residual, res.Elapsed)

		if path, _ := cmd.Flags().GetString("json"); path != "" {
			if err = writeJSON(path, res); err != nil {
				return err
			}
		}
		if path, _ := cmd.Flags().GetString("png"); path != "" {
			if err = writePNG(path, res.Profile(ip.XCut)); err != nil {
				return err
			}
		}
		return nil
	},
}

func processInput(cmd *cobra.Command, defaults model.SimulationInput) (*InputParameters, error) {
	ip := &InputParameters{
		Title:           calculator.Title,
		SimulationInput: defaults,
		XCut:            model.Width / 2,
	}
	if path, _ := cmd.Flags().GetString("input"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err = ip.Parse(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	flags := cmd.Flags()
	for name, dst := range map[string]*float64{
		"top":    &ip.Top,
		"bottom": &ip.Bottom,
		"vnode":  &ip.Vnode,
		"sigma":  &ip.Sigma,
		"xcut":   &ip.XCut,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}
	if flags.Changed("nx") {
		ip.Nx, _ = flags.GetInt("nx")
	}
	if flags.Changed("ny") {
		ip.Ny, _ = flags.GetInt("ny")
	}
	return ip, nil
}

func writeJSON(path string, res *calculator.Result) error {
	data, err := json.MarshalIndent(res.Payload(), "", "  ")
	if err != nil {
		return err
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.WithField("path", path).Info("payload written")
	return nil
}

func writePNG(path string, p model.Profile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = plot.RenderProfile(f, p); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": path, "x": p.X}).Info("profile chart written")
	return nil
}

func init() {
	rootCmd.AddCommand(RunCmd)
	RunCmd.Flags().StringP("input", "I", "", "YAML input parameters file")
	RunCmd.Flags().Float64("top", 0, "top boundary temperature, C")
	RunCmd.Flags().Float64("bottom", 0, "bottom boundary temperature, C")
	RunCmd.Flags().Float64("vnode", 0, "interior perturbation, C")
	RunCmd.Flags().Float64("sigma", 0, "Gaussian kernel width, clamped to [0.35, 1.20]")
	RunCmd.Flags().Int("nx", 0, "grid samples along x, clamped to [80, 320]")
	RunCmd.Flags().Int("ny", 0, "grid samples along y, clamped to [60, 260]")
	RunCmd.Flags().Float64("xcut", 0, "x of the temperature profile chart")
	RunCmd.Flags().String("json", "", "write the export payload to this file")
	RunCmd.Flags().String("png", "", "write the temperature profile chart to this file")
}

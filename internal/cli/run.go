package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/pacer"
	"github.com/wesleyorama2/pacer/internal/config"
	"github.com/wesleyorama2/pacer/internal/output"
	"github.com/wesleyorama2/pacer/internal/workload"
	"github.com/wesleyorama2/pacer/metrics"
)

var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [items...]",
		Short: "Drip items to workers at a target rate",
		Long: `Run dispatches items at the configured rate and prints a summary of
the observed pacing when every worker has finished.

Items come from positional arguments, a workload file, or a config file:

  pacer run --rate 2 one two three
  pacer run --rpm 100 --file requests.txt --workers 4
  pacer run --file reqs.json --format json --json-path "requests.#.url"
  pacer run --config run.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args)
		},
	}

	cmd.Flags().StringP("config", "c", "", "run configuration file (.yaml or .json)")
	cmd.Flags().StringP("file", "f", "", "workload file with items to dispatch")
	cmd.Flags().String("format", "lines", "workload file format: lines or json")
	cmd.Flags().String("json-path", "", "gjson path selecting the item array in a json workload")
	cmd.Flags().Float64("rate", 0, "target rate in items per second")
	cmd.Flags().Float64("rpm", 0, "target rate in items per minute")
	cmd.Flags().Duration("tick", 0, "scheduling tick interval (default 100ms)")
	cmd.Flags().IntP("workers", "w", 0, "max concurrent workers (default: logical CPUs)")
	cmd.Flags().Float64("burst", 0, "cap on accumulated admission credits (default: uncapped)")
	cmd.Flags().BoolP("quiet", "q", false, "suppress per-item output")
	cmd.Flags().Bool("no-color", false, "disable colored output")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noColor, _ := cmd.Flags().GetBool("no-color")

	runCfg, err := resolveRunConfig(cmd, configFile)
	if err != nil {
		return err
	}

	items, err := resolveItems(runCfg, args)
	if err != nil {
		return err
	}

	engine := metrics.NewEngine()
	pacerCfg := runCfg.Pacer().WithRecorder(engine)

	action := func(batch []string) {
		if quiet {
			return
		}
		for _, item := range batch {
			fmt.Println(item)
		}
	}

	if err := pacer.RunSlice(pacerCfg, items, action); err != nil {
		return err
	}

	formatter := output.NewFormatter(output.SchemeFor(noColor))
	fmt.Fprint(os.Stderr, formatter.Summary(runCfg.Name, engine.Snapshot()))
	return nil
}

// resolveRunConfig loads the config file when given, otherwise builds a
// RunConfig from flags. Flags override file values either way.
func resolveRunConfig(cmd *cobra.Command, configFile string) (*config.RunConfig, error) {
	var runCfg *config.RunConfig

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		runCfg = loaded
	} else {
		runCfg = &config.RunConfig{Name: "pacer run", Tick: "100ms",
			Workload: config.WorkloadConfig{Format: "lines"}}
	}

	if rate, _ := cmd.Flags().GetFloat64("rate"); rate > 0 {
		runCfg.Rate, runCfg.RPM = rate, 0
	}
	if rpm, _ := cmd.Flags().GetFloat64("rpm"); rpm > 0 {
		runCfg.RPM, runCfg.Rate = rpm, 0
	}
	if runCfg.Rate == 0 && runCfg.RPM == 0 {
		runCfg.Rate = 1.0
	}

	if tick, _ := cmd.Flags().GetDuration("tick"); tick > 0 {
		runCfg.Tick = tick.String()
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		runCfg.MaxWorkers = workers
	}
	if burst, _ := cmd.Flags().GetFloat64("burst"); burst > 0 {
		runCfg.MaxBurst = burst
	}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		runCfg.Workload.File = file
	}
	if format, _ := cmd.Flags().GetString("format"); cmd.Flags().Changed("format") {
		runCfg.Workload.Format = format
	}
	if jsonPath, _ := cmd.Flags().GetString("json-path"); jsonPath != "" {
		runCfg.Workload.Path = jsonPath
	}

	if err := runCfg.Validate(); err != nil {
		return nil, err
	}
	return runCfg, nil
}

// resolveItems prefers positional arguments, then the workload file.
func resolveItems(runCfg *config.RunConfig, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if runCfg.Workload.File == "" {
		return nil, fmt.Errorf("no items: pass them as arguments, or set --file or a workload in the config")
	}
	return workload.Load(runCfg.Workload.File, runCfg.Workload.Format, runCfg.Workload.Path)
}

package main

import (
	"github.com/cwbudde/algo-winding/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries state shared between the root command and its children.
type app struct {
	configFile string
	v          *viper.Viper
	configUsed string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "winding",
		Short: "Frequency analysis by winding a signal around the origin",
		Long: `winding estimates the phasor of a signal at every frequency of a sweep by
wrapping the signal around the origin and taking the centre of mass of the
wound curve. Peaks in the resulting magnitude spectrum are the frequencies
the signal contains; the phasor angle is their phase.

The analysed signal is either synthesised from tones (frequency[:phase])
or read from a PCM WAV file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "",
		"config file (default is ./winding.yaml or $HOME/.config/winding/winding.yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringP("output", "o", config.OutputTable, "output format (table, json, yaml)")

	root.AddCommand(newAnalyzeCmd(a), newVersionCmd())
	return root
}

// persistentKeys maps root flags to configuration keys.
var persistentKeys = map[string]string{
	"log-level": "log_level",
	"output":    "output",
}

// initConfig builds the viper instance for this invocation: defaults, then
// the config file, then WINDING_* variables, then flags that were set.
func (a *app) initConfig(cmd *cobra.Command) error {
	a.v = config.New(a.configFile)

	used, err := config.ReadFile(a.v)
	if err != nil {
		return err
	}
	a.configUsed = used

	if err := bindFlags(cmd.Flags(), a.v, persistentKeys); err != nil {
		return err
	}
	return bindFlags(cmd.Flags(), a.v, analyzeKeys)
}

// bindFlags binds each flag present in fs to its configuration key.
func bindFlags(fs *pflag.FlagSet, v *viper.Viper, keys map[string]string) error {
	var lastErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := keys[f.Name]
		if !ok {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}

package agentcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/sstallion/go-hid"

	"github.com/hidtools/hidlayout/hiddesc"
	"github.com/hidtools/hidlayout/pkg/agent"
	"github.com/hidtools/hidlayout/pkg/descfile"
)

func Main(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	dir, err := os.UserConfigDir()
	if err != nil {
		return err
	}
	cmd := NewRootCmd(filepath.Join(dir, "hidlayout"))
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(ctx)
}

func NewRootCmd(configDir string) *cobra.Command {
	cfg := agent.Config{
		DataDir:      filepath.Join(configDir, "data"),
		CorpusConfig: filepath.Join(configDir, "corpus.yml"),
	}
	rootCmd := &cobra.Command{
		Use:   "hidlayout",
		Short: "HID report layout agent",
		Long:  `hidlayout resolves HID report descriptors into pointing-device report layouts.`,
	}
	rootCmd.PersistentFlags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&cfg.CorpusConfig, "corpus-config", cfg.CorpusConfig, "corpus config file")
	rootCmd.AddCommand(NewRun(&cfg))
	rootCmd.AddCommand(NewParse())
	rootCmd.AddCommand(NewTrace())
	rootCmd.AddCommand(NewDiff())
	rootCmd.AddCommand(NewDetect())
	rootCmd.AddCommand(NewListDevices())
	return rootCmd
}

func NewRun(cfg *agent.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the layout agent",
		Long:  `Run the layout agent daemon, watching the descriptor corpus and maintaining resolved layouts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := agent.NewAgent(*cfg)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Run(cmd.Context())
		},
	}
}

func NewParse() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a report descriptor",
		Long:  `Parse a report descriptor file (hex text or raw binary) and print its layout table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: parse <file>")
			}
			desc, err := descfile.Read(args[0])
			if err != nil {
				return err
			}
			table := hiddesc.Decode(desc)
			return printTable(cmd.OutOrStdout(), table, output)
		},
	}
	cmd.Flags().StringVar(&output, "output", "json", "output format (json or yaml)")
	return cmd
}

func printTable(out io.Writer, table hiddesc.LayoutTable, output string) error {
	switch output {
	case "json":
		jsonB, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(jsonB))
	case "yaml":
		yamlB, err := yaml.Marshal(table)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(yamlB))
	default:
		return fmt.Errorf("unknown output format: %s", output)
	}
	return nil
}

func NewTrace() *cobra.Command {
	return &cobra.Command{
		Use:   "trace",
		Short: "Trace report descriptor items",
		Long:  `Walk a report descriptor and print every item with its decoded meaning.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: trace <file>")
			}
			desc, err := descfile.Read(args[0])
			if err != nil {
				return err
			}
			w := hiddesc.NewWalker(hiddesc.WithTrace(func(ev hiddesc.TraceEvent) {
				fmt.Fprintln(cmd.OutOrStdout(), ev.String())
			}))
			w.Walk(desc)
			return nil
		},
	}
}

func NewDiff() *cobra.Command {
	return &cobra.Command{
		Use:   "diff",
		Short: "Compare two report descriptors",
		Long:  `Compare the layout tables of two report descriptors and print field-level differences.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: diff <file-a> <file-b>")
			}
			descA, err := descfile.Read(args[0])
			if err != nil {
				return err
			}
			descB, err := descfile.Read(args[1])
			if err != nil {
				return err
			}
			diffs := hiddesc.DiffTables(hiddesc.Decode(descA), hiddesc.Decode(descB))
			for _, diff := range diffs {
				fmt.Fprintln(cmd.OutOrStdout(), diff.String())
			}
			if len(diffs) > 0 {
				return fmt.Errorf("layouts differ in %d fields", len(diffs))
			}
			return nil
		},
	}
}

func NewDetect() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Detect device type",
		Long:  `Walk a report descriptor and print the detected device class.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: detect <file>")
			}
			desc, err := descfile.Read(args[0])
			if err != nil {
				return err
			}
			w := hiddesc.NewWalker()
			w.Walk(desc)
			fmt.Fprintln(cmd.OutOrStdout(), w.DeviceClass().String())
			return nil
		},
	}
}

func NewListDevices() *cobra.Command {
	return &cobra.Command{
		Use:   "list-devices",
		Short: "List HID devices",
		Long:  `List HID devices connected to the system.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := hid.Init(); err != nil {
				return err
			}
			defer hid.Exit()
			var devices []*hid.DeviceInfo
			err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
				devices = append(devices, info)
				return nil
			})
			if err != nil {
				return err
			}
			jsonB, err := json.MarshalIndent(devices, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonB))
			return nil
		},
	}
}

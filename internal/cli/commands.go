package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/simreg/internal/version"
	"github.com/arthur-debert/simreg/pkg/config"
	"github.com/arthur-debert/simreg/pkg/docs"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/launch"
	"github.com/arthur-debert/simreg/pkg/runconfig"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/ui"
)

// Kinds are the entity kinds accepted by list, in display order
var Kinds = []string{"modules", "channels", "networks", "interfaces", "classes", "functions"}

// Listing is one row of the list command
type Listing struct {
	Kind   string `yaml:"kind"`
	Name   string `yaml:"name"`
	Detail string `yaml:"detail,omitempty"`
}

// Entities lists the registered entities of kind, in registration order
func Entities(reg *simreg.Registries, kind string) ([]Listing, error) {
	var out []Listing
	switch kind {
	case "modules":
		for _, e := range reg.Modules.Entries() {
			out = append(out, Listing{Kind: kind, Name: e.Name, Detail: likeDetail(e.Name, e.InterfaceName)})
		}
	case "channels":
		for _, e := range reg.Channels.Entries() {
			out = append(out, Listing{Kind: kind, Name: e.Name, Detail: likeDetail(e.Name, e.InterfaceName)})
		}
	case "networks":
		for _, e := range reg.Networks.Entries() {
			out = append(out, Listing{Kind: kind, Name: e.Name, Detail: likeDetail(e.Name, e.InterfaceName)})
		}
	case "interfaces":
		for _, name := range reg.Interfaces.Names() {
			out = append(out, Listing{Kind: kind, Name: name, Detail: strings.Join(reg.Modules.Implementers(name), ", ")})
		}
	case "classes":
		for _, name := range reg.Classes.Names() {
			out = append(out, Listing{Kind: kind, Name: name})
		}
	case "functions":
		for _, f := range reg.Functions.All() {
			out = append(out, Listing{Kind: kind, Name: f.Name, Detail: fmt.Sprintf("arity %d", f.Arity)})
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, MsgUnknownKind, kind, strings.Join(Kinds, ", ")).
			WithDetail("kind", kind)
	}
	return out, nil
}

func likeDetail(name, interfaceName string) string {
	if name == interfaceName {
		return ""
	}
	return "like " + interfaceName
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode output")
	}
	return enc.Close()
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "list [kind]",
		Short:     MsgListShort,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: Kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.outputFormat()
			kinds := Kinds
			if len(args) == 1 {
				kinds = args
			}

			var all []Listing
			for _, kind := range kinds {
				entries, err := Entities(opts.reg, kind)
				if err != nil {
					return err
				}
				all = append(all, entries...)
			}

			out := cmd.OutOrStdout()
			if format == ui.FormatYAML {
				return writeYAML(out, all)
			}
			if len(all) == 0 {
				_, err := fmt.Fprintf(out, MsgNoEntries+"\n", strings.Join(kinds, ", "))
				return err
			}
			rows := make([][]string, 0, len(all))
			for _, l := range all {
				rows = append(rows, []string{l.Kind, l.Name, l.Detail})
			}
			return ui.Table(out, format, []string{"KIND", "NAME", "DETAIL"}, rows)
		},
	}
}

func newDescribeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <name>",
		Short: MsgDescribeShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.outputFormat()
			name := args[0]

			// a concrete module type resolves to the interface it implements
			if e, err := opts.reg.Modules.Lookup(name); err == nil {
				name = e.InterfaceName
			}

			out := cmd.OutOrStdout()
			if format == ui.FormatYAML {
				data, err := docs.DescribeYAML(opts.reg, name)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			desc, err := opts.reg.Interfaces.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.Heading(format, desc.Name()))
			rows := make([][]string, 0, desc.Len())
			for _, it := range desc.Decls() {
				switch it.Tag {
				case iface.TagGate:
					rows = append(rows, []string{"gate", it.Name, it.Dir.String()})
				case iface.TagParam:
					rows = append(rows, []string{"parameter", it.Name, docs.MaskDescription(it.Types)})
				}
			}
			return ui.Table(out, format, []string{"KIND", "NAME", "DETAIL"}, rows)
		},
	}
}

func newDocsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: MsgDocsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.outputFormat()
			md := docs.Markdown(opts.reg)
			if format == ui.FormatTerminal {
				cfg := config.Get()
				md = docs.Render(md, cfg.Docs.Style, cfg.Docs.Width)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
}

func newFunctionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "functions [name]",
		Short: MsgFunctionsShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.outputFormat()

			var rows [][]string
			for _, f := range opts.reg.Functions.All() {
				if len(args) == 1 && f.Name != args[0] {
					continue
				}
				rows = append(rows, []string{f.Name, strconv.Itoa(f.Arity)})
			}
			if len(args) == 1 && len(rows) == 0 {
				return errors.Newf(errors.ErrUnknownFunction, MsgNoSuchFunction, args[0]).
					WithDetail("name", args[0])
			}

			out := cmd.OutOrStdout()
			if format == ui.FormatYAML {
				return writeYAML(out, rows)
			}
			return ui.Table(out, format, []string{"NAME", "ARITY"}, rows)
		},
	}
}

func newCallCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "call <name> [args...]",
		Short: MsgCallShort,
		Args:  cobra.RangeArgs(1, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]float64, 0, len(args)-1)
			for _, a := range args[1:] {
				v, err := strconv.ParseFloat(a, 64)
				if err != nil {
					return errors.Newf(errors.ErrInvalidInput, MsgBadArgument, a)
				}
				values = append(values, v)
			}

			f, err := opts.reg.LookupFunction(args[0], len(values))
			if err != nil {
				return err
			}
			result, err := f.Call(values...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(result, 'g', -1, 64))
			return err
		},
	}
}

func newPlanCmd(opts *options) *cobra.Command {
	var runFile, configName string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format := opts.outputFormat()

			run, err := runconfig.Load(runFile)
			if err != nil {
				return err
			}
			plan, err := launch.Prepare(opts.reg, run, configName)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == ui.FormatYAML {
				return writeYAML(out, plan)
			}

			fmt.Fprintln(out, ui.Heading(format, fmt.Sprintf(MsgPlanHeader, plan.NetworkName, displayConfig(configName), strings.Join(plan.Chain, " > "))))
			var rows [][]string
			for _, sub := range plan.Submodules {
				params := sub.ParamStrings()
				names := make([]string, 0, len(params))
				for _, p := range paramOrder(opts.reg, sub.InterfaceName) {
					if v, ok := params[p]; ok {
						names = append(names, p+"="+v)
					}
				}
				rows = append(rows, []string{sub.Type, sub.InterfaceName, strings.Join(names, " ")})
			}
			return ui.Table(out, format, []string{"MODULE", "INTERFACE", "PARAMETERS"}, rows)
		},
	}

	cmd.Flags().StringVar(&runFile, "run", "", MsgFlagRun)
	cmd.Flags().StringVarP(&configName, "config", "c", "", MsgFlagConfig)
	_ = cmd.MarkFlagRequired("run")
	return cmd
}

// paramOrder lists the parameters of an interface in declaration order
func paramOrder(reg *simreg.Registries, interfaceName string) []string {
	desc, err := reg.Interfaces.Lookup(interfaceName)
	if err != nil {
		return nil
	}
	var names []string
	for _, p := range desc.Params() {
		names = append(names, p.Name)
	}
	return names
}

func displayConfig(name string) string {
	if name == "" {
		return runconfig.General
	}
	return name
}

func newGenConfigCmd() *cobra.Command {
	var settings bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if settings {
				_, err := fmt.Fprint(out, config.DefaultContent())
				return err
			}
			data, err := runconfig.Marshal(runconfig.Example())
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&settings, "settings", false, MsgFlagSettings)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

// Package docs renders what the registries hold: interface descriptors,
// concrete types, classes and functions.
package docs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/simreg/pkg/classes"
	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/iface"
	"github.com/arthur-debert/simreg/pkg/simreg"
	"github.com/arthur-debert/simreg/pkg/simtypes"
)

// Markdown documents every registered entity, in registration order
func Markdown(reg *simreg.Registries) string {
	var b strings.Builder

	b.WriteString("# Registered entities\n\n")

	b.WriteString("## Interfaces\n\n")
	for _, name := range reg.Interfaces.Names() {
		desc, err := reg.Interfaces.Lookup(name)
		if err != nil {
			continue
		}
		writeInterface(&b, desc, reg.Modules.Implementers(name))
	}

	writeTypes(&b, "Module types", reg.Modules.Entries())
	writeTypes(&b, "Channel types", reg.Channels.Entries())
	writeTypes(&b, "Network types", reg.Networks.Entries())

	b.WriteString("## Classes\n\n")
	for _, name := range reg.Classes.Names() {
		fmt.Fprintf(&b, "- `%s`\n", name)
	}
	b.WriteString("\n")

	b.WriteString("## Functions\n\n")
	for _, f := range reg.Functions.All() {
		fmt.Fprintf(&b, "- `%s(%s)`\n", f.Name, argList(f.Arity))
	}
	return b.String()
}

func writeInterface(b *strings.Builder, desc *iface.Descriptor, implementers []string) {
	fmt.Fprintf(b, "### %s\n\n", desc.Name())
	if len(implementers) > 0 {
		fmt.Fprintf(b, "Implemented by: %s\n\n", strings.Join(implementers, ", "))
	}
	if desc.Len() == 0 {
		b.WriteString("No gates or parameters.\n\n")
		return
	}
	b.WriteString("| Kind | Name | Detail |\n|---|---|---|\n")
	for _, it := range desc.Decls() {
		switch it.Tag {
		case iface.TagGate:
			fmt.Fprintf(b, "| gate | %s | %s |\n", it.Name, it.Dir)
		case iface.TagParam:
			fmt.Fprintf(b, "| parameter | %s | %s |\n", it.Name, MaskDescription(it.Types))
		}
	}
	b.WriteString("\n")
}

func writeTypes[T classes.Object](b *strings.Builder, title string, entries []*simtypes.Entry[T]) {
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, e := range entries {
		if e.InterfaceName != e.Name {
			fmt.Fprintf(b, "- `%s` (like `%s`)\n", e.Name, e.InterfaceName)
			continue
		}
		fmt.Fprintf(b, "- `%s`\n", e.Name)
	}
	b.WriteString("\n")
}

func argList(arity int) string {
	args := []string{"a", "b", "c"}
	return strings.Join(args[:arity], ", ")
}

// MaskDescription spells out a type mask, e.g. "const numeric/bool"
func MaskDescription(m iface.TypeMask) string {
	var parts []string
	if m.RequiresConst() {
		parts = append(parts, "const")
	}
	switch {
	case m.AllowsAny():
		parts = append(parts, "any")
	default:
		var kinds []string
		if strings.ContainsAny(string(m), string(iface.Numeric)) {
			kinds = append(kinds, "numeric/bool")
		}
		if strings.Contains(string(m), string(iface.String)) {
			kinds = append(kinds, "string")
		}
		if strings.Contains(string(m), string(iface.XML)) {
			kinds = append(kinds, "xml")
		}
		if len(kinds) > 0 {
			parts = append(parts, strings.Join(kinds, "|"))
		}
	}
	if len(parts) == 0 {
		return string(m)
	}
	return strings.Join(parts, " ")
}

// Render converts markdown for the terminal with glamour. Style is a glamour
// style name or path ("auto" or empty detects); width 0 keeps the default.
// Rendering problems fall back to the plain markdown.
func Render(markdown, style string, width int) string {
	var options []glamour.TermRendererOption

	if style != "" && style != "auto" {
		options = append(options, glamour.WithStylePath(style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if width > 0 {
		options = append(options, glamour.WithWordWrap(width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return markdown
	}
	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}

// Declaration is the serialisable form of one gate or parameter
type Declaration struct {
	Kind      string `yaml:"kind"`
	Name      string `yaml:"name"`
	Direction string `yaml:"direction,omitempty"`
	Mask      string `yaml:"mask,omitempty"`
}

// Description is the serialisable form of a descriptor
type Description struct {
	Name         string        `yaml:"name"`
	Implementers []string      `yaml:"implementers,omitempty"`
	Declarations []Declaration `yaml:"declarations"`
}

// Describe builds the serialisable view of desc
func Describe(desc *iface.Descriptor, implementers []string) Description {
	d := Description{Name: desc.Name(), Implementers: implementers}
	d.Declarations = make([]Declaration, 0, desc.Len())
	for _, it := range desc.Decls() {
		switch it.Tag {
		case iface.TagGate:
			d.Declarations = append(d.Declarations, Declaration{Kind: "gate", Name: it.Name, Direction: it.Dir.String()})
		case iface.TagParam:
			d.Declarations = append(d.Declarations, Declaration{Kind: "parameter", Name: it.Name, Mask: string(it.Types)})
		}
	}
	return d
}

// DescribeYAML looks up the interface called name and encodes its description
func DescribeYAML(reg *simreg.Registries, name string) ([]byte, error) {
	desc, err := reg.Interfaces.Lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(Describe(desc, reg.Modules.Implementers(name)))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode description")
	}
	return out, nil
}

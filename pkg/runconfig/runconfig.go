package runconfig

import (
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/simreg/pkg/errors"
	"github.com/arthur-debert/simreg/pkg/logging"
)

// General is the name of the section every chain ends with
const General = "General"

var log = logging.GetLogger("runconfig")

// Section is one [General] or [Config.<name>] table
type Section struct {
	Extends     string                 `toml:"extends,omitempty"`
	Description string                 `toml:"description,omitempty"`
	Network     string                 `toml:"network,omitempty"`
	Params      map[string]interface{} `toml:"params,omitempty"`
}

// File is a parsed run file
type File struct {
	General Section            `toml:"General"`
	Configs map[string]Section `toml:"Config,omitempty"`
}

// Load reads and parses a run file
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read run file %s", filename).
			WithDetail("path", filename)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "run file %s", filename).
			WithDetail("path", filename)
	}
	log.Debug().Str("path", filename).Int("configs", len(f.Configs)).Msg("Run file loaded")
	return f, nil
}

// Parse decodes a run file from TOML
func Parse(data []byte) (*File, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse TOML")
	}
	if _, exists := f.Configs[General]; exists {
		return nil, errors.Newf(errors.ErrConfigValid, "configuration may not be named %s", General)
	}
	return &f, nil
}

// Marshal encodes f as TOML
func Marshal(f *File) ([]byte, error) {
	data, err := toml.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode run file")
	}
	return data, nil
}

// ConfigNames lists the named configurations, sorted
func (f *File) ConfigNames() []string {
	names := make([]string, 0, len(f.Configs))
	for name := range f.Configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Section returns the section called name; General is always present
func (f *File) Section(name string) (Section, bool) {
	if name == General {
		return f.General, true
	}
	s, ok := f.Configs[name]
	return s, ok
}

// ParseExtendsList splits an extends value on commas and whitespace,
// dropping empty names: " foo,, bar  baz " -> [foo bar baz]
func ParseExtendsList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// SectionChain returns the sections consulted for config, most specific
// first and General last. The order is the C3 linearisation of the extends
// graph, where a configuration without extends has General as its base.
// An empty config name means General alone.
func (f *File) SectionChain(config string) ([]string, error) {
	if config == "" || config == General {
		return []string{General}, nil
	}
	if _, ok := f.Configs[config]; !ok {
		return nil, errors.UnknownName(errors.ErrConfigValid, "configuration", config)
	}
	l := &linearizer{file: f, root: config, done: map[string][]string{}, onPath: map[string]bool{}}
	return l.chain(config, config)
}

type linearizer struct {
	file   *File
	root   string
	done   map[string][]string
	onPath map[string]bool
}

// bases returns the direct bases of a section
func (l *linearizer) bases(name string) []string {
	if name == General {
		return nil
	}
	parents := ParseExtendsList(l.file.Configs[name].Extends)
	if len(parents) == 0 {
		return []string{General}
	}
	return parents
}

func (l *linearizer) chain(name, from string) ([]string, error) {
	if chain, ok := l.done[name]; ok {
		return chain, nil
	}
	if l.onPath[name] {
		return nil, errors.Newf(errors.ErrConfigValid, "configuration %s: cycle in extends through %s", l.root, name).
			WithDetail("name", l.root)
	}
	if name != General {
		if _, ok := l.file.Configs[name]; !ok {
			return nil, errors.Newf(errors.ErrConfigValid, "configuration %s extends unknown configuration %s", from, name).
				WithDetail("name", from).
				WithDetail("parent", name)
		}
	}

	l.onPath[name] = true
	defer delete(l.onPath, name)

	bases := l.bases(name)
	seqs := make([][]string, 0, len(bases)+1)
	for _, base := range bases {
		chain, err := l.chain(base, name)
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, chain)
	}
	seqs = append(seqs, bases)

	merged, ok := c3Merge(seqs)
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "configuration %s: inconsistent extends order", name).
			WithDetail("name", name)
	}
	chain := append([]string{name}, merged...)
	l.done[name] = chain
	return chain, nil
}

// c3Merge repeatedly takes the first head that appears in no sequence's tail
func c3Merge(seqs [][]string) ([]string, bool) {
	work := make([][]string, 0, len(seqs))
	for _, seq := range seqs {
		if len(seq) > 0 {
			work = append(work, append([]string(nil), seq...))
		}
	}

	var out []string
	for len(work) > 0 {
		head := ""
		for _, seq := range work {
			if !inTail(work, seq[0]) {
				head = seq[0]
				break
			}
		}
		if head == "" {
			return nil, false
		}
		out = append(out, head)

		next := work[:0]
		for _, seq := range work {
			if seq[0] == head {
				seq = seq[1:]
			}
			if len(seq) > 0 {
				next = append(next, seq)
			}
		}
		work = next
	}
	return out, true
}

func inTail(seqs [][]string, name string) bool {
	for _, seq := range seqs {
		for _, s := range seq[1:] {
			if s == name {
				return true
			}
		}
	}
	return false
}

// LookupConfig returns the value of a section-level key ("network" or
// "description") from the first section in chain that sets it
func (f *File) LookupConfig(chain []string, key string) (string, bool) {
	for _, name := range chain {
		s, ok := f.Section(name)
		if !ok {
			continue
		}
		var v string
		switch key {
		case "network":
			v = s.Network
		case "description":
			v = s.Description
		case "extends":
			v = s.Extends
		}
		if v != "" {
			return v, true
		}
	}
	return "", false
}

// LookupNetwork returns the network configured for config
func (f *File) LookupNetwork(config string) (string, error) {
	chain, err := f.SectionChain(config)
	if err != nil {
		return "", err
	}
	network, ok := f.LookupConfig(chain, "network")
	if !ok {
		return "", errors.Newf(errors.ErrConfigValid, "no network configured for %s", displayName(config)).
			WithDetail("name", config)
	}
	return network, nil
}

// LookupParam finds the value for parameter param of module along chain.
// Within a section an exact "module.param" key wins over patterns such as
// "*.param"; among patterns the longest wins.
func (f *File) LookupParam(chain []string, module, param string) (interface{}, string, bool) {
	full := module + "." + param
	for _, name := range chain {
		s, ok := f.Section(name)
		if !ok || len(s.Params) == 0 {
			continue
		}
		if v, ok := s.Params[full]; ok {
			return v, name, true
		}
		if key, ok := bestPattern(s.Params, full); ok {
			return s.Params[key], name, true
		}
	}
	return nil, "", false
}

func bestPattern(params map[string]interface{}, full string) (string, bool) {
	best := ""
	for key := range params {
		if !strings.ContainsAny(key, "*?[") {
			continue
		}
		if matched, _ := path.Match(key, full); !matched {
			continue
		}
		if len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}
	return best, best != ""
}

func displayName(config string) string {
	if config == "" || config == General {
		return "[" + General + "]"
	}
	return fmt.Sprintf("[Config %s]", config)
}

// Example returns a small run file for the built-in models
func Example() *File {
	return &File{
		General: Section{
			Network: "Tandem",
			Params: map[string]interface{}{
				"*.capacity":      int64(100),
				"Source.interval": "exponential(1)",
				"Queue.routing":   `<routing policy="fifo"/>`,
			},
		},
		Configs: map[string]Section{
			"Fast": {
				Description: "shorter service times",
				Params: map[string]interface{}{
					"Queue.serviceTime": 0.1,
				},
			},
		},
	}
}

package iface

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/simreg/pkg/errors"
)

// Implementation is what a concrete type actually provides
type Implementation struct {
	Gates  map[string]Direction
	Params map[string]Value
}

// Conform checks that impl provides every gate and parameter d declares
func Conform(d *Descriptor, impl Implementation) error {
	var problems []string

	for _, g := range d.Gates() {
		dir, ok := impl.Gates[g.Name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("missing gate %q", g.Name))
		case dir != g.Dir:
			problems = append(problems, fmt.Sprintf("gate %q is %s, declared %s", g.Name, dir, g.Dir))
		}
	}

	for _, p := range d.Params() {
		v, ok := impl.Params[p.Name]
		if !ok {
			problems = append(problems, fmt.Sprintf("missing parameter %q", p.Name))
			continue
		}
		if err := CheckValue(p, v); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Newf(errors.ErrNonconforming, "%s: %s", d.Name(), strings.Join(problems, "; ")).
		WithDetail("interface", d.Name()).
		WithDetail("problems", problems)
}

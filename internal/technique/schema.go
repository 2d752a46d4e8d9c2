package technique

import "fmt"

// ParamSpec describes one numeric parameter: its unit, the accepted
// range and the value used when the caller does not supply one.
type ParamSpec struct {
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
}

// Schema is the ordered parameter schema of a technique.
type Schema []ParamSpec

// Params maps parameter names to values.
type Params map[string]float64

// Clone returns an independent copy of the parameter set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Defaults returns a parameter set with every schema default filled in.
func (s Schema) Defaults() Params {
	out := make(Params, len(s))
	for _, spec := range s {
		out[spec.Name] = spec.Default
	}
	return out
}

// Resolve merges the supplied values over the schema defaults and
// rejects unknown names and out-of-range values.
func (s Schema) Resolve(p Params) (Params, error) {
	out := s.Defaults()
	for name, value := range p {
		spec, ok := s.lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown parameter: %s", name)
		}
		if value < spec.Min || value > spec.Max {
			return nil, fmt.Errorf("parameter %s = %g outside range [%g, %g]", name, value, spec.Min, spec.Max)
		}
		out[name] = value
	}
	return out, nil
}

func (s Schema) lookup(name string) (ParamSpec, bool) {
	for _, spec := range s {
		if spec.Name == name {
			return spec, true
		}
	}
	return ParamSpec{}, false
}

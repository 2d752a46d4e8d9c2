package technique

import (
	"fmt"
	"sort"
)

// Category selects which model family and analysis branch apply to a
// technique.
type Category string

const (
	Voltammetry  Category = "voltammetry"
	Pulse        Category = "pulse"
	Impedance    Category = "impedance"
	Chronometric Category = "chronometric"
)

// Descriptor is the static catalogue entry for one electroanalytical
// technique. Descriptors are immutable after registration.
type Descriptor struct {
	ID           string
	Category     Category
	Name         string
	Abbreviation string
	Schema       Schema
}

// Validate checks a parameter set against the descriptor schema,
// applies defaults for absent parameters and enforces the cross-field
// constraints of the technique family. An unknown or out-of-range
// value is a configuration error; the simulation must not start with
// one.
func (d Descriptor) Validate(p Params) (Params, error) {
	out, err := d.Schema.Resolve(p)
	if err != nil {
		return nil, fmt.Errorf("technique %s: %w", d.ID, err)
	}
	switch d.Category {
	case Voltammetry, Pulse:
		if out["startPotential"] == out["endPotential"] {
			return nil, fmt.Errorf("technique %s: startPotential and endPotential must differ", d.ID)
		}
	case Impedance:
		if out["startFrequency"] <= 0 || out["endFrequency"] <= 0 {
			return nil, fmt.Errorf("technique %s: frequency bounds must be strictly positive", d.ID)
		}
	}
	return out, nil
}

// Registry is the static technique catalogue.
type Registry struct {
	descriptors map[string]Descriptor
}

func NewRegistry() *Registry {
	r := &Registry{descriptors: make(map[string]Descriptor)}

	potentialSweep := Schema{
		{Name: "startPotential", Unit: "V", Min: -2, Max: 2, Default: -0.5},
		{Name: "endPotential", Unit: "V", Min: -2, Max: 2, Default: 0.5},
		{Name: "scanRate", Unit: "V/s", Min: 0.001, Max: 10, Default: 0.05},
		{Name: "electrodeArea", Unit: "cm2", Min: 0.01, Max: 100, Default: 1},
		{Name: "temperature", Unit: "degC", Min: 0, Max: 80, Default: 25},
		{Name: "noiseLevel", Unit: "", Min: 0, Max: 1, Default: 0.02},
	}

	r.register(Descriptor{
		ID:           "cv",
		Category:     Voltammetry,
		Name:         "Cyclic Voltammetry",
		Abbreviation: "CV",
		Schema:       potentialSweep,
	})
	r.register(Descriptor{
		ID:           "lsv",
		Category:     Voltammetry,
		Name:         "Linear Sweep Voltammetry",
		Abbreviation: "LSV",
		Schema:       potentialSweep,
	})

	pulseSchema := append(Schema{
		{Name: "stepPotential", Unit: "V", Min: 0.001, Max: 0.05, Default: 0.005},
		{Name: "pulseAmplitude", Unit: "V", Min: 0.005, Max: 0.2, Default: 0.05},
	}, potentialSweep...)

	r.register(Descriptor{
		ID:           "dpv",
		Category:     Pulse,
		Name:         "Differential Pulse Voltammetry",
		Abbreviation: "DPV",
		Schema:       pulseSchema,
	})
	r.register(Descriptor{
		ID:           "swv",
		Category:     Pulse,
		Name:         "Square Wave Voltammetry",
		Abbreviation: "SWV",
		Schema:       pulseSchema,
	})

	r.register(Descriptor{
		ID:           "eis",
		Category:     Impedance,
		Name:         "Electrochemical Impedance Spectroscopy",
		Abbreviation: "EIS",
		Schema: Schema{
			{Name: "startFrequency", Unit: "Hz", Min: 0.0001, Max: 1e6, Default: 1e5},
			{Name: "endFrequency", Unit: "Hz", Min: 0.0001, Max: 1e6, Default: 0.1},
			{Name: "acAmplitude", Unit: "V", Min: 0.001, Max: 0.1, Default: 0.01},
			{Name: "electrodeArea", Unit: "cm2", Min: 0.01, Max: 100, Default: 1},
			{Name: "temperature", Unit: "degC", Min: 0, Max: 80, Default: 25},
			{Name: "noiseLevel", Unit: "", Min: 0, Max: 1, Default: 0.02},
		},
	})

	r.register(Descriptor{
		ID:           "ca",
		Category:     Chronometric,
		Name:         "Chronoamperometry",
		Abbreviation: "CA",
		Schema: Schema{
			{Name: "stepPotential", Unit: "V", Min: -2, Max: 2, Default: 0.3},
			{Name: "duration", Unit: "s", Min: 1, Max: 3600, Default: 60},
			{Name: "electrodeArea", Unit: "cm2", Min: 0.01, Max: 100, Default: 1},
			{Name: "temperature", Unit: "degC", Min: 0, Max: 80, Default: 25},
			{Name: "noiseLevel", Unit: "", Min: 0, Max: 1, Default: 0.02},
		},
	})

	return r
}

func (r *Registry) register(d Descriptor) {
	r.descriptors[d.ID] = d
}

// Get looks up a technique by id. Unknown ids are a hard error; there
// is no fallback technique because the underlying physics differ
// materially between families.
func (r *Registry) Get(id string) (Descriptor, error) {
	d, ok := r.descriptors[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("unknown technique: %s", id)
	}
	return d, nil
}

// List returns all descriptors ordered by id.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.descriptors))
	for _, d := range r.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

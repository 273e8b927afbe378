package mesh

// Kind identifies an output channel.
type Kind uint8

const (
	KindPosition Kind = iota
	KindNormal
	KindColor
	KindUV
)

var kindNames = [...]string{"position", "normal", "color", "uv"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// minWidth is the narrowest tuple the sampler can read for the kind.
func (k Kind) minWidth() int {
	if k == KindUV {
		return 2
	}
	return 3
}

// AttributeNames maps output channels to the evaluator's attribute names.
type AttributeNames struct {
	Position string `yaml:"position"`
	Normal   string `yaml:"normal"`
	Color    string `yaml:"color"`
	UV       string `yaml:"uv"`
}

// DefaultAttributeNames returns the evaluator's conventional names.
func DefaultAttributeNames() AttributeNames {
	return AttributeNames{
		Position: "P",
		Normal:   "N",
		Color:    "Cd",
		UV:       "uv",
	}
}

// Policy says where to look for one output channel.
type Policy struct {
	Kind     Kind
	Name     string
	Probe    []Rate // tried in order; the first hit wins
	Required bool
}

// DefaultPolicies returns the resolution policy for the four channels.
//
// Position is point-rate only and required. Normal and color try vertex
// rate, then point rate. UV is vertex-rate only unless uvPointFallback is
// set.
func DefaultPolicies(names AttributeNames, uvPointFallback bool) []Policy {
	uv := []Rate{RateVertex}
	if uvPointFallback {
		uv = []Rate{RateVertex, RatePoint}
	}
	return []Policy{
		{Kind: KindPosition, Name: names.Position, Probe: []Rate{RatePoint}, Required: true},
		{Kind: KindNormal, Name: names.Normal, Probe: []Rate{RateVertex, RatePoint}},
		{Kind: KindColor, Name: names.Color, Probe: []Rate{RateVertex, RatePoint}},
		{Kind: KindUV, Name: names.UV, Probe: uv},
	}
}

// Resolved is the outcome of resolving one policy.
type Resolved struct {
	Kind    Kind
	Channel Channel
	Found   bool
}

// Resolve runs every policy against v once and validates the channels it
// finds. A required channel that is not found yields ErrMissingPosition.
// An empty policy name disables the channel.
func Resolve(v *View, policies []Policy) ([]Resolved, error) {
	out := make([]Resolved, 0, len(policies))
	for _, p := range policies {
		r := Resolved{Kind: p.Kind}
		if p.Name != "" {
			for _, rate := range p.Probe {
				if c, ok := v.Attribute(p.Name, rate); ok {
					r.Channel, r.Found = c, true
					break
				}
			}
		}
		if !r.Found {
			if p.Required {
				rate := RatePoint
				if len(p.Probe) > 0 {
					rate = p.Probe[0]
				}
				return nil, &ChannelError{Channel: p.Name, Rate: rate, Err: ErrMissingPosition}
			}
			out = append(out, r)
			continue
		}
		if err := v.checkChannel(r.Channel, p.Kind.minWidth()); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

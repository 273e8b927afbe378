package mesh

import (
	"slices"
	"testing"
)

func TestDefaultPolicies(t *testing.T) {
	tests := []struct {
		name     string
		fallback bool
		wantUV   []Rate
	}{
		{"vertex only", false, []Rate{RateVertex}},
		{"with point fallback", true, []Rate{RateVertex, RatePoint}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policies := DefaultPolicies(DefaultAttributeNames(), tt.fallback)
			if len(policies) != 4 {
				t.Fatalf("got %d policies, want 4", len(policies))
			}
			pos := policies[0]
			if pos.Kind != KindPosition || !pos.Required || !slices.Equal(pos.Probe, []Rate{RatePoint}) {
				t.Errorf("position policy = %+v", pos)
			}
			for _, p := range policies[1:3] {
				if p.Required {
					t.Errorf("%s should be optional", p.Kind)
				}
				if !slices.Equal(p.Probe, []Rate{RateVertex, RatePoint}) {
					t.Errorf("%s probe = %v, want [vertex point]", p.Kind, p.Probe)
				}
			}
			if got := policies[3].Probe; !slices.Equal(got, tt.wantUV) {
				t.Errorf("uv probe = %v, want %v", got, tt.wantUV)
			}
		})
	}
}

func TestResolve_NotFoundIsAbsent(t *testing.T) {
	v, err := NewView(quadSnapshot())
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	resolved, err := Resolve(v, DefaultPolicies(DefaultAttributeNames(), true))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	found := map[Kind]bool{}
	for _, r := range resolved {
		found[r.Kind] = r.Found
	}
	want := map[Kind]bool{KindPosition: true, KindNormal: false, KindColor: false, KindUV: false}
	for k, w := range want {
		if found[k] != w {
			t.Errorf("%s found = %v, want %v", k, found[k], w)
		}
	}
}

func TestParseRate(t *testing.T) {
	tests := []struct {
		in     string
		want   Rate
		wantOK bool
	}{
		{"point", RatePoint, true},
		{"vertex", RateVertex, true},
		{"prim", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRate(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseRate(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
		if ok && got.String() != tt.in {
			t.Errorf("Rate.String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestSampler_Rates(t *testing.T) {
	data := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8}
	c := Corner{Point: 0, Offset: 2}

	point := NewSampler(Channel{Rate: RatePoint, TupleSize: 3, Data: data})
	if got := point.Vec3(c); got != [3]float32{0, 1, 2} {
		t.Errorf("point-rate sample = %v, want [0 1 2]", got)
	}

	vertex := NewSampler(Channel{Rate: RateVertex, TupleSize: 3, Data: data})
	if got := vertex.Vec3(c); got != [3]float32{6, 7, 8} {
		t.Errorf("vertex-rate sample = %v, want [6 7 8]", got)
	}
}

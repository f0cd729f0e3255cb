package catalog

import (
	_ "embed"
	"sync"
)

//go:embed sample.yaml
var sampleYAML []byte

var (
	sampleOnce sync.Once
	sample     *Catalog
)

// Sample returns the built-in Toronto catalog: six institutions, their
// exhibits, reciprocal benefits and the standard advisory tips. Each call
// returns a fresh copy that the caller may modify.
func Sample() *Catalog {
	sampleOnce.Do(func() {
		c, err := Parse(sampleYAML, FormatYAML)
		if err != nil {
			panic("catalog: embedded sample is invalid: " + err.Error())
		}
		sample = c
	})
	return sample.Clone()
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Institutions: make([]Institution, len(c.Institutions)),
		Exhibits:     make([]Exhibit, len(c.Exhibits)),
		Reciprocals:  append([]Reciprocal(nil), c.Reciprocals...),
		Tips:         append([]Tip(nil), c.Tips...),
	}
	for i, inst := range c.Institutions {
		inst.MembershipTiers = append([]string(nil), inst.MembershipTiers...)
		out.Institutions[i] = inst
	}
	for i, ex := range c.Exhibits {
		ex.Interests = append([]string(nil), ex.Interests...)
		out.Exhibits[i] = ex
	}
	return out
}

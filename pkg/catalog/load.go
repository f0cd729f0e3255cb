package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gosimple/slug"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	verrors "github.com/ryanphanna/Venture/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

// Format is a catalog file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", verrors.New(verrors.ErrCodeInvalidFormat,
		"catalog %s: unsupported extension (want .json, .yaml, .yml or .toml)", path)
}

// =============================================================================
// Loading
// =============================================================================

// Load reads, normalizes and validates a catalog file.
func Load(path string) (*Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, verrors.Wrap(verrors.ErrCodeFileNotFound, err, "catalog %s", path)
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, normalizes and validates a catalog. Unknown fields are
// rejected so that typos in hand-written catalogs surface early.
func Parse(data []byte, format Format) (*Catalog, error) {
	var c Catalog
	if err := decode(data, format, &c); err != nil {
		return nil, verrors.Wrap(verrors.ErrCodeInvalidCatalog, err, "decode %s catalog", format)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func decode(data []byte, format Format, c *Catalog) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(c)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(c)
	case FormatTOML:
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown keys: %v", undecoded)
		}
		return nil
	}
	return verrors.New(verrors.ErrCodeInvalidFormat, "unknown catalog format %q", format)
}

// Encode writes the catalog in the given format.
func Encode(c *Catalog, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(c); err != nil {
			return nil, err
		}
	default:
		return nil, verrors.New(verrors.ErrCodeInvalidFormat, "unknown catalog format %q", format)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// Normalization & validation
// =============================================================================

// Normalize fills in ids that a hand-written catalog left out by slugifying
// the entry's name or title, and lower-cases interest tags.
func (c *Catalog) Normalize() {
	for i := range c.Institutions {
		inst := &c.Institutions[i]
		if inst.ID == "" {
			inst.ID = slug.Make(inst.Name)
		}
	}
	for i := range c.Exhibits {
		ex := &c.Exhibits[i]
		if ex.ID == "" {
			ex.ID = slug.Make(ex.InstitutionID + " " + ex.Title)
		}
		for j, in := range ex.Interests {
			ex.Interests[j] = slug.Make(in)
		}
	}
	for i := range c.Reciprocals {
		rb := &c.Reciprocals[i]
		if rb.ID == "" {
			rb.ID = slug.Make(rb.FromInstitutionID + " " + rb.ToInstitutionID + " " + rb.MembershipTier)
		}
	}
	for i := range c.Tips {
		t := &c.Tips[i]
		if t.ID == "" {
			t.ID = "tip-" + slug.Make(t.Title)
		}
	}
}

// Validate checks referential integrity. Every problem is reported, not only
// the first; the combined error carries INVALID_CATALOG.
func (c *Catalog) Validate() error {
	var err error

	institutions := make(map[string]Institution, len(c.Institutions))
	for i, inst := range c.Institutions {
		if inst.ID == "" {
			err = multierr.Append(err, fmt.Errorf("institution %d: missing id and name", i))
			continue
		}
		if _, dup := institutions[inst.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("institution %q: duplicate id", inst.ID))
			continue
		}
		institutions[inst.ID] = inst
	}

	exhibits := make(map[string]struct{}, len(c.Exhibits))
	for i, ex := range c.Exhibits {
		if ex.ID == "" {
			err = multierr.Append(err, fmt.Errorf("exhibit %d: missing id and title", i))
			continue
		}
		if _, dup := exhibits[ex.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("exhibit %q: duplicate id", ex.ID))
		}
		exhibits[ex.ID] = struct{}{}
		if _, ok := institutions[ex.InstitutionID]; !ok {
			err = multierr.Append(err, fmt.Errorf("exhibit %q: unknown institution %q", ex.ID, ex.InstitutionID))
		}
		if !ex.StartDate.IsZero() && !ex.EndDate.IsZero() && ex.EndDate.Before(ex.StartDate) {
			err = multierr.Append(err, fmt.Errorf("exhibit %q: ends %s before it starts %s", ex.ID, ex.EndDate, ex.StartDate))
		}
		for _, in := range ex.Interests {
			if e := verrors.ValidateInterest(in); e != nil {
				err = multierr.Append(err, fmt.Errorf("exhibit %q: %s", ex.ID, verrors.UserMessage(e)))
			}
		}
	}

	reciprocals := make(map[string]struct{}, len(c.Reciprocals))
	for _, rb := range c.Reciprocals {
		if _, dup := reciprocals[rb.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("reciprocal %q: duplicate id", rb.ID))
		}
		reciprocals[rb.ID] = struct{}{}
		from, ok := institutions[rb.FromInstitutionID]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("reciprocal %q: unknown institution %q", rb.ID, rb.FromInstitutionID))
		} else if len(from.MembershipTiers) > 0 && !from.OffersTier(rb.MembershipTier) {
			err = multierr.Append(err, fmt.Errorf("reciprocal %q: %s has no %q tier", rb.ID, from.ID, rb.MembershipTier))
		}
		if _, ok := institutions[rb.ToInstitutionID]; !ok {
			err = multierr.Append(err, fmt.Errorf("reciprocal %q: unknown institution %q", rb.ID, rb.ToInstitutionID))
		}
	}

	tips := make(map[string]struct{}, len(c.Tips))
	for _, t := range c.Tips {
		if _, dup := tips[t.ID]; dup {
			err = multierr.Append(err, fmt.Errorf("tip %q: duplicate id", t.ID))
		}
		tips[t.ID] = struct{}{}
	}

	if err != nil {
		return verrors.Wrap(verrors.ErrCodeInvalidCatalog, err,
			"%d problem(s) in catalog", len(multierr.Errors(err)))
	}
	return nil
}

package cache

// Keyer builds cache keys.
type Keyer interface {
	// BoardKey returns the key of a board computed from the given catalog
	// and preferences hashes under opts.
	BoardKey(catalogHash, prefsHash string, opts BoardKeyOpts) string
}

// BoardKeyOpts are the options that change a computed board.
type BoardKeyOpts struct {
	Columns        int    `json:"columns"`
	Day            string `json:"day"`
	EndingSoonDays int    `json:"ending_soon_days"`
	RevisitAfter   string `json:"revisit_after"`
	PlanHash       string `json:"plan_hash,omitempty"`
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BoardKey implements Keyer.
func (DefaultKeyer) BoardKey(catalogHash, prefsHash string, opts BoardKeyOpts) string {
	return hashKey("board", catalogHash, prefsHash, opts)
}

// prefixKeyer namespaces another keyer's keys.
type prefixKeyer struct {
	inner  Keyer
	prefix string
}

// Prefixed returns a keyer that puts prefix in front of every key from inner,
// so deployments sharing one Redis do not read each other's boards. A nil
// inner means the DefaultKeyer.
func Prefixed(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return prefixKeyer{inner: inner, prefix: prefix}
}

func (k prefixKeyer) BoardKey(catalogHash, prefsHash string, opts BoardKeyOpts) string {
	return k.prefix + k.inner.BoardKey(catalogHash, prefsHash, opts)
}

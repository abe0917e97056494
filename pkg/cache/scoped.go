package cache

// ScopedKeyer prefixes every key produced by another Keyer. The API
// server scopes its keys with "api:" so a shared Redis instance keeps
// server entries apart from ones written by local CLI runs.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner so every key it produces carries prefix.
// A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) FetchKey(url string) string { return k.prefix + k.inner.FetchKey(url) }

func (k ScopedKeyer) TimingsKey(contentHash string) string {
	return k.prefix + k.inner.TimingsKey(contentHash)
}

package classifier

import (
	"sync/atomic"

	"github.com/nguyentantai21042004/notime/internal/models"
)

// Classifier maps a host to a URL kind using a provider → hosts whitelist.
// Matching is exact and case-sensitive; subdomains must be listed explicitly.
type Classifier struct {
	hosts atomic.Pointer[map[string]string]
}

// New creates a Classifier over whitelist.
func New(whitelist map[string][]string) *Classifier {
	c := &Classifier{}
	c.Reload(whitelist)
	return c
}

// Classify reports whether host is a whitelisted video host.
func (c *Classifier) Classify(host string) models.Kind {
	if _, ok := (*c.hosts.Load())[host]; ok {
		return models.KindVideo
	}
	return models.KindGeneric
}

// Provider returns the provider name owning host, if any.
func (c *Classifier) Provider(host string) (string, bool) {
	p, ok := (*c.hosts.Load())[host]
	return p, ok
}

// Reload swaps the whitelist. In-flight lookups keep the table they started with.
func (c *Classifier) Reload(whitelist map[string][]string) {
	hosts := make(map[string]string)
	for provider, list := range whitelist {
		for _, h := range list {
			hosts[h] = provider
		}
	}
	c.hosts.Store(&hosts)
}

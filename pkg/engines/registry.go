// Package engines registers the six decision engines under their wire
// names and constructs them on demand.
package engines

import (
	"fmt"
	"sort"

	"attestor-hq/attestor/pkg/attest"
	"attestor-hq/attestor/pkg/engines/credit"
	"attestor-hq/attestor/pkg/engines/govservice"
	"attestor-hq/attestor/pkg/engines/legal"
	"attestor-hq/attestor/pkg/engines/permit"
	"attestor-hq/attestor/pkg/engines/screening"
	"attestor-hq/attestor/pkg/engines/triage"
	"attestor-hq/attestor/pkg/policy"
)

// Constructor builds one domain engine bound to the given secret.
type Constructor func(secret policy.Secret, opts ...attest.Option) (*attest.Engine, error)

var registry = map[string]Constructor{
	triage.EngineName:     triage.New,
	credit.EngineName:     credit.New,
	screening.EngineName:  screening.New,
	permit.EngineName:     permit.New,
	legal.EngineName:      legal.New,
	govservice.EngineName: govservice.New,
}

// UnknownEngineError reports a lookup for an engine name that is not
// registered.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown engine %q", e.Name)
}

// New constructs the named engine. The name must be one of Names().
func New(name string, secret policy.Secret, opts ...attest.Option) (*attest.Engine, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return ctor(secret, opts...)
}

// NewAll constructs every registered engine, keyed by engine name.
func NewAll(secret policy.Secret, opts ...attest.Option) (map[string]*attest.Engine, error) {
	out := make(map[string]*attest.Engine, len(registry))
	for name := range registry {
		eng, err := New(name, secret, opts...)
		if err != nil {
			return nil, err
		}
		out[name] = eng
	}
	return out, nil
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

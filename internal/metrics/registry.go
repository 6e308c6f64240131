package metrics

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/masmgr/gitsect/config"
)

// Interface conformance checks.
var (
	_ Metric = (*churnMetric)(nil)
	_ Metric = (*couplingMetric)(nil)
	_ Metric = (*entropyMetric)(nil)
	_ Metric = (*ownershipMetric)(nil)
	_ Metric = (*hotspotMetric)(nil)
	_ Metric = (*knowledgeMetric)(nil)

	_ Result      = (*churnResult)(nil)
	_ Result      = (*couplingResult)(nil)
	_ Result      = (*entropyResult)(nil)
	_ Result      = (*ownershipResult)(nil)
	_ Result      = (*hotspotResult)(nil)
	_ Result      = (*knowledgeResult)(nil)
	_ TeamAdvisor = (*knowledgeResult)(nil)
)

// Registry holds the available metrics in presentation order.
type Registry struct {
	metrics []Metric
}

// NewRegistry builds the standard metric set tuned by cfg.
func NewRegistry(cfg config.MetricsConfig) *Registry {
	return &Registry{metrics: []Metric{
		newChurnMetric(cfg.Churn),
		newCouplingMetric(cfg.Coupling),
		newEntropyMetric(),
		newOwnershipMetric(),
		newHotspotMetric(cfg.Hotspot),
		newKnowledgeMetric(),
	}}
}

// All returns every registered metric.
func (r *Registry) All() []Metric { return r.metrics }

// IDs lists the registered metric identifiers.
func (r *Registry) IDs() []string {
	return lo.Map(r.metrics, func(m Metric, _ int) string { return m.ID() })
}

// Get returns the metric with the given id.
func (r *Registry) Get(id string) (Metric, bool) {
	for _, m := range r.metrics {
		if m.ID() == id {
			return m, true
		}
	}
	return nil, false
}

// Select resolves ids to metrics, keeping registry order. An empty ids
// list selects every metric; an unknown id is an error.
func (r *Registry) Select(ids []string) ([]Metric, error) {
	if len(ids) == 0 {
		return r.metrics, nil
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.Get(id); !ok {
			return nil, fmt.Errorf("unknown metric %q (known: %s)", id, strings.Join(r.IDs(), ", "))
		}
		want[id] = true
	}

	return lo.Filter(r.metrics, func(m Metric, _ int) bool { return want[m.ID()] }), nil
}

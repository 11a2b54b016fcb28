package registry

import "sort"

// Pair identifies a translation direction by (source, target) language codes.
// It is comparable and used directly as a map key.
type Pair struct {
	Source string
	Target string
}

// Descriptor describes where to obtain a model and how to identify it.
// Descriptors are immutable for the process lifetime.
type Descriptor struct {
	// ID uniquely names the model within the process and on disk.
	ID string
	// OriginURI is the artifact download location. Empty means the model
	// has no remote artifact (nothing to fetch before handle construction).
	OriginURI string
	// Multilingual marks a model that serves several targets from one source.
	Multilingual bool
}

// Entry is one resolvable direction with its descriptor, as listed by Pairs.
type Entry struct {
	Pair       Pair
	Descriptor Descriptor
}

// Registry resolves language pairs to model descriptors. It is built once at
// startup and safe for concurrent use without synchronization: all lookups
// are reads of maps that are never mutated after New returns.
type Registry struct {
	exact map[Pair]Descriptor

	// Grouping rule: pairs (groupSource, t) for t in groupTargets resolve to
	// groupModel when the exact lookup misses.
	groupSource  string
	groupTargets map[string]struct{}
	groupModel   Descriptor
	hasGroup     bool
}

// New builds a registry from exact per-pair entries.
func New(exact map[Pair]Descriptor) *Registry {
	m := make(map[Pair]Descriptor, len(exact))
	for p, d := range exact {
		m[p] = d
	}
	return &Registry{exact: m}
}

// WithGroup installs the multilingual grouping rule: any (source, target)
// with the given source and a target in targets resolves to model. Returns
// the registry for chaining during construction.
func (r *Registry) WithGroup(source string, targets []string, model Descriptor) *Registry {
	r.groupSource = source
	r.groupTargets = make(map[string]struct{}, len(targets))
	for _, t := range targets {
		r.groupTargets[t] = struct{}{}
	}
	model.Multilingual = true
	r.groupModel = model
	r.hasGroup = true
	return r
}

// Resolve maps a pair to its descriptor. The exact-pair entry wins; the
// multilingual grouping rule is tried only on a miss. ok is false for any
// pair covered by neither.
func (r *Registry) Resolve(p Pair) (Descriptor, bool) {
	if d, ok := r.exact[p]; ok {
		return d, true
	}
	if r.hasGroup && p.Source == r.groupSource {
		if _, ok := r.groupTargets[p.Target]; ok {
			return r.groupModel, true
		}
	}
	return Descriptor{}, false
}

// Pairs returns every resolvable direction, including the grouped
// multilingual expansions, sorted by (source, target) for stable output.
func (r *Registry) Pairs() []Entry {
	out := make([]Entry, 0, len(r.exact)+len(r.groupTargets))
	for p, d := range r.exact {
		out = append(out, Entry{Pair: p, Descriptor: d})
	}
	if r.hasGroup {
		for t := range r.groupTargets {
			out = append(out, Entry{Pair: Pair{Source: r.groupSource, Target: t}, Descriptor: r.groupModel})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pair.Source != out[j].Pair.Source {
			return out[i].Pair.Source < out[j].Pair.Source
		}
		return out[i].Pair.Target < out[j].Pair.Target
	})
	return out
}

// Len reports the number of resolvable directions.
func (r *Registry) Len() int {
	n := len(r.exact)
	if r.hasGroup {
		n += len(r.groupTargets)
	}
	return n
}

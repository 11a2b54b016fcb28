package engine

// Selection is the immutable outcome of the startup capability probe: the
// ranked list of usable backends and the single active one used for every
// load in this process run. Engine choice is process-wide; it is never
// revisited per request or per model.
type Selection struct {
	Active Kind
	Ranked []Kind
}

// Probe checks backend availability in priority order and returns the
// process selection. It is called exactly once at startup. The placeholder
// terminates the ranking and guarantees a non-empty result.
func Probe() Selection {
	var ranked []Kind
	if bergamotAvailable() {
		ranked = append(ranked, KindBergamot)
	}
	if ctranslate2Available() {
		ranked = append(ranked, KindCTranslate2)
	}
	ranked = append(ranked, KindPlaceholder)
	return Selection{Active: ranked[0], Ranked: ranked}
}

package registry

import "fmt"

// Artifact layout used by the default registry. One gzipped binary per pair,
// mirrored from the upstream model store.
const originBase = "https://storage.googleapis.com/bergamot-models-sandbox/prod"

func opusDescriptor(src, tgt string) Descriptor {
	pair := src + tgt
	return Descriptor{
		ID:        fmt.Sprintf("opus-mt-%s-%s", src, tgt),
		OriginURI: fmt.Sprintf("%s/%s/model.%s.intgemm.alphas.bin.gz", originBase, pair, pair),
	}
}

// multilingualTargets are the targets served by the shared en->mul model.
var multilingualTargets = []string{"ta", "te", "bn", "mr", "gu", "kn", "ml", "pa", "or"}

// Default builds the static production registry: English to and from the
// common European and Asian languages, a handful of cross pairs, and one
// multilingual model covering Indic targets from English.
func Default() *Registry {
	exact := make(map[Pair]Descriptor)
	add := func(src, tgt string) {
		exact[Pair{Source: src, Target: tgt}] = opusDescriptor(src, tgt)
	}

	// English to other languages.
	for _, tgt := range []string{"es", "de", "fr", "pt", "it", "nl", "ru", "pl", "cs", "et", "hi", "zh", "ja", "ko", "ar", "tr", "vi", "id", "he"} {
		add("en", tgt)
	}
	// Other languages to English.
	for _, src := range []string{"es", "de", "fr", "pt", "it", "nl", "ru", "pl", "cs", "et", "hi", "zh", "ja", "ko", "ar", "tr"} {
		add(src, "en")
	}
	// Cross-language pairs.
	for _, p := range [][2]string{{"es", "fr"}, {"fr", "es"}, {"es", "it"}, {"it", "es"}, {"es", "pt"}, {"pt", "es"}} {
		add(p[0], p[1])
	}

	mul := Descriptor{
		ID:        "opus-mt-en-mul",
		OriginURI: fmt.Sprintf("%s/enmul/model.enmul.intgemm.alphas.bin.gz", originBase),
	}
	return New(exact).WithGroup("en", multilingualTargets, mul)
}

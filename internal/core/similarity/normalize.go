package similarity

import (
	"sort"
	"strings"
)

// legalSuffixes are corporate-form designations stripped from partner names before comparison.
// Sorted longest first at init so "gmbh & co. kg" wins over "kg".
var legalSuffixes = []string{
	"gmbh & co. kg",
	"gmbh & co kg",
	"gmbh & co. kgaa",
	"ug (haftungsbeschränkt)",
	"gmbh",
	"mbh",
	"ug",
	"ag",
	"kgaa",
	"kg",
	"ohg",
	"gbr",
	"e.k.",
	"e.v.",
	"se",
	"ltd.",
	"ltd",
	"limited",
	"llc",
	"inc.",
	"inc",
	"corp.",
	"corp",
	"co.",
	"plc",
	"s.a.",
	"sarl",
	"b.v.",
	"bv",
}

func init() {
	sort.SliceStable(legalSuffixes, func(i, j int) bool {
		return len(legalSuffixes[i]) > len(legalSuffixes[j])
	})
}

// NormalizePartner returns the canonical comparison form of a vendor or counterpart name:
// lowercased, trimmed, inner whitespace collapsed and trailing legal-entity suffixes removed.
// A name that consists only of a suffix ("AG") is kept as is.
func NormalizePartner(name string) string {
	s := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	if s == "" {
		return ""
	}

	// Trailing dots are trimmed before every comparison, so each suffix is matched without its
	// final dot: "GmbH." and "e.V" normalize like "GmbH" and "e.V.".
	for {
		s = strings.TrimRight(s, " ,.-")
		stripped := false
		for _, suffix := range legalSuffixes {
			key := " " + strings.TrimSuffix(suffix, ".")
			if strings.HasSuffix(s, key) {
				s = strings.TrimSuffix(s, key)
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}

	return strings.TrimRight(s, " ,.-")
}

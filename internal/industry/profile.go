// Package industry maps business verticals to validation defaults. Profiles
// tune how strictly generated insights are filtered: fraud-heavy verticals
// accept qualitative signals at lower confidence, regulated verticals demand
// quantified evidence at a higher floor.
package industry

import (
	"sort"
	"strings"
)

// Profile bundles the validation thresholds and domain-term allowlist for
// one business vertical
type Profile struct {
	Name                  string
	MinConfidence         float64
	RequireQuantification bool
	FilterGenericImpacts  bool
	DomainTerms           []string
}

var adtechProfile = Profile{
	Name:                  "adtech",
	MinConfidence:         0.25, // fraud patterns can be low confidence but high value
	RequireQuantification: false,
	FilterGenericImpacts:  true,
	DomainTerms: []string{
		"botnet", "proxy", "residential", "commercial", "ip", "device pool",
		"household cluster", "cross-device", "attribution", "inventory",
		"targeting", "fraud", "ivt", "invalid traffic", "ad exchange",
		"dma", "publisher", "site", "app", "phid", "component",
	},
}

var fintechProfile = Profile{
	Name:                  "fintech",
	MinConfidence:         0.4, // financial decisions need certainty
	RequireQuantification: true,
	FilterGenericImpacts:  true,
	DomainTerms: []string{
		"aml", "kyc", "sanctions", "money laundering", "synthetic identity",
		"account takeover", "mule", "beneficial ownership", "exposure",
		"concentration risk", "contagion", "compliance",
	},
}

var socialProfile = Profile{
	Name:                  "social",
	MinConfidence:         0.3,
	RequireQuantification: true,
	FilterGenericImpacts:  true,
	DomainTerms: []string{
		"community", "engagement", "influence", "reach", "viral",
		"bot network", "coordinated behavior", "echo chamber",
		"modularity", "bridge", "influencer",
	},
}

var genericProfile = Profile{
	Name:                  "generic",
	MinConfidence:         0.3,
	RequireQuantification: true,
	FilterGenericImpacts:  true,
}

var profiles = map[string]Profile{
	"adtech":              adtechProfile,
	"advertising":         adtechProfile,
	"identity_resolution": adtechProfile,
	"fintech":             fintechProfile,
	"financial_services":  fintechProfile,
	"banking":             fintechProfile,
	"social":              socialProfile,
	"social_network":      socialProfile,
	"community":           socialProfile,
	"generic":             genericProfile,
	"default":             genericProfile,
}

// Lookup returns the profile for an industry identifier. Unrecognized
// identifiers fall back to the generic profile.
func Lookup(id string) Profile {
	if p, ok := profiles[strings.ToLower(strings.TrimSpace(id))]; ok {
		return p
	}
	return genericProfile
}

// Supported returns the recognized industry identifiers, including aliases
func Supported() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

package catalog

import "regexp"

// Registered clause category labels.
const (
	CategoryTermsAndConditions = "Terms and Conditions"
	CategoryPaymentTerms       = "Payment Terms"
	CategoryTermination        = "Termination"
	CategoryLiability          = "Liability"
	CategoryConfidentiality    = "Confidentiality"
	CategoryIntellectualProp   = "Intellectual Property"
	CategoryGoverningLaw       = "Governing Law"
	CategoryDisputeResolution  = "Dispute Resolution"
	CategoryForceMajeure       = "Force Majeure"
	CategoryAmendments         = "Amendments"
	CategoryDefinitions        = "Definitions"
	CategoryRepsAndWarranties  = "Representations and Warranties"
)

// CategoryPattern is one compiled keyword/phrase matcher belonging to a
// single category. Weight contributes to the category's acceptance score
// when the pattern matches anywhere in a segment's content.
type CategoryPattern struct {
	Expr   string
	Weight float64
	re     *regexp.Regexp
}

// Matches reports whether the pattern occurs anywhere in content.
// Matching is case-insensitive (compiled with (?i)).
func (p CategoryPattern) Matches(content string) bool {
	return p.re.MatchString(content)
}

type categorySpec struct {
	expr   string
	weight float64
}

// Pattern weights: exact multi-word phrases score 1.5, direct keywords
// 1.0, weak or generic terms 0.5. With the default acceptance threshold
// of 1.0, one direct hit or two weak hits classify a segment. The values
// are a pinned baseline, not a derivation; tune via tests.
const (
	weightPhrase  = 1.5
	weightKeyword = 1.0
	weightWeak    = 0.5
)

var categorySpecs = map[string][]categorySpec{
	CategoryTermsAndConditions: {
		{`terms?\s+and\s+conditions?`, weightPhrase},
		{`general\s+terms?`, weightPhrase},
		{`conditions?\s+of\s+use`, weightPhrase},
		{`agreement\s+terms?`, weightPhrase},
	},
	CategoryPaymentTerms: {
		{`payment\s+terms?`, weightPhrase},
		{`payment\s+obligations?`, weightPhrase},
		{`fees?\s+and\s+charges?`, weightPhrase},
		{`\bpayments?\b`, weightKeyword},
		{`\binvoices?\b`, weightKeyword},
		{`\bbilling\b`, weightKeyword},
		{`\bcompensation\b`, weightKeyword},
	},
	CategoryTermination: {
		{`end\s+of\s+(?:the\s+)?agreement`, weightPhrase},
		{`terminat(?:e|es|ed|ion)`, weightKeyword},
		{`expir(?:ation|es|ed|y)`, weightKeyword},
		{`\bdissolution\b`, weightKeyword},
	},
	CategoryLiability: {
		{`limitation\s+of\s+liability`, weightPhrase},
		{`hold\s+harmless`, weightPhrase},
		{`liab(?:le|ility|ilities)`, weightKeyword},
		{`indemnif(?:y|ies|ied|ication)`, weightKeyword},
		{`\bdamages?\b`, weightKeyword},
		{`\bharm\b`, weightWeak},
		{`\bloss(?:es)?\b`, weightWeak},
	},
	CategoryConfidentiality: {
		{`proprietary\s+information`, weightPhrase},
		{`trade\s+secrets?`, weightPhrase},
		{`confidential(?:ity)?`, weightKeyword},
		{`non-?disclosure`, weightKeyword},
		{`\bprivacy\b`, weightWeak},
	},
	CategoryIntellectualProp: {
		{`intellectual\s+property`, weightPhrase},
		{`proprietary\s+rights?`, weightPhrase},
		{`\bcopyrights?\b`, weightKeyword},
		{`\btrademarks?\b`, weightKeyword},
		{`\bpatents?\b`, weightKeyword},
		{`\bownership\b`, weightWeak},
	},
	CategoryGoverningLaw: {
		{`governing\s+law`, weightPhrase},
		{`applicable\s+law`, weightPhrase},
		{`choice\s+of\s+law`, weightPhrase},
		{`\bjurisdiction\b`, weightKeyword},
		{`\bvenue\b`, weightWeak},
	},
	CategoryDisputeResolution: {
		{`dispute\s+resolution`, weightPhrase},
		{`legal\s+proceedings?`, weightPhrase},
		{`\barbitration\b`, weightKeyword},
		{`\bmediation\b`, weightKeyword},
		{`\blitigation\b`, weightKeyword},
		{`\bdisputes?\b`, weightWeak},
	},
	CategoryForceMajeure: {
		{`force\s+majeure`, weightPhrase},
		{`act\s+of\s+god`, weightPhrase},
		{`unforeseeable\s+circumstances?`, weightPhrase},
		{`beyond\s+(?:its\s+|their\s+)?(?:reasonable\s+)?control`, weightPhrase},
	},
	CategoryAmendments: {
		{`changes?\s+to\s+(?:this\s+)?agreement`, weightPhrase},
		{`\bamend(?:ed|ment|ments)?\b`, weightKeyword},
		{`\bmodif(?:y|ied|ication|ications)\b`, weightKeyword},
		{`\bvariation\b`, weightWeak},
	},
	CategoryDefinitions: {
		{`shall\s+(?:have\s+the\s+)?mean(?:ing)?`, weightPhrase},
		{`\bdefinitions?\b`, weightKeyword},
		{`\binterpretation\b`, weightKeyword},
		{`\bdefined\s+terms?\b`, weightKeyword},
		{`\bmeaning\b`, weightWeak},
	},
	CategoryRepsAndWarranties: {
		{`representations?\s+and\s+warrant(?:y|ies)`, weightPhrase},
		{`warrant(?:s|y|ies|ed)`, weightKeyword},
		{`represent(?:s|ation|ations)`, weightKeyword},
		{`\bguarantees?\b`, weightKeyword},
		{`\bassurances?\b`, weightWeak},
	},
}

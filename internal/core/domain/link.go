package domain

import "fmt"

// LinkReasonKind classifies why two records are connected.
// Precedence when multiple kinds could apply:
// direct reference > keyword match > condition pathway.
type LinkReasonKind int

const (
	// LinkReasonGeneric is the fallback when no specific reason is known,
	// including lookups for records that are missing on either side.
	LinkReasonGeneric LinkReasonKind = iota

	// LinkReasonDirect is an explicit authorial cross-reference.
	LinkReasonDirect

	// LinkReasonKeyword is a free-text containment match.
	LinkReasonKeyword

	// LinkReasonConditionPathway is a transitive link mediated by a shared
	// condition. Condition carries the mediator's name when known.
	LinkReasonConditionPathway
)

// LinkReason explains a single edge in the relationship graph.
// The display string is derived from the tag, never parsed back out of it.
type LinkReason struct {
	// Kind is the reason classification.
	Kind LinkReasonKind

	// Condition is the mediating condition's display name for
	// LinkReasonConditionPathway, empty otherwise.
	Condition string
}

// DirectReference returns a direct-reference reason.
func DirectReference() LinkReason {
	return LinkReason{Kind: LinkReasonDirect}
}

// KeywordMatch returns a keyword-match reason.
func KeywordMatch() LinkReason {
	return LinkReason{Kind: LinkReasonKeyword}
}

// ConditionPathway returns a condition-pathway reason. The mediator name is
// optional; when present the rendered string names it.
func ConditionPathway(conditionName string) LinkReason {
	return LinkReason{Kind: LinkReasonConditionPathway, Condition: conditionName}
}

// GenericReason returns the fallback reason.
func GenericReason() LinkReason {
	return LinkReason{Kind: LinkReasonGeneric}
}

// String renders the human-readable reason shown in "related" panels.
func (r LinkReason) String() string {
	switch r.Kind {
	case LinkReasonDirect:
		return "Direct reference"
	case LinkReasonKeyword:
		return "Keyword match"
	case LinkReasonConditionPathway:
		if r.Condition != "" {
			return fmt.Sprintf("Condition pathway via %s", r.Condition)
		}
		return "Condition pathway"
	}
	return "Related content"
}

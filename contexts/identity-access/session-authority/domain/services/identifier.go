package services

import (
	"strings"

	"github.com/google/uuid"
)

// PolicyIdentifierKind tags the three exclusive shapes a policy reference
// can take on the wire.
type PolicyIdentifierKind int

const (
	// PolicyIdentifierID is a canonical UUID policy id.
	PolicyIdentifierID PolicyIdentifierKind = iota
	// PolicyIdentifierARN carries the policy name as the trailing path
	// segment of an ARN.
	PolicyIdentifierARN
	// PolicyIdentifierName is a literal policy name.
	PolicyIdentifierName
)

// PolicyIdentifier is the resolved, tagged form of a raw policy reference.
// Value holds the id for the UUID branch and the name for the other two.
type PolicyIdentifier struct {
	Kind  PolicyIdentifierKind
	Value string
}

// ResolvePolicyIdentifier classifies a raw reference into exactly one of
// the UUID, ARN, or literal-name branches.
func ResolvePolicyIdentifier(raw string) PolicyIdentifier {
	trimmed := strings.TrimSpace(raw)

	if err := uuid.Validate(trimmed); err == nil {
		return PolicyIdentifier{Kind: PolicyIdentifierID, Value: trimmed}
	}

	if strings.HasPrefix(trimmed, "arn:") {
		segment := trimmed
		if idx := strings.LastIndex(segment, "/"); idx >= 0 {
			segment = segment[idx+1:]
		} else if idx := strings.LastIndex(segment, ":"); idx >= 0 {
			segment = segment[idx+1:]
		}
		return PolicyIdentifier{Kind: PolicyIdentifierARN, Value: segment}
	}

	return PolicyIdentifier{Kind: PolicyIdentifierName, Value: trimmed}
}

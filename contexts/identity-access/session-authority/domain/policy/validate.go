package policy

import "fmt"

// ValidationResult reports document validity together with every defect
// found. Malformed structure never raises an error: callers always receive
// the complete defect list.
type ValidationResult struct {
	Valid   bool     `json:"valid"`
	Defects []string `json:"defects"`
}

// ValidateTrustDocument checks a role trust document structurally:
// the version literal, the presence of Effect/Principal/Action on every
// statement, and that the document grants sts:AssumeRole.
func ValidateTrustDocument(doc Document) ValidationResult {
	var defects []string

	if doc.Version != CurrentVersion {
		defects = append(defects, fmt.Sprintf("version must be %q, got %q", CurrentVersion, doc.Version))
	}
	if len(doc.Statement) == 0 {
		defects = append(defects, "document must contain at least one statement")
	}

	for i := range doc.Statement {
		defects = append(defects, validateTrustStatement(i, &doc.Statement[i])...)
	}

	return ValidationResult{Valid: len(defects) == 0, Defects: defects}
}

func validateTrustStatement(index int, statement *Statement) []string {
	var defects []string

	switch statement.Effect {
	case EffectAllow, EffectDeny:
	case "":
		defects = append(defects, fmt.Sprintf("statement %d: Effect is required", index))
	default:
		defects = append(defects, fmt.Sprintf("statement %d: Effect must be Allow or Deny, got %q", index, statement.Effect))
	}

	if statement.Principal == nil {
		defects = append(defects, fmt.Sprintf("statement %d: Principal is required", index))
	} else if statement.Principal.Kind == PrincipalInvalid {
		defects = append(defects, fmt.Sprintf("statement %d: Principal has an unrecognised shape", index))
	}

	if len(statement.Action) == 0 {
		defects = append(defects, fmt.Sprintf("statement %d: Action is required", index))
	} else if !statement.Action.Contains(AssumeRoleAction) {
		defects = append(defects, fmt.Sprintf("statement %d: Action must include %q", index, AssumeRoleAction))
	}

	return defects
}

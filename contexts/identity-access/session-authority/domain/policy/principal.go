package policy

import "encoding/json"

// PrincipalKind tags the four shapes a Principal clause can take.
type PrincipalKind int

const (
	// PrincipalInvalid marks a clause whose JSON shape was not recognised.
	PrincipalInvalid PrincipalKind = iota
	// PrincipalWildcard is the bare "*" clause matching any principal.
	PrincipalWildcard
	// PrincipalName is a single bare string matched by equality.
	PrincipalName
	// PrincipalList is a list of names matched if any element matches.
	PrincipalList
	// PrincipalRecord is the structured {"Service": ...} / {"AWS": ...} form.
	PrincipalRecord
)

// Principal is the sum type behind a statement's Principal clause:
// Wildcard | Name | List | ServiceOrAccountRecord.
type Principal struct {
	Kind    PrincipalKind
	Name    string
	Names   []string
	Service []string
	AWS     []string
}

type principalRecord struct {
	Service StringList `json:"Service,omitempty"`
	AWS     StringList `json:"AWS,omitempty"`
}

func (p *Principal) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		if name == "*" {
			*p = Principal{Kind: PrincipalWildcard}
		} else {
			*p = Principal{Kind: PrincipalName, Name: name}
		}
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*p = Principal{Kind: PrincipalList, Names: names}
		return nil
	}

	var record principalRecord
	if err := json.Unmarshal(data, &record); err == nil && (len(record.Service) > 0 || len(record.AWS) > 0) {
		*p = Principal{Kind: PrincipalRecord, Service: record.Service, AWS: record.AWS}
		return nil
	}

	// Unknown shape. Keep the document parseable; validation reports it.
	*p = Principal{Kind: PrincipalInvalid}
	return nil
}

func (p Principal) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PrincipalWildcard:
		return json.Marshal("*")
	case PrincipalName:
		return json.Marshal(p.Name)
	case PrincipalList:
		return json.Marshal(p.Names)
	case PrincipalRecord:
		return json.Marshal(principalRecord{
			Service: StringList(p.Service),
			AWS:     StringList(p.AWS),
		})
	default:
		return json.Marshal(nil)
	}
}

// Match reports whether the clause matches the candidate principal.
// Priority: wildcard matches anything, a bare name matches by equality,
// a list matches if any element matches, a record matches if its Service
// or AWS member matches.
func (p *Principal) Match(candidate string) bool {
	if p == nil {
		// Statement is not principal-constrained (identity policy form).
		return true
	}
	switch p.Kind {
	case PrincipalWildcard:
		return true
	case PrincipalName:
		return p.Name == candidate
	case PrincipalList:
		return matchAny(p.Names, candidate)
	case PrincipalRecord:
		return matchAny(p.Service, candidate) || matchAny(p.AWS, candidate)
	default:
		return false
	}
}

func matchAny(names []string, candidate string) bool {
	for _, name := range names {
		if name == "*" || name == candidate {
			return true
		}
	}
	return false
}

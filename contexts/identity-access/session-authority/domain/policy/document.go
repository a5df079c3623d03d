package policy

import "encoding/json"

// CurrentVersion is the only document version accepted by trust validation.
const CurrentVersion = "2012-10-17"

// AssumeRoleAction must be granted by every trust document.
const AssumeRoleAction = "sts:AssumeRole"

// Effect is the outcome a statement contributes when it matches.
type Effect string

const (
	EffectAllow Effect = "Allow"
	EffectDeny  Effect = "Deny"
)

// Decision is the result of evaluating a set of documents.
type Decision string

const (
	DecisionAllow        Decision = "Allow"
	DecisionDeny         Decision = "Deny"
	DecisionImplicitDeny Decision = "ImplicitDeny"
)

// Document is a strongly typed trust or permission policy document.
type Document struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is one grant/deny clause inside a document.
type Statement struct {
	Sid       string                     `json:"Sid,omitempty"`
	Effect    Effect                     `json:"Effect,omitempty"`
	Principal *Principal                 `json:"Principal,omitempty"`
	Action    StringList                 `json:"Action,omitempty"`
	Resource  StringList                 `json:"Resource,omitempty"`
	Condition map[string]json.RawMessage `json:"Condition,omitempty"`
}

// StringList accepts either a bare JSON string or a list of strings.
// Policy authors use both forms interchangeably for Action and Resource.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		// Malformed clause. Leave the list empty so validation can report
		// the defect instead of aborting the whole document parse.
		*l = nil
		return nil
	}
	*l = StringList(many)
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if len(l) == 1 {
		return json.Marshal(l[0])
	}
	return json.Marshal([]string(l))
}

// Contains reports whether the list carries the exact value.
func (l StringList) Contains(value string) bool {
	for _, item := range l {
		if item == value {
			return true
		}
	}
	return false
}

// Parse decodes raw JSON into a Document. Structural defects inside
// Principal/Action/Resource clauses do not fail the parse; they surface
// later through validation.
func Parse(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

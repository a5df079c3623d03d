package policy

import (
	"strings"
	"testing"
)

func TestParseAcceptsStringAndListForms(t *testing.T) {
	raw := []byte(`{
		"Version": "2012-10-17",
		"Statement": [
			{"Effect": "Allow", "Principal": "*", "Action": "sts:AssumeRole"},
			{"Effect": "Allow", "Principal": ["deployer", "auditor"], "Action": ["sts:AssumeRole", "sts:TagSession"]}
		]
	}`)

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(doc.Statement) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(doc.Statement))
	}
	if doc.Statement[0].Principal.Kind != PrincipalWildcard {
		t.Fatalf("expected wildcard principal")
	}
	if doc.Statement[1].Principal.Kind != PrincipalList {
		t.Fatalf("expected list principal")
	}
	if len(doc.Statement[1].Action) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(doc.Statement[1].Action))
	}
}

func TestPrincipalMatchShapes(t *testing.T) {
	cases := []struct {
		name      string
		principal Principal
		candidate string
		want      bool
	}{
		{"wildcard matches anyone", Principal{Kind: PrincipalWildcard}, "anyone", true},
		{"name equality", Principal{Kind: PrincipalName, Name: "deployer"}, "deployer", true},
		{"name mismatch", Principal{Kind: PrincipalName, Name: "deployer"}, "auditor", false},
		{"list any element", Principal{Kind: PrincipalList, Names: []string{"a", "b"}}, "b", true},
		{"list wildcard element", Principal{Kind: PrincipalList, Names: []string{"*"}}, "anyone", true},
		{"record service member", Principal{Kind: PrincipalRecord, Service: []string{"ec2", "lambda"}}, "lambda", true},
		{"record aws member", Principal{Kind: PrincipalRecord, AWS: []string{"user-1"}}, "user-1", true},
		{"record miss", Principal{Kind: PrincipalRecord, Service: []string{"ec2"}}, "user-1", false},
		{"invalid never matches", Principal{Kind: PrincipalInvalid}, "anyone", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.principal.Match(tc.candidate); got != tc.want {
				t.Fatalf("match(%q) = %v, want %v", tc.candidate, got, tc.want)
			}
		})
	}
}

func TestPrincipalNilMeansUnconstrained(t *testing.T) {
	var p *Principal
	if !p.Match("anyone") {
		t.Fatalf("nil principal must match every candidate")
	}
}

func TestEvaluateDenyWinsRegardlessOfOrder(t *testing.T) {
	allow := Statement{
		Effect:    EffectAllow,
		Principal: &Principal{Kind: PrincipalWildcard},
		Action:    StringList{"sts:AssumeRole"},
	}
	deny := Statement{
		Effect:    EffectDeny,
		Principal: &Principal{Kind: PrincipalName, Name: "deployer"},
		Action:    StringList{"sts:AssumeRole"},
	}
	input := EvaluationInput{Principal: "deployer", Action: "sts:AssumeRole"}

	forward := Evaluate([]Document{{Statement: []Statement{allow, deny}}}, input)
	reverse := Evaluate([]Document{{Statement: []Statement{deny, allow}}}, input)
	if forward != DecisionDeny || reverse != DecisionDeny {
		t.Fatalf("deny must win in both orders, got %s and %s", forward, reverse)
	}
}

func TestEvaluateImplicitDenyWithoutMatch(t *testing.T) {
	doc := Document{Statement: []Statement{{
		Effect:    EffectAllow,
		Principal: &Principal{Kind: PrincipalName, Name: "deployer"},
		Action:    StringList{"sts:AssumeRole"},
	}}}

	decision := Evaluate([]Document{doc}, EvaluationInput{Principal: "auditor", Action: "sts:AssumeRole"})
	if decision != DecisionImplicitDeny {
		t.Fatalf("expected implicit deny, got %s", decision)
	}
}

func TestActionMatchesServiceWildcard(t *testing.T) {
	patterns := StringList{"sts:*"}
	if !actionMatches(patterns, "sts:AssumeRole") {
		t.Fatalf("service wildcard must match actions of the service")
	}
	if actionMatches(patterns, "iam:CreateRole") {
		t.Fatalf("service wildcard must not cross services")
	}
	if !actionMatches(StringList{"*"}, "iam:CreateRole") {
		t.Fatalf("global wildcard must match everything")
	}
}

func TestResourceMatchesWildcardPatterns(t *testing.T) {
	if !resourceMatches(nil, "anything") {
		t.Fatalf("empty resource list must match (trust statement form)")
	}
	if !resourceMatches(StringList{"arn:aegis:s3:::bucket/*"}, "arn:aegis:s3:::bucket/key") {
		t.Fatalf("trailing wildcard must match nested key")
	}
	if resourceMatches(StringList{"arn:aegis:s3:::bucket/*"}, "arn:aegis:s3:::other/key") {
		t.Fatalf("wildcard prefix must still anchor")
	}
}

func TestValidateTrustDocumentCollectsAllDefects(t *testing.T) {
	doc, err := Parse([]byte(`{
		"Version": "2011-01-01",
		"Statement": [
			{"Principal": "*", "Action": "sts:AssumeRole"},
			{"Effect": "Allow", "Action": "sts:AssumeRole"},
			{"Effect": "Allow", "Principal": "*", "Action": "iam:CreateRole"}
		]
	}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	result := ValidateTrustDocument(doc)
	if result.Valid {
		t.Fatalf("expected invalid document")
	}
	if len(result.Defects) != 4 {
		t.Fatalf("expected 4 defects, got %d: %v", len(result.Defects), result.Defects)
	}
	for _, want := range []string{"version must be", "statement 0: Effect is required", "statement 1: Principal is required", "statement 2: Action must include"} {
		found := false
		for _, defect := range result.Defects {
			if strings.Contains(defect, want) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing defect %q in %v", want, result.Defects)
		}
	}
}

func TestValidateTrustDocumentAcceptsCanonicalForm(t *testing.T) {
	doc, err := Parse([]byte(`{
		"Version": "2012-10-17",
		"Statement": [{"Effect": "Allow", "Principal": {"AWS": ["user-1"]}, "Action": ["sts:AssumeRole"]}]
	}`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if result := ValidateTrustDocument(doc); !result.Valid {
		t.Fatalf("expected valid document, defects: %v", result.Defects)
	}
}

package services

import "testing"

func TestResolvePolicyIdentifierBranches(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		kind  PolicyIdentifierKind
		value string
	}{
		{"uuid", "6e1bb6a0-6f3e-4c7c-9df9-0f2b3c9a8d11", PolicyIdentifierID, "6e1bb6a0-6f3e-4c7c-9df9-0f2b3c9a8d11"},
		{"arn with slash", "arn:aegis:iam::acct-1:policy/read-only", PolicyIdentifierARN, "read-only"},
		{"arn with colon tail", "arn:aegis:iam::acct-1:read-only", PolicyIdentifierARN, "read-only"},
		{"literal name", "read-only", PolicyIdentifierName, "read-only"},
		{"trims whitespace", "  read-only  ", PolicyIdentifierName, "read-only"},
		{"uuid-ish but invalid falls to name", "6e1bb6a0-6f3e-4c7c-9df9", PolicyIdentifierName, "6e1bb6a0-6f3e-4c7c-9df9"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolvePolicyIdentifier(tc.raw)
			if got.Kind != tc.kind {
				t.Fatalf("kind = %d, want %d", got.Kind, tc.kind)
			}
			if got.Value != tc.value {
				t.Fatalf("value = %q, want %q", got.Value, tc.value)
			}
		})
	}
}

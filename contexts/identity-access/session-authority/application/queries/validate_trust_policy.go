package queries

import (
	"context"
	"log/slog"

	"aegis/contexts/identity-access/session-authority/domain/policy"
)

// ValidateTrustPolicyUseCase runs structural trust-document validation.
// It never fails on malformed input: the result always carries the full
// defect list.
type ValidateTrustPolicyUseCase struct {
	Logger *slog.Logger
}

func (u ValidateTrustPolicyUseCase) Execute(_ context.Context, raw []byte) policy.ValidationResult {
	if len(raw) == 0 {
		return policy.ValidationResult{Valid: false, Defects: []string{"document is empty"}}
	}

	doc, err := policy.Parse(raw)
	if err != nil {
		return policy.ValidationResult{Valid: false, Defects: []string{"document is not valid JSON"}}
	}
	return policy.ValidateTrustDocument(doc)
}

package unit

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	sessionauthority "aegis/contexts/identity-access/session-authority"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	httptransport "aegis/contexts/identity-access/session-authority/transport/http"
)

func trustPolicyFor(principal string) json.RawMessage {
	return json.RawMessage(`{
		"Version": "2012-10-17",
		"Statement": [{"Effect": "Allow", "Principal": "` + principal + `", "Action": "sts:AssumeRole"}]
	}`)
}

func createRole(t *testing.T, module sessionauthority.Module, accountID, name, principal string) httptransport.RoleDTO {
	t.Helper()
	role, err := module.Handler.CreateRoleHandler(context.Background(), httptransport.CreateRoleRequest{
		AccountID:   accountID,
		Name:        name,
		TrustPolicy: trustPolicyFor(principal),
	})
	if err != nil {
		t.Fatalf("create role failed: %v", err)
	}
	return role
}

func TestCreateRoleRejectsInvalidTrustPolicy(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)

	_, err := module.Handler.CreateRoleHandler(context.Background(), httptransport.CreateRoleRequest{
		AccountID:   "acct-1",
		Name:        "deployer",
		TrustPolicy: json.RawMessage(`{"Version": "2011-01-01", "Statement": []}`),
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCreateRoleNameUniquePerAccount(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)

	createRole(t, module, "acct-1", "deployer", "*")

	_, err := module.Handler.CreateRoleHandler(context.Background(), httptransport.CreateRoleRequest{
		AccountID:   "acct-1",
		Name:        "deployer",
		TrustPolicy: trustPolicyFor("*"),
	})
	if !errors.Is(err, domainerrors.ErrConflict) {
		t.Fatalf("expected ErrConflict in same account, got %v", err)
	}

	// The same name in another account is a different role.
	createRole(t, module, "acct-2", "deployer", "*")
}

func TestAssumeRoleIssuesCredentialTriad(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "user-1")

	resp, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:          "user-1",
		SessionName:     "release",
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("assume role failed: %v", err)
	}

	creds := resp.Credentials
	if !strings.HasPrefix(creds.AccessKeyID, "AGIA") {
		t.Fatalf("access key id %q missing AGIA prefix", creds.AccessKeyID)
	}
	if creds.SecretAccessKey == "" || creds.SessionToken == "" {
		t.Fatalf("expected full credential triad")
	}
	if got := resp.Session.ExpiresAt.Sub(resp.Session.AssumedAt); got != 1800*time.Second {
		t.Fatalf("session lifetime = %v, want 1800s", got)
	}
	if !creds.Expiration.Equal(resp.Session.ExpiresAt) {
		t.Fatalf("credential expiration must match session expiry")
	}

	// The plaintext triad appears only in the assume-role response.
	session, err := module.Handler.GetSessionHandler(context.Background(), resp.Session.SessionID)
	if err != nil {
		t.Fatalf("get session failed: %v", err)
	}
	if !session.IsActive {
		t.Fatalf("expected active session")
	}
}

func TestAssumeRoleDeniedByTrustPolicy(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "user-1")

	_, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:      "user-2",
		SessionName: "release",
	})
	if !errors.Is(err, domainerrors.ErrAssumeRoleDenied) {
		t.Fatalf("expected ErrAssumeRoleDenied, got %v", err)
	}
}

func TestAssumeRoleDurationBounds(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	_, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:          "user-1",
		SessionName:     "too-long",
		DurationSeconds: role.MaxSessionDuration + 1,
	})
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected ErrValidation above max duration, got %v", err)
	}

	// Omitted duration falls back to the role maximum.
	resp, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:      "user-1",
		SessionName: "default",
	})
	if err != nil {
		t.Fatalf("assume role failed: %v", err)
	}
	if got := resp.Session.ExpiresAt.Sub(resp.Session.AssumedAt); got != time.Duration(role.MaxSessionDuration)*time.Second {
		t.Fatalf("default lifetime = %v, want %ds", got, role.MaxSessionDuration)
	}
}

func TestRevokeSessionIsNotIdempotent(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	resp, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:      "user-1",
		SessionName: "release",
	})
	if err != nil {
		t.Fatalf("assume role failed: %v", err)
	}

	if err := module.Handler.RevokeSessionHandler(context.Background(), resp.Session.SessionID); err != nil {
		t.Fatalf("first revoke failed: %v", err)
	}
	err = module.Handler.RevokeSessionHandler(context.Background(), resp.Session.SessionID)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("second revoke must report NotFound, got %v", err)
	}
}

func TestRevokedSessionLeavesActiveList(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "user-1")

	resp, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:          "user-1",
		SessionName:     "release",
		DurationSeconds: 1800,
	})
	if err != nil {
		t.Fatalf("assume role failed: %v", err)
	}

	active, err := module.Handler.ListSessionsHandler(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("list sessions failed: %v", err)
	}
	if len(active.Sessions) != 1 {
		t.Fatalf("expected 1 active session, got %d", len(active.Sessions))
	}
	if active.Sessions[0].SessionID != resp.Session.SessionID {
		t.Fatalf("active list has %q, want %q", active.Sessions[0].SessionID, resp.Session.SessionID)
	}

	if err := module.Handler.RevokeSessionHandler(context.Background(), resp.Session.SessionID); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	active, err = module.Handler.ListSessionsHandler(context.Background(), "acct-1")
	if err != nil {
		t.Fatalf("list sessions after revoke failed: %v", err)
	}
	if len(active.Sessions) != 0 {
		t.Fatalf("revoked session must leave the active list, got %d sessions", len(active.Sessions))
	}
}

func TestCleanupSweepsExpiredSessionsOnce(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	resp, err := module.Handler.AssumeRoleHandler(context.Background(), role.RoleID, httptransport.AssumeRoleRequest{
		UserID:          "user-1",
		SessionName:     "short",
		DurationSeconds: 900,
	})
	if err != nil {
		t.Fatalf("assume role failed: %v", err)
	}

	module.Store.Advance(time.Hour)

	first, err := module.Handler.CleanupSessionsHandler(context.Background())
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if first.Swept != 1 {
		t.Fatalf("expected 1 swept session, got %d", first.Swept)
	}
	second, err := module.Handler.CleanupSessionsHandler(context.Background())
	if err != nil {
		t.Fatalf("second cleanup failed: %v", err)
	}
	if second.Swept != 0 {
		t.Fatalf("second sweep must find nothing, got %d", second.Swept)
	}

	_, err = module.Handler.GetSessionHandler(context.Background(), resp.Session.SessionID)
	if !errors.Is(err, domainerrors.ErrExpired) {
		t.Fatalf("expected ErrExpired after sweep, got %v", err)
	}
}

func TestAttachPolicyByIDArnAndName(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	policy, err := module.Handler.CreatePolicyHandler(context.Background(), httptransport.CreatePolicyRequest{
		AccountID: "acct-1",
		Name:      "read-only",
		Document: json.RawMessage(`{
			"Version": "2012-10-17",
			"Statement": [{"Effect": "Allow", "Action": "s3:GetObject", "Resource": "*"}]
		}`),
	})
	if err != nil {
		t.Fatalf("create policy failed: %v", err)
	}

	for _, identifier := range []string{
		policy.PolicyID,
		"arn:aegis:iam::acct-1:policy/read-only",
		"read-only",
	} {
		attached, err := module.Handler.AttachPolicyHandler(context.Background(), role.RoleID, httptransport.AttachPolicyRequest{
			PolicyIdentifier: identifier,
		})
		if err != nil {
			t.Fatalf("attach by %q failed: %v", identifier, err)
		}
		if attached.PolicyID != policy.PolicyID {
			t.Fatalf("attach by %q resolved %q, want %q", identifier, attached.PolicyID, policy.PolicyID)
		}
		if err := module.Handler.DetachPolicyHandler(context.Background(), role.RoleID, httptransport.AttachPolicyRequest{
			PolicyIdentifier: identifier,
		}); err != nil {
			t.Fatalf("detach by %q failed: %v", identifier, err)
		}
	}
}

func TestAttachPolicyFromAnotherAccountReportsNotFound(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	foreign, err := module.Handler.CreatePolicyHandler(context.Background(), httptransport.CreatePolicyRequest{
		AccountID: "acct-2",
		Name:      "read-only",
		Document: json.RawMessage(`{
			"Version": "2012-10-17",
			"Statement": [{"Effect": "Allow", "Action": "s3:GetObject", "Resource": "*"}]
		}`),
	})
	if err != nil {
		t.Fatalf("create policy failed: %v", err)
	}

	// A policy in another account is invisible, by id or by name.
	for _, identifier := range []string{foreign.PolicyID, "read-only"} {
		_, err := module.Handler.AttachPolicyHandler(context.Background(), role.RoleID, httptransport.AttachPolicyRequest{
			PolicyIdentifier: identifier,
		})
		if !errors.Is(err, domainerrors.ErrNotFound) {
			t.Fatalf("attach by %q must report NotFound, got %v", identifier, err)
		}
	}
}

func TestAuthorizeDenyOverridesAttachedAllow(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)
	role := createRole(t, module, "acct-1", "deployer", "*")

	allow, err := module.Handler.CreatePolicyHandler(context.Background(), httptransport.CreatePolicyRequest{
		AccountID: "acct-1",
		Name:      "allow-s3",
		Document: json.RawMessage(`{
			"Version": "2012-10-17",
			"Statement": [{"Effect": "Allow", "Action": "s3:*", "Resource": "*"}]
		}`),
	})
	if err != nil {
		t.Fatalf("create allow policy failed: %v", err)
	}
	if _, err := module.Handler.AttachPolicyHandler(context.Background(), role.RoleID, httptransport.AttachPolicyRequest{
		PolicyIdentifier: allow.PolicyID,
	}); err != nil {
		t.Fatalf("attach allow failed: %v", err)
	}

	decision, err := module.Handler.AuthorizeHandler(context.Background(), httptransport.AuthorizeRequest{
		RoleID:   role.RoleID,
		Action:   "s3:GetObject",
		Resource: "arn:aegis:s3:::bucket/key",
	})
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if !decision.Allowed {
		t.Fatalf("expected allow, got %s", decision.Decision)
	}

	deny, err := module.Handler.CreatePolicyHandler(context.Background(), httptransport.CreatePolicyRequest{
		AccountID: "acct-1",
		Name:      "deny-delete",
		Document: json.RawMessage(`{
			"Version": "2012-10-17",
			"Statement": [{"Effect": "Deny", "Action": "s3:DeleteObject", "Resource": "*"}]
		}`),
	})
	if err != nil {
		t.Fatalf("create deny policy failed: %v", err)
	}
	if _, err := module.Handler.AttachPolicyHandler(context.Background(), role.RoleID, httptransport.AttachPolicyRequest{
		PolicyIdentifier: deny.PolicyID,
	}); err != nil {
		t.Fatalf("attach deny failed: %v", err)
	}

	decision, err = module.Handler.AuthorizeHandler(context.Background(), httptransport.AuthorizeRequest{
		RoleID:   role.RoleID,
		Action:   "s3:DeleteObject",
		Resource: "arn:aegis:s3:::bucket/key",
	})
	if err != nil {
		t.Fatalf("authorize failed: %v", err)
	}
	if decision.Allowed {
		t.Fatalf("deny must override the broader allow")
	}
}

func TestValidateTrustPolicyNeverErrors(t *testing.T) {
	module := sessionauthority.NewInMemoryModule(nil)

	result := module.Handler.ValidateTrustPolicyHandler(context.Background(), httptransport.ValidatePolicyRequest{
		Document: json.RawMessage(`not json`),
	})
	if result.Valid || len(result.Defects) == 0 {
		t.Fatalf("malformed JSON must be invalid with defects, got %+v", result)
	}

	result = module.Handler.ValidateTrustPolicyHandler(context.Background(), httptransport.ValidatePolicyRequest{
		Document: trustPolicyFor("*"),
	})
	if !result.Valid {
		t.Fatalf("canonical document must validate, defects: %v", result.Defects)
	}
}

package policy

import "strings"

// EvaluationInput carries one authorization question.
type EvaluationInput struct {
	Principal string
	Action    string
	Resource  string
}

// Evaluate combines every statement across the supplied documents into a
// single decision. Any matching Deny wins outright, else any matching Allow
// yields Allow, else ImplicitDeny. Statement order never matters.
func Evaluate(documents []Document, input EvaluationInput) Decision {
	allowed := false
	for _, doc := range documents {
		for i := range doc.Statement {
			statement := &doc.Statement[i]
			if !statement.Principal.Match(input.Principal) {
				continue
			}
			if !actionMatches(statement.Action, input.Action) {
				continue
			}
			if !resourceMatches(statement.Resource, input.Resource) {
				continue
			}
			if statement.Effect == EffectDeny {
				return DecisionDeny
			}
			if statement.Effect == EffectAllow {
				allowed = true
			}
		}
	}
	if allowed {
		return DecisionAllow
	}
	return DecisionImplicitDeny
}

// actionMatches accepts an exact action name or the service wildcard form
// ("sts:*", or the global "*").
func actionMatches(patterns StringList, action string) bool {
	for _, pattern := range patterns {
		if pattern == "*" || pattern == action {
			return true
		}
		if strings.HasSuffix(pattern, ":*") &&
			strings.HasPrefix(action, strings.TrimSuffix(pattern, "*")) {
			return true
		}
	}
	return false
}

// resourceMatches accepts an exact resource, the global wildcard, or a
// pattern with trailing/embedded "*" segments.
func resourceMatches(patterns StringList, resource string) bool {
	if len(patterns) == 0 {
		// Trust statements omit Resource; the role itself is the resource.
		return true
	}
	for _, pattern := range patterns {
		if wildcardMatch(pattern, resource) {
			return true
		}
	}
	return false
}

func wildcardMatch(pattern, value string) bool {
	if pattern == "*" || pattern == value {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(value, parts[0]) {
		return false
	}
	value = value[len(parts[0]):]

	last := len(parts) - 1
	for i := 1; i < last; i++ {
		idx := strings.Index(value, parts[i])
		if idx < 0 {
			return false
		}
		value = value[idx+len(parts[i]):]
	}
	return strings.HasSuffix(value, parts[last])
}

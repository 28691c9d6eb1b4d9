// Package policy validates proposed branch names against organizational
// naming rules before state-changing operations proceed.
//
// Core types:
//   - Rule: Named predicate plus violation explanation
//   - Verdict: Result of a validation (valid, failed rule, explanation)
//   - Validator: Ordered rule set evaluated fail-fast
//
// Rules are evaluated in a fixed order and the first failure wins.
// Validation is pure and never returns an error; outcomes are always
// Verdict values, so callers can display the explanation directly.
//
// Example usage:
//
//	v := policy.NewValidator()
//	verdict := v.Validate("feature/login-fix")
//	if !verdict.Valid {
//	    fmt.Println(verdict.Explanation)
//	}
package policy

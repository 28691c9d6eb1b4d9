package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLength is the maximum allowed branch name length.
const MaxLength = 50

// AllowedPrefixes lists the branch category prefixes accepted by the
// naming policy, in display order.
var AllowedPrefixes = []string{
	"feature/",
	"fix/",
	"hotfix/",
	"chore/",
	"docs/",
}

// allowedChars matches branch names made of letters, digits, slashes,
// underscores, and hyphens.
var allowedChars = regexp.MustCompile(`^[A-Za-z0-9/_-]+$`)

// Rule is a named predicate over a candidate branch name.
// Check reports whether the candidate satisfies the rule; Explain
// produces the human-readable violation text for a candidate that
// failed Check.
type Rule struct {
	Name    string
	Check   func(candidate string) bool
	Explain func(candidate string) string
}

// Verdict is the result of validating a candidate against a rule set.
// A fresh Verdict is produced per call and never mutated.
type Verdict struct {
	Valid       bool
	FailedRule  *Rule  // nil when Valid
	Explanation string // violation text, or compliance confirmation
}

// Validator evaluates an ordered rule set against candidate branch
// names. Rules are checked in order and the first failure wins.
type Validator struct {
	rules []Rule
}

// NewValidator creates a validator with the given rules.
// With no rules it uses DefaultRules.
func NewValidator(rules ...Rule) *Validator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Validator{rules: rules}
}

// Validate checks a candidate branch name against the rule set.
// It never returns an error; policy outcomes are always verdict values.
func (v *Validator) Validate(candidate string) Verdict {
	for i := range v.rules {
		rule := &v.rules[i]
		if !rule.Check(candidate) {
			return Verdict{
				Valid:       false,
				FailedRule:  rule,
				Explanation: rule.Explain(candidate),
			}
		}
	}
	return Verdict{
		Valid:       true,
		Explanation: fmt.Sprintf("branch name %q complies with the naming policy", candidate),
	}
}

// Rules returns the validator's rule set in evaluation order.
func (v *Validator) Rules() []Rule {
	return v.rules
}

// DefaultRules returns the organizational rule set, in evaluation order:
// category prefix, maximum length, allowed character set.
func DefaultRules() []Rule {
	return []Rule{
		PrefixRule(AllowedPrefixes...),
		LengthRule(MaxLength),
		CharsetRule(),
	}
}

// PrefixRule requires the candidate to start with one of the given
// category prefixes.
func PrefixRule(prefixes ...string) Rule {
	return Rule{
		Name: "prefix",
		Check: func(candidate string) bool {
			for _, p := range prefixes {
				if strings.HasPrefix(candidate, p) {
					return true
				}
			}
			return false
		},
		Explain: func(candidate string) string {
			return fmt.Sprintf("branch name %q must start with one of: %s",
				candidate, strings.Join(prefixes, ", "))
		},
	}
}

// LengthRule limits the candidate to max characters.
func LengthRule(max int) Rule {
	return Rule{
		Name: "length",
		Check: func(candidate string) bool {
			return len(candidate) <= max
		},
		Explain: func(candidate string) string {
			return fmt.Sprintf("branch name is %d characters, maximum is %d",
				len(candidate), max)
		},
	}
}

// CharsetRule restricts the candidate to letters, digits, slashes,
// underscores, and hyphens.
func CharsetRule() Rule {
	return Rule{
		Name: "charset",
		Check: func(candidate string) bool {
			return allowedChars.MatchString(candidate)
		},
		Explain: func(candidate string) string {
			return fmt.Sprintf("branch name %q may only contain letters, digits, '/', '_', and '-'",
				candidate)
		},
	}
}

package validation

import "unicode"

// CompromisedChecker reports whether a password is known to have
// appeared in a breach corpus.
type CompromisedChecker interface {
	Compromised(password string) bool
}

// PasswordPolicy is the composite rule set a candidate password must
// satisfy before an account may be created.
type PasswordPolicy struct {
	MinLength int
	Corpus    CompromisedChecker
}

// DefaultPasswordPolicy returns the policy enforced at registration:
// at least 8 characters, mixed case, a number, a symbol, and not
// present in the embedded breach corpus.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength: 8,
		Corpus:    EmbeddedCorpus(),
	}
}

type passwordRule struct {
	message string
	ok      func(p *PasswordPolicy, password string) bool
}

// Rules run in order and every failing rule is reported, so the client
// sees the full list of violations at once.
var passwordRules = []passwordRule{
	{
		message: "The password must be at least 8 characters.",
		ok: func(p *PasswordPolicy, password string) bool {
			return len([]rune(password)) >= p.MinLength
		},
	},
	{
		message: "The password must contain at least one uppercase and one lowercase letter.",
		ok: func(_ *PasswordPolicy, password string) bool {
			var upper, lower bool
			for _, r := range password {
				upper = upper || unicode.IsUpper(r)
				lower = lower || unicode.IsLower(r)
			}
			return upper && lower
		},
	},
	{
		message: "The password must contain at least one number.",
		ok: func(_ *PasswordPolicy, password string) bool {
			for _, r := range password {
				if unicode.IsDigit(r) {
					return true
				}
			}
			return false
		},
	},
	{
		message: "The password must contain at least one symbol.",
		ok: func(_ *PasswordPolicy, password string) bool {
			for _, r := range password {
				if unicode.IsPunct(r) || unicode.IsSymbol(r) {
					return true
				}
			}
			return false
		},
	},
	{
		message: "The password has appeared in a data leak. Please choose a different password.",
		ok: func(p *PasswordPolicy, password string) bool {
			return p.Corpus == nil || !p.Corpus.Compromised(password)
		},
	},
}

// Check evaluates every rule against the candidate password and
// returns the messages of all failing rules, in rule order.
func (p *PasswordPolicy) Check(password string) []string {
	var failures []string
	for _, rule := range passwordRules {
		if !rule.ok(p, password) {
			failures = append(failures, rule.message)
		}
	}
	return failures
}

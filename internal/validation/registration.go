package validation

import (
	"context"
	"net"
	"strings"

	"github.com/authgate/authgate-go/internal/model"
)

// DomainChecker reports whether an email domain is resolvable.
type DomainChecker func(ctx context.Context, domain string) bool

// LookupDomain resolves a domain via MX records, falling back to a
// host lookup for domains that receive mail on an A/AAAA record.
func LookupDomain(ctx context.Context, domain string) bool {
	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := net.DefaultResolver.LookupHost(ctx, domain)
	return err == nil && len(addrs) > 0
}

// Registration validates registration input: struct shape, email
// deliverability, and the password policy. It carries no request
// state; email uniqueness is the store's concern and is checked by the
// service.
type Registration struct {
	Policy      *PasswordPolicy
	CheckDomain DomainChecker
}

// NewRegistration returns a validator with the default policy and a
// live DNS domain check.
func NewRegistration() *Registration {
	return &Registration{
		Policy:      DefaultPasswordPolicy(),
		CheckDomain: LookupDomain,
	}
}

// Validate checks a registration request and returns every field
// violation found. An empty result means the input is acceptable.
func (v *Registration) Validate(ctx context.Context, req model.RegisterRequest) Errors {
	errs := checkStruct(req)

	// Only resolve the domain once the address is syntactically valid.
	if len(errs["email"]) == 0 {
		if _, domain, found := strings.Cut(req.Email, "@"); !found || !v.CheckDomain(ctx, domain) {
			errs.Add("email", "The email must be a valid email address.")
		}
	}

	if req.Password != "" {
		for _, msg := range v.Policy.Check(req.Password) {
			errs.Add("password", msg)
		}
	}

	return errs
}

// ValidateLogin checks that a login request carries both credentials.
func ValidateLogin(req model.LoginRequest) Errors {
	return checkStruct(req)
}

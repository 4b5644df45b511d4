package parse

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrMalformedEmail is returned for values that are not local@domain with
// exactly one '@' and both parts present.
var ErrMalformedEmail = errors.New("malformed email address")

// ErrNotInternal is returned by PersonnelNumber for addresses outside the
// internal domain.
var ErrNotInternal = errors.New("not an internal personnel address")

func splitEmail(value string) (local, domain string, err error) {
	if strings.Count(value, "@") != 1 {
		return "", "", errors.Wrapf(ErrMalformedEmail, "%q", value)
	}
	local, domain, _ = strings.Cut(value, "@")
	if local == "" || domain == "" {
		return "", "", errors.Wrapf(ErrMalformedEmail, "%q", value)
	}
	return local, domain, nil
}

// AgencyEmployeeEmail is the address shown for an agency employee. Synthetic
// addresses on the internal domain fep are hidden (empty result); real
// addresses pass through unchanged. The domain comparison is exact.
func AgencyEmployeeEmail(value, fep string) (string, error) {
	_, domain, err := splitEmail(value)
	if err != nil {
		return "", err
	}
	if domain == fep {
		return "", nil
	}
	return value, nil
}

// PersonnelEmail builds the synthetic address of an employee that has no
// mailbox of their own, keyed by their EA personnel number.
func PersonnelEmail(number, fep string) (string, error) {
	email := strings.TrimSpace(number) + "@" + fep
	if _, _, err := splitEmail(email); err != nil {
		return "", err
	}
	return email, nil
}

// PersonnelNumber recovers the personnel number from a synthetic address.
func PersonnelNumber(email, fep string) (string, error) {
	local, domain, err := splitEmail(email)
	if err != nil {
		return "", err
	}
	if domain != fep {
		return "", errors.Wrapf(ErrNotInternal, "%q", email)
	}
	return local, nil
}

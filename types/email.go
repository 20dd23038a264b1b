package types

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmailAddress = errors.New("invalid e-mail address, address is missing @")
)

// NewEmailParts splits an address on the last "@". The domain is kept exactly as given.
func NewEmailParts(emailAddress string) (EmailParts, error) {
	p, err := splitLocalAndDomain(emailAddress)
	if err != nil {
		return EmailParts{}, err
	}

	return p, nil
}

// NewEmailFromParts glues a local and domain part back together
func NewEmailFromParts(local, domain string) EmailParts {
	return EmailParts{
		Address: local + "@" + domain,
		Local:   local,
		Domain:  domain,
	}
}

type EmailParts struct {
	Address string
	Local   string
	Domain  string
}

func splitLocalAndDomain(input string) (EmailParts, error) {
	i := strings.LastIndex(input, "@")
	if i < 0 {
		return EmailParts{}, ErrInvalidEmailAddress
	}

	return EmailParts{
		Address: input,
		Local:   input[:i],
		Domain:  input[i+1:],
	}, nil
}

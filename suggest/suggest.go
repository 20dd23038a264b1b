// Package suggest proposes a well-known mail domain for addresses that look mistyped
package suggest

import (
	"context"
	"strings"

	"github.com/Dynom/TySug/finder"
	"github.com/Dynom/eri-tools/types"
)

// DefaultDomains are popular mail domains, used when no list is given
var DefaultDomains = []string{
	"gmail.com",
	"googlemail.com",
	"yahoo.com",
	"hotmail.com",
	"outlook.com",
	"live.com",
	"icloud.com",
	"aol.com",
	"protonmail.com",
	"gmx.com",
	"mail.ru",
	"yandex.ru",
	"ya.ru",
	"rambler.ru",
	"bk.ru",
	"list.ru",
	"inbox.ru",
}

func New(domains []string) (*Suggester, error) {
	if len(domains) == 0 {
		domains = DefaultDomains
	}

	f, err := finder.New(
		domains,
		finder.WithLengthTolerance(0.2),
		finder.WithAlgorithm(finder.NewJaroWinklerDefaults()),
	)

	if err != nil {
		return nil, err
	}

	return &Suggester{finder: f}, nil
}

type Suggester struct {
	finder *finder.Finder
}

// Suggest returns the address with the closest known domain. It returns false when the domain is already known or
// nothing comes close.
func (s *Suggester) Suggest(ctx context.Context, parts types.EmailParts) (string, bool) {
	domain := strings.ToLower(parts.Domain)
	if domain == "" {
		return "", false
	}

	alt, score, exact := s.finder.FindCtx(ctx, domain)
	if exact || score <= finder.WorstScoreValue || alt == domain {
		return "", false
	}

	return types.NewEmailFromParts(parts.Local, alt).Address, true
}

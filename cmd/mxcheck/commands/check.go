package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/Dynom/eri-tools/cmd/mxcheck/iterator"
	"github.com/Dynom/eri-tools/resolver"
	"github.com/Dynom/eri-tools/runtimer"
	"github.com/Dynom/eri-tools/suggest"
	"github.com/Dynom/eri-tools/types"
	"github.com/Dynom/eri-tools/validator"
	"github.com/Dynom/eri-tools/validator/validations"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const rule = "--------------------------------------------------"

type batchPrinter func(results []validator.EmailCheckResult) error

func runCheck(cmd *cobra.Command, args []string, settings *CheckSettings, r resolver.Resolver) error {
	switch settings.Output {
	case outputText, outputJSON:
	default:
		return fmt.Errorf("bad output %q, expected %q or %q", settings.Output, outputText, outputJSON)
	}

	switch settings.Format {
	case formatText, formatCSV:
	default:
		return fmt.Errorf("bad format %q, expected %q or %q", settings.Format, formatText, formatCSV)
	}

	conf, err := loadConfig(cmd, settings)
	if err != nil {
		return err
	}

	logger, err := conf.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if r == nil {
		r = newResolver(conf, settings.Check.Resolvers)
	}

	if dr, ok := r.(*resolver.DNSResolver); ok {
		rc := dr.Config()
		logger.WithFields(logrus.Fields{
			"nameservers": rc.Nameservers,
			"timeout":     rc.Timeout,
			"retries":     rc.Retries,
		}).Debug("Using nameservers")
	}

	var fileEmails []string
	if settings.File != "" {
		fileEmails, err = readEmails(cmd, settings, logger)
		if err != nil {
			return err
		}
	}

	sh := runtimer.New(os.Interrupt, syscall.SIGTERM)
	defer sh.Stop()

	ctx, cancel := sh.Context(cmd.Context())
	defer cancel()

	checker := validator.New(r, validator.WithLogger(logger), validator.WithTimeout(settings.Check.Timeout))

	var suggester *suggest.Suggester
	if settings.Suggest {
		suggester, err = suggest.New(nil)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	text := settings.Output == outputText

	var printBatch batchPrinter
	if text {
		printBatch = textPrinter(ctx, out, suggester)
	} else {
		printBatch = jsonPrinter(ctx, out, suggester)
	}

	heading := func(format string, a ...interface{}) {
		if text {
			_, _ = fmt.Fprintf(out, format+"\n", a...)
		}
	}

	heading("=== Email domain MX record check ===\n")
	heading("Example using the built-in list:")
	heading(rule)

	if err := printBatch(checker.ProcessEmails(ctx, SampleEmails)); err != nil {
		return err
	}

	heading("\n%s", strings.Repeat("=", len(rule)))

	if len(args) > 0 {
		heading("Checking email addresses from the command line:")
		heading(rule)

		if err := printBatch(checker.ProcessEmails(ctx, args)); err != nil {
			return err
		}
	}

	if settings.File == "" {
		heading("\nTo check email addresses from a file, create a file emails.txt")
		heading("and run: %s --file emails.txt", cmd.Root().Name())
		return nil
	}

	heading("\nChecking email addresses from %s:", settings.File)
	heading(rule)

	return printBatch(checker.ProcessEmails(ctx, fileEmails))
}

// readEmails reads all addresses from the file, or stdin, up front. Lines that can't be parsed are logged and skipped.
func readEmails(cmd *cobra.Command, settings *CheckSettings, logger logrus.FieldLogger) ([]string, error) {
	var in io.Reader
	if settings.File == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(settings.File)
		if err != nil {
			return nil, fmt.Errorf("unable to open %q, reason: %w", settings.File, err)
		}

		defer func() {
			_ = f.Close()
		}()

		in = f
	}

	var it *iterator.CallbackIterator
	if settings.Format == formatCSV {
		it = createCSVIterator(in, settings.CSV)
	} else {
		it = createTextIterator(in)
	}

	log := logger.WithField("file", settings.File)
	emails, err := iterator.Collect(it, func(err error) {
		log.WithError(err).Warn("Skipping unreadable record")
	})

	if err != nil {
		log.WithError(err).Warn("Reading stopped with an error")
	}

	log.WithField("amount", len(emails)).Debug("Read addresses")

	return emails, nil
}

func textPrinter(ctx context.Context, w io.Writer, s *suggest.Suggester) batchPrinter {
	return func(results []validator.EmailCheckResult) error {
		for _, r := range results {
			line := r.Email + ": " + r.Status
			if alt, ok := suggestion(ctx, s, r); ok {
				line += " (did you mean " + alt + "?)"
			}

			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}

		return nil
	}
}

func jsonPrinter(ctx context.Context, w io.Writer, s *suggest.Suggester) batchPrinter {
	jsonEncoder := json.NewEncoder(w)
	jsonEncoder.SetEscapeHTML(false)

	return func(results []validator.EmailCheckResult) error {
		for _, r := range results {
			result := CheckResultFull{
				Email:     r.Email,
				Domain:    r.Domain,
				Status:    r.Status,
				Valid:     r.Validations.IsValid(),
				Validated: r.ValidatorsRan(),
				Checks:    validations.Flag(r.Steps).AsStringSlice(),
				Passed:    validations.Flag(r.Validations.RemoveFlag(validations.FValid)).AsStringSlice(),
				Version:   1,
			}

			if alt, ok := suggestion(ctx, s, r); ok {
				result.Suggestion = alt
			}

			if err := jsonEncoder.Encode(result); err != nil {
				return err
			}
		}

		return nil
	}
}

// suggestion only looks for alternatives when the domain itself is the problem
func suggestion(ctx context.Context, s *suggest.Suggester, r validator.EmailCheckResult) (string, bool) {
	if s == nil {
		return "", false
	}

	if r.Validations.IsValidationsForValidDomain() {
		return "", false
	}

	if r.Kind != validator.KindDomainNotFound && r.Kind != validator.KindMXMissing {
		return "", false
	}

	parts, err := types.NewEmailParts(r.Email)
	if err != nil {
		return "", false
	}

	return s.Suggest(ctx, parts)
}

// Package sender posts text to a Telegram chat through the Bot API. Long texts are delivered in numbered parts.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/juju/ratelimit"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"
)

// Responses are tiny, anything larger is bogus
const maxResponseSize = 1 << 20

var sleep = time.Sleep

type Option func(s *Sender)

// WithHTTPClient replaces the HTTP client, its Timeout is left untouched
func WithHTTPClient(c *http.Client) Option {
	return func(s *Sender) {
		s.client = c
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// WithOutput sets where the progress report goes, defaults to os.Stdout
func WithOutput(w io.Writer) Option {
	return func(s *Sender) {
		s.out = w
	}
}

func New(conf Config, options ...Option) (*Sender, error) {
	if conf.Token == "" || conf.ChatID == "" {
		return nil, ErrMissingCredentials
	}

	conf = conf.withDefaults()

	s := &Sender{
		conf: conf,
		out:  os.Stdout,
	}

	for _, o := range options {
		o(s)
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: conf.Timeout}
	}

	if s.logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		s.logger = l
	}

	if conf.Rate > 0 {
		s.bucket = ratelimit.NewBucketWithRate(conf.Rate, 1)
	}

	s.logger = s.logger.WithField("run_id", ulid.Make().String())

	return s, nil
}

// Sender delivers messages to a single chat
type Sender struct {
	conf   Config
	client *http.Client
	bucket *ratelimit.Bucket
	logger logrus.FieldLogger
	out    io.Writer
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type apiResponse struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// SendMessage posts text as a single message. It succeeds only when the request completes with a 2xx status and the
// API reports "ok". There are no retries.
func (s *Sender) SendMessage(ctx context.Context, text string) error {
	log := s.logger.WithField("length", utf8.RuneCountInString(text))

	err := s.sendMessage(ctx, text)
	if err == nil {
		log.Debug("Message sent")
		s.report("✅ Message sent to chat %s", s.conf.ChatID)
		return nil
	}

	log.WithError(err).Warn("Sending message failed")

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		s.report("❌ Send failed: %s", apiErr.Body)
	} else {
		s.report("❌ Network error: %s", err)
	}

	return err
}

func (s *Sender) sendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    s.conf.ChatID,
		Text:      text,
		ParseMode: parseMode,
	})
	if err != nil {
		return fmt.Errorf("unable to marshal request %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.conf.baseURL()+"/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, s.redact(err))
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, s.redact(err))
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("%w: reading response: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w %s: %s", ErrStatus, resp.Status, bytes.TrimSpace(body))
	}

	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return fmt.Errorf("%w: unable to decode response: %w", ErrTransport, err)
	}

	if !r.Ok {
		return &APIError{
			Code:        r.ErrorCode,
			Description: r.Description,
			Body:        string(body),
		}
	}

	return nil
}

// SendFromFile reads a UTF-8 text file and sends its trimmed content. Texts longer than the chunk size are sent as
// numbered parts. Every part is attempted, a failing part doesn't stop the ones after it.
func (s *Sender) SendFromFile(ctx context.Context, path string) error {
	text, err := readText(path)
	if err != nil {
		s.logger.WithError(err).WithField("path", path).Warn("Unable to use file")

		switch {
		case errors.Is(err, ErrFileNotFound):
			s.report("❌ File not found: %s", path)
		case errors.Is(err, ErrEmptyFile):
			s.report("❌ File is empty")
		default:
			s.report("❌ Error reading file: %s", err)
		}

		return err
	}

	length := utf8.RuneCountInString(text)

	s.report("📄 Reading file: %s", path)
	s.report("📝 Text length: %d characters", length)

	if length <= s.conf.ChunkSize {
		return s.SendMessage(ctx, text)
	}

	s.report("⚠️ Text is long, splitting into parts...")

	return s.sendParts(ctx, SplitText(text, s.conf.ChunkSize))
}

func (s *Sender) sendParts(ctx context.Context, parts []string) error {
	var failed []int
	var errs []error

	total := len(parts)
	for i, part := range parts {
		n := i + 1

		s.report("📤 Sending part %d/%d...", n, total)
		s.wait(n)

		if err := s.SendMessage(ctx, partPrefix(n, total)+part); err != nil {
			failed = append(failed, n)
			errs = append(errs, fmt.Errorf("part %d: %w", n, err))
		}
	}

	s.logger.WithFields(logrus.Fields{
		"parts":  total,
		"failed": len(failed),
	}).Info("Done sending parts")

	if len(failed) > 0 {
		return &DeliveryError{
			Failed: failed,
			Total:  total,
			Errs:   errs,
		}
	}

	return nil
}

// wait blocks until the rate limiter allows the next message
func (s *Sender) wait(part int) {
	if s.bucket == nil {
		return
	}

	if d := s.bucket.Take(1); d > 0 {
		s.logger.WithFields(logrus.Fields{
			"part":  part,
			"delay": d,
		}).Debug("rate limit: delaying part")

		sleep(d)
	}
}

func (s *Sender) report(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format+"\n", args...)
}

// redact removes the token from URL errors, which would otherwise end up in the output
func (s *Sender) redact(err error) error {
	var uErr *url.Error
	if !errors.As(err, &uErr) {
		return err
	}

	return &url.Error{
		Op:  uErr.Op,
		URL: strings.ReplaceAll(uErr.URL, s.conf.Token, "<token>"),
		Err: uErr.Err,
	}
}

// readText reads the file and returns its content with normalised line endings and surrounding whitespace removed
func readText(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrFileRead, path)
	}

	text := strings.ReplaceAll(string(b), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)

	if text == "" {
		return "", ErrEmptyFile
	}

	return text, nil
}

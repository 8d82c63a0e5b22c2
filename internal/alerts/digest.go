package alerts

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"sort"
	"strings"
	"time"

	"github.com/rogerio-castellano/warehouse-inventory/internal/config"
	"go.uber.org/zap"
)

// Sender delivers an HTML message.
type Sender interface {
	Send(subject, htmlBody string) error
}

type SMTPSender struct {
	cfg config.AlertsConfig
}

func NewSMTPSender(cfg config.AlertsConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(subject, htmlBody string) error {
	msg := strings.Join([]string{
		"From: " + s.cfg.From,
		"To: " + s.cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		htmlBody,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	var auth smtp.Auth
	if !s.cfg.SMTPAuthDisabled {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPServer)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{s.cfg.To}, []byte(msg))
}

type Digest struct {
	store  Store
	sender Sender
	logger *zap.Logger
}

func NewDigest(store Store, sender Sender, logger *zap.Logger) *Digest {
	return &Digest{store: store, sender: sender, logger: logger}
}

// Send mails a summary of the alert log and clears the delivered entries.
// Nothing is sent for an empty log. A failed send keeps the log for the next run.
func (d *Digest) Send(ctx context.Context) error {
	entries, n, err := d.store.Read(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return d.store.Discard(ctx, n)
	}

	subject, body := BuildDigest(entries)
	if err := d.sender.Send(subject, body); err != nil {
		d.logger.Error("failed to send low-stock digest", zap.Int("entries", len(entries)), zap.Error(err))
		return fmt.Errorf("failed to send digest: %w", err)
	}
	d.logger.Info("low-stock digest sent", zap.Int("entries", len(entries)))
	if err := d.store.Discard(ctx, n); err != nil {
		d.logger.Error("failed to clear low-stock log", zap.Error(err))
		return err
	}
	return nil
}

// BuildDigest renders the entries as an HTML report, one row per product
// with its most recent stock level.
func BuildDigest(entries []Entry) (string, string) {
	latest := map[string]Entry{}
	counts := map[string]int{}
	for _, e := range entries {
		counts[e.SKU]++
		if prev, ok := latest[e.SKU]; !ok || !e.Time.Before(prev.Time) {
			latest[e.SKU] = e
		}
	}

	skus := make([]string, 0, len(latest))
	for sku := range latest {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	var sb strings.Builder
	sb.WriteString("<h2>Daily Low-Stock Report</h2>")
	sb.WriteString(fmt.Sprintf("<p>Products below minimum: <strong>%d</strong> (%d alerts)</p>", len(skus), len(entries)))
	sb.WriteString("<table><tr><th>SKU</th><th>Name</th><th>Stock</th><th>Minimum</th><th>Alerts</th><th>Last change</th></tr>")
	for _, sku := range skus {
		e := latest[sku]
		sb.WriteString(fmt.Sprintf("<tr><td><code>%s</code></td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%s</td></tr>",
			html.EscapeString(e.SKU), html.EscapeString(e.Name), e.Stock, e.MinimumStock, counts[sku], e.Time.Format(time.RFC822)))
	}
	sb.WriteString("</table>")

	return fmt.Sprintf("Low-stock report: %d products", len(skus)), sb.String()
}

// StartDailyDigest sends the digest every day at 23:59 local time until ctx is done.
func StartDailyDigest(ctx context.Context, d *Digest, interval time.Duration) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(interval)
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := d.Send(ctx); err != nil {
			d.logger.Warn("daily digest failed", zap.Error(err))
		}
	}
}

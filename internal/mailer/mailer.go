package mailer

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/cwhitfield/cert-tracker/internal/logger"
	"github.com/cwhitfield/cert-tracker/internal/reminders"
	"github.com/cwhitfield/cert-tracker/internal/utils"
)

const subject = "Cert Tracker exam reminder"

// entryDateFormat is the dash layout reminder entries store, year
// first.
const entryDateFormat = "2006-1-2"

var bodyTemplate = template.Must(template.New("reminder").Parse(`
<html>
    <body style="padding: 0; margin: 0;">
        <table align="center" width="90%" style="font-family: 'Lucida Sans', 'Lucida Sans Regular', 'Lucida Grande', 'Lucida Sans Unicode', Geneva, Verdana, sans-serif; max-width: 600px; margin: auto; text-align: center;">
            <tr>
                <td>
                    <p style="font-size: 48px; font-weight: bold; color: rgb(233, 198, 0); padding: 0;">Cert Tracker</p>
                </td>
            </tr>
            <tr>
                <td style="font-size: 24px; padding: 0 0 30px 0;">
                    Your {{.Name}} - {{.Code}} exam is booked for
                    <span style="color: darkcyan;">{{.ExamDate}}</span>
                </td>
            </tr>
            <tr>
                <td bgcolor="#32CD32" style="color: white; font-size: 20px; padding: 20px;">
                    <table width="100%">
                        <tr>
                            <td align="center" style="padding: 25px;">You have</td>
                        </tr>
                        <tr>
                            <td align="center" style="font-size: 40px; font-weight: bold; padding: 10px;">{{.Days}}</td>
                        </tr>
                        <tr>
                            <td align="center" style="padding: 25px;">days to go!</td>
                        </tr>
                    </table>
                </td>
            </tr>
        </table>
    </body>
</html>
`))

type bodyData struct {
	Name     string
	Code     string
	ExamDate string
	Days     int
}

// SMTPConfig carries the credentials and endpoint for the outbound
// account.
type SMTPConfig struct {
	Host      string
	Port      int
	Sender    string
	Password  string
	Recipient string
}

func LoadSMTPConfig(log *logger.Logger) SMTPConfig {
	return SMTPConfig{
		Host:      utils.GetEnv("SMTP_HOST", "smtp.gmail.com", log),
		Port:      utils.GetEnvAsInt("SMTP_PORT", 465, log),
		Sender:    utils.GetEnv("SMTP_SENDER", "", log),
		Password:  utils.GetEnv("SMTP_PASSWORD", "", log),
		Recipient: utils.GetEnv("SMTP_RECIPIENT", "", log),
	}
}

type Mailer struct {
	log *logger.Logger
	cfg SMTPConfig
}

func NewMailer(log *logger.Logger, cfg SMTPConfig) *Mailer {
	return &Mailer{log: log.With("service", "Mailer"), cfg: cfg}
}

// ParseEntryDate reads a reminder entry date of the form yyyy-mm-dd.
func ParseEntryDate(value string) (time.Time, error) {
	parsed, err := time.Parse(entryDateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse entry date %q: %w", value, err)
	}
	return parsed, nil
}

// DaysUntil counts whole days from today to the entry's exam date.
func DaysUntil(examDate string, today time.Time) (int, error) {
	exam, err := ParseEntryDate(examDate)
	if err != nil {
		return 0, err
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(exam.Sub(today).Hours() / 24), nil
}

// Due reports whether the entry should be sent today: daily entries
// always, weekly entries on the same weekday as starting_from, monthly
// entries on the same day of month.
func Due(entry reminders.Entry, today time.Time) (bool, error) {
	switch entry.Frequency {
	case "daily":
		return true, nil
	case "weekly":
		start, err := ParseEntryDate(entry.StartingFrom)
		if err != nil {
			return false, err
		}
		return start.Weekday() == today.Weekday(), nil
	case "monthly":
		start, err := ParseEntryDate(entry.StartingFrom)
		if err != nil {
			return false, err
		}
		return start.Day() == today.Day(), nil
	default:
		return false, fmt.Errorf("unknown frequency %q", entry.Frequency)
	}
}

// Send composes the reminder body for the entry and delivers it over
// SMTPS.
func (m *Mailer) Send(entry reminders.Entry, today time.Time) error {
	days, err := DaysUntil(entry.ExamDate, today)
	if err != nil {
		return err
	}

	exam, err := ParseEntryDate(entry.ExamDate)
	if err != nil {
		return err
	}
	displayDate := fmt.Sprintf("%d-%d-%d", exam.Day(), int(exam.Month()), exam.Year())

	var body bytes.Buffer
	if err := bodyTemplate.Execute(&body, bodyData{
		Name:     entry.Name,
		Code:     entry.Code,
		ExamDate: displayDate,
		Days:     days,
	}); err != nil {
		return fmt.Errorf("render reminder body: %w", err)
	}

	message := m.buildMessage(body.String())
	if err := m.deliver(message); err != nil {
		return fmt.Errorf("send reminder for %s: %w", entry.Code, err)
	}
	m.log.Info("Reminder sent", "code", entry.Code, "days", days)
	return nil
}

func (m *Mailer) buildMessage(body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + m.cfg.Sender + "\r\n")
	b.WriteString("To: " + m.cfg.Recipient + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

// deliver speaks SMTP over an implicit-TLS connection, the transport
// GMail's port 465 expects.
func (m *Mailer) deliver(message []byte) error {
	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(m.cfg.Sender); err != nil {
		return err
	}
	if err := client.Rcpt(m.cfg.Recipient); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(message); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

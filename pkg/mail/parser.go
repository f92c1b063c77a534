package mail

import (
	"bytes"
	"errors"
	"html"
	"io"
	"strings"
	"time"

	_ "github.com/emersion/go-message/charset" // non utf-8 charsets
	"github.com/emersion/go-message/mail"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

// ParseMail turns a raw RFC 5322 message into a Mail. The html body is preferred,
// plain text is escaped and wrapped in <pre>. Attachments are ignored.
func ParseMail(raw []byte) (domain.Mail, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return domain.Mail{}, &ParseError{Reason: "read message", Err: err}
	}
	defer mr.Close()

	from, err := mr.Header.AddressList("From")
	if err != nil {
		return domain.Mail{}, &ParseError{Reason: "parse from header", Err: err}
	}
	if len(from) == 0 || from[0].Address == "" {
		return domain.Mail{}, &ParseError{Reason: "missing from address"}
	}

	date, err := mr.Header.Date()
	if err != nil {
		return domain.Mail{}, &ParseError{Reason: "parse date header", Err: err}
	}
	if date.IsZero() {
		return domain.Mail{}, &ParseError{Reason: "missing date"}
	}

	subject, err := mr.Header.Subject()
	if err != nil {
		subject = mr.Header.Get("Subject") // undecodable encoded-word, keep it raw
	}

	htmlBody, textBody, err := readBodies(mr)
	if err != nil {
		return domain.Mail{}, &ParseError{Reason: "read body", Err: err}
	}
	if htmlBody == "" && textBody != "" {
		htmlBody = "<pre>" + html.EscapeString(textBody) + "</pre>"
	}

	m := domain.Mail{
		Address: strings.ToLower(from[0].Address),
		Name:    from[0].Name,
		Subject: subject,
		Date:    date.UTC().Format(time.RFC3339),
		HTML:    htmlBody,
	}
	if m.Name == "" {
		m.Name = m.Address
	}
	m.UID = GenID(m)
	return m, nil
}

// readBodies returns the first inline text/html and text/plain parts
func readBodies(mr *mail.Reader) (htmlBody, textBody string, err error) {
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if htmlBody != "" || textBody != "" {
				break // keep what was read before a broken part
			}
			return "", "", err
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue // attachment
		}
		contentType, _, _ := h.ContentType()
		if contentType == "" {
			contentType = "text/plain"
		}
		switch {
		case contentType == "text/html" && htmlBody == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", "", err
			}
			htmlBody = string(body)
		case contentType == "text/plain" && textBody == "":
			body, err := io.ReadAll(part.Body)
			if err != nil {
				return "", "", err
			}
			textBody = string(body)
		}
	}
	return htmlBody, textBody, nil
}

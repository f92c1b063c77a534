package mail

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

func rawMail(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n"))
}

func TestGenID(t *testing.T) {
	m := domain.Mail{Address: "a@b.c", Date: "2024-01-01T00:00:00Z", Subject: "one", HTML: "<p>1</p>"}

	id := GenID(m)
	assert.Len(t, id, 64)
	assert.Equal(t, id, GenID(m), "same input, same id")

	other := m
	other.Subject = "two"
	other.HTML = "<p>2</p>"
	assert.Equal(t, id, GenID(other), "subject and body don't affect id")

	other = m
	other.Date = "2024-01-02T00:00:00Z"
	assert.NotEqual(t, id, GenID(other))

	other = m
	other.Address = "x@b.c"
	assert.NotEqual(t, id, GenID(other))

	// sha256("2024-01-01T00:00:00Z" + "a@b.c")
	assert.Equal(t, "99ad68e0a427f523c689f5ee6d40dce3cc1111225f406a13ae9b2bd9e30b81d9", id)
}

func TestParseMail(t *testing.T) {
	t.Run("html body", func(t *testing.T) {
		raw := rawMail(
			"From: Go Weekly <Weekly@Golang.example>",
			"To: reader@example.com",
			"Subject: Issue 42",
			"Date: Mon, 01 Jan 2024 02:00:00 +0200",
			"MIME-Version: 1.0",
			`Content-Type: multipart/alternative; boundary="b1"`,
			"",
			"--b1",
			"Content-Type: text/plain; charset=utf-8",
			"",
			"plain version",
			"--b1",
			"Content-Type: text/html; charset=utf-8",
			"",
			"<p>html version</p>",
			"--b1--",
			"",
		)

		m, err := ParseMail(raw)
		require.NoError(t, err)
		assert.Equal(t, "weekly@golang.example", m.Address)
		assert.Equal(t, "Go Weekly", m.Name)
		assert.Equal(t, "Issue 42", m.Subject)
		assert.Equal(t, "2024-01-01T00:00:00Z", m.Date)
		assert.Equal(t, "<p>html version</p>", strings.TrimSpace(m.HTML))
		assert.Equal(t, GenID(m), m.UID)
	})

	t.Run("plain text fallback is escaped", func(t *testing.T) {
		raw := rawMail(
			"From: sender@example.com",
			"Subject: Plain",
			"Date: Tue, 02 Jan 2024 10:00:00 +0000",
			"Content-Type: text/plain; charset=utf-8",
			"",
			"1 < 2 & 3 > 2",
			"",
		)

		m, err := ParseMail(raw)
		require.NoError(t, err)
		assert.Equal(t, "sender@example.com", m.Address)
		assert.Equal(t, "sender@example.com", m.Name, "address is used when name is missing")
		assert.True(t, strings.HasPrefix(m.HTML, "<pre>"))
		assert.Contains(t, m.HTML, "1 &lt; 2 &amp; 3 &gt; 2")
		assert.True(t, strings.HasSuffix(m.HTML, "</pre>"))
	})

	t.Run("encoded subject and charset", func(t *testing.T) {
		raw := rawMail(
			"From: =?UTF-8?Q?Caf=C3=A9?= <cafe@example.com>",
			"Subject: =?UTF-8?B?0J/RgNC40LLQtdGC?=",
			"Date: Wed, 03 Jan 2024 10:00:00 +0000",
			"Content-Type: text/html; charset=iso-8859-1",
			"Content-Transfer-Encoding: quoted-printable",
			"",
			"<p>caf=E9</p>",
			"",
		)

		m, err := ParseMail(raw)
		require.NoError(t, err)
		assert.Equal(t, "Café", m.Name)
		assert.Equal(t, "Привет", m.Subject)
		assert.Contains(t, m.HTML, "café")
	})

	t.Run("attachment ignored", func(t *testing.T) {
		raw := rawMail(
			"From: sender@example.com",
			"Subject: With attachment",
			"Date: Thu, 04 Jan 2024 10:00:00 +0000",
			`Content-Type: multipart/mixed; boundary="b2"`,
			"",
			"--b2",
			"Content-Type: text/html",
			"",
			"<p>body</p>",
			"--b2",
			"Content-Type: text/html",
			`Content-Disposition: attachment; filename="page.html"`,
			"",
			"<p>attached</p>",
			"--b2--",
			"",
		)

		m, err := ParseMail(raw)
		require.NoError(t, err)
		assert.Contains(t, m.HTML, "<p>body</p>")
		assert.NotContains(t, m.HTML, "attached")
	})

	t.Run("missing from", func(t *testing.T) {
		raw := rawMail(
			"Subject: No sender",
			"Date: Thu, 04 Jan 2024 10:00:00 +0000",
			"",
			"body",
		)
		_, err := ParseMail(raw)
		require.Error(t, err)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "missing from address", pe.Reason)
	})

	t.Run("missing date", func(t *testing.T) {
		raw := rawMail(
			"From: sender@example.com",
			"Subject: No date",
			"",
			"body",
		)
		_, err := ParseMail(raw)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseMail([]byte("\x00\x01 not a mail"))
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
	})
}

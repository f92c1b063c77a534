package mail

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

// GenID returns the stable article uid of a mail, hex sha256 of date and sender address.
// Subject and body don't affect it.
func GenID(m domain.Mail) string {
	sum := sha256.Sum256([]byte(m.Date + m.Address))
	return hex.EncodeToString(sum[:])
}

package helper

import (
	"crypto/rand"
	"fmt"
	"time"
)

const ticketAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateTicketID produces a public report identifier of the form
// RPT-<unix-millis>-<5 random base36 chars>. The suffix comes from crypto/rand;
// the unique index on ticketId catches the residual collision case and the
// caller retries with a fresh ID.
func GenerateTicketID() string {
	b := make([]byte, 5)
	_, _ = rand.Read(b)

	suffix := make([]byte, len(b))
	for i, v := range b {
		suffix[i] = ticketAlphabet[int(v)%len(ticketAlphabet)]
	}

	return fmt.Sprintf("RPT-%d-%s", time.Now().UnixMilli(), suffix)
}

package invoice

import (
	"fmt"
	"math/rand"
	"time"
)

const invoiceNumberPrefix = "INV"

// NewInvoiceNumber builds a display id: prefix + yymmdd + 4 random digits.
// The random suffix can collide within a day; the unique index on invoice_no
// is the only guard, and creation surfaces the conflict instead of retrying.
func NewInvoiceNumber(at time.Time) string {
	return fmt.Sprintf("%s%s%04d", invoiceNumberPrefix, at.Format("060102"), rand.Intn(10000))
}

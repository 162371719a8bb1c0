package helpers

import (
	"fmt"

	"github.com/healisdev/healis-api/pkg/mailer"
)

// EnsureRecipientAndEmail backfills the template data with the delivery
// address so older producers that only set To still render correctly.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

package resend

import (
	"fmt"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/devfort/behabitual/pkg/habit"
)

// Notifier sends reminder emails through Resend.
type Notifier struct {
	APIKey string
	From   string
	Email  string
}

func (n *Notifier) client() *resend.Client {
	return resend.NewClient(n.APIKey)
}

func (n *Notifier) from() string {
	if n.From != "" {
		return n.From
	}
	return "reminders@behabitual.dev"
}

func (n *Notifier) SendReminder(h habit.Habit) error {
	params := &resend.SendEmailRequest{
		From:    n.from(),
		To:      []string{n.Email},
		Subject: h.Description,
		Html:    fmt.Sprintf("<p>Time to do your thing: <strong>%s</strong></p>", h.Description),
	}
	_, err := n.client().Emails.Send(params)
	return err
}

func (n *Notifier) SendDataCollection(h habit.Habit, periods []habit.TimePeriod) error {
	today := habit.ToDate(time.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "<p>We're missing some data for <strong>%s</strong>:</p><ul>", h.Description)
	for _, tp := range periods {
		fmt.Fprintf(&b, "<li>%s</li>", tp.FriendlyDateRelativeTo(today))
	}
	b.WriteString("</ul>")

	params := &resend.SendEmailRequest{
		From:    n.from(),
		To:      []string{n.Email},
		Subject: fmt.Sprintf("How did %q go?", h.Description),
		Html:    b.String(),
	}
	_, err := n.client().Emails.Send(params)
	return err
}

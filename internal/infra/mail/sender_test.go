package mail

import (
	"context"
	"errors"
	"mime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/capacita-crm/internal/infra/queue"
	"gopkg.in/gomail.v2"
)

type capturingDialer struct {
	sent []*gomail.Message
	err  error
}

func (c *capturingDialer) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestNotifyLeadCaptured_SendsToSalesInbox(t *testing.T) {
	d := &capturingDialer{}
	s := NewEmailSender("smtp.local", 587, "u", "p", "crm@capacita.mx", "ventas@capacita.mx")
	s.dialer = d

	err := s.NotifyLeadCaptured(context.Background(), queue.LeadEvent{
		LeadID: "l1",
		Name:   "Ana López",
		Email:  "ana@example.com",
		Source: "web",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	assert.Equal(t, []string{"ventas@capacita.mx"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"ana@example.com"}, d.sent[0].GetHeader("Reply-To"))
	subject := d.sent[0].GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.Equal(t, "Nuevo lead: Ana López (web)", decoded)
}

func TestNotifyLeadCaptured_WrapsSMTPError(t *testing.T) {
	s := NewEmailSender("smtp.local", 587, "", "", "a@b.mx", "c@d.mx")
	s.dialer = &capturingDialer{err: errors.New("connection refused")}

	err := s.NotifyLeadCaptured(context.Background(), queue.LeadEvent{Name: "Ana"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestRenderLead_EscapesHTML(t *testing.T) {
	body, err := renderLead(LeadNotificationData{Name: "<script>x</script>", Email: "a@b.mx", Source: "web"})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

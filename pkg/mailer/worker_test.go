package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/clubhouse/pkg/mailer/templates"
)

type sentMail struct {
	to, subject, text, html string
}

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func body(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := NewWorker(s, nil)

	d := w.Handle(context.Background(), body(t, EmailJob{
		To:       "ada@example.com",
		Template: templates.RoleGranted,
		Data:     map[string]any{"Name": "Ada", "Role": "admin", "AppName": "Clubhouse"},
	}))

	assert.Equal(t, Ack, d)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "You are now an administrator at Clubhouse", s.sent[0].subject)
	assert.Contains(t, s.sent[0].text, "delete messages")
	assert.Contains(t, s.sent[0].html, "ada@example.com")
}

func TestWorker_PreRenderedBody(t *testing.T) {
	s := &fakeSender{}
	w := NewWorker(s, nil)

	d := w.Handle(context.Background(), body(t, EmailJob{To: " x@example.com ", Subject: "hi", Text: "plain"}))
	assert.Equal(t, Ack, d)
	require.Len(t, s.sent, 1)
	assert.Equal(t, sentMail{to: "x@example.com", subject: "hi", text: "plain"}, s.sent[0])
}

func TestWorker_Dispositions(t *testing.T) {
	ctx := context.Background()

	w := NewWorker(&fakeSender{}, nil)
	assert.Equal(t, Drop, w.Handle(ctx, []byte("{not json")))
	assert.Equal(t, Drop, w.Handle(ctx, body(t, EmailJob{Template: templates.Welcome})))
	assert.Equal(t, Drop, w.Handle(ctx, body(t, EmailJob{To: "a@b.c", Template: "nope"})))

	failing := NewWorker(&fakeSender{err: errors.New("mailgun 503")}, nil)
	assert.Equal(t, Retry, failing.Handle(ctx, body(t, EmailJob{To: "a@b.c", Template: templates.Welcome})))
}

func TestEmailJob_NormalizeFillsEmail(t *testing.T) {
	j := EmailJob{To: "a@b.c", Template: " Welcome "}
	j.Normalize()
	assert.Equal(t, "welcome", j.Template)
	assert.Equal(t, "a@b.c", j.Data["Email"])
}

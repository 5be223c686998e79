package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/clubhouse/pkg/mailer/templates"
)

// Disposition tells the queue consumer what to do with a delivery.
type Disposition int

const (
	Ack Disposition = iota
	// Drop rejects a delivery that can never succeed.
	Drop
	// Retry requeues a delivery after a transient send failure.
	Retry
)

var ErrNoRecipient = errors.New("email job has no recipient")

// Worker renders queued EmailJobs and hands them to a Sender.
type Worker struct {
	Sender      Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewWorker(sender Sender, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, Logger: logger, SendTimeout: 15 * time.Second}
}

// Handle processes one raw queue body.
func (w *Worker) Handle(ctx context.Context, body []byte) Disposition {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.log().WithError(err).Warn("bad email job payload")
		return Drop
	}
	job.Normalize()
	if job.To == "" {
		w.log().WithError(ErrNoRecipient).Warn("dropping email job")
		return Drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		s, t, h, err := templates.Render(job.Template, job.Data)
		if err != nil {
			w.log().WithError(err).WithField("template", job.Template).Warn("render failed")
			return Drop
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		w.log().WithError(err).WithField("template", job.Template).Error("send failed")
		return Retry
	}
	w.log().WithField("template", job.Template).Info("email sent")
	return Ack
}

func (w *Worker) log() *logrus.Logger {
	if w.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		w.Logger = l
	}
	return w.Logger
}

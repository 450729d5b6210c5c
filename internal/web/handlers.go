package web

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/iammorganparry/interactive-feedback/internal/feedback"
)

// handleForm handles GET /
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	page := formPage{Prompt: s.req.Prompt}
	for i, opt := range s.req.Options {
		page.Options = append(page.Options, formOption{Index: i, Label: opt})
	}
	if err := render(w, "form.html", page); err != nil {
		s.logger.Error("render form", "error", err, "request_id", requestID(r))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// handleSubmit handles POST /submit. The first submission wins; later ones are
// acknowledged and dropped.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	text := composeSubmission(s.req.Options, s.parseForm(w, r))

	switch {
	case s.State() == TimedOut:
		s.logger.Warn("submission after timeout ignored", "request_id", requestID(r))
	case s.pending.Complete(text):
		s.transition(Completed)
		s.logger.Info("feedback submitted", "request_id", requestID(r), "length", len(text))
	default:
		s.logger.Info("duplicate submission ignored", "request_id", requestID(r))
	}

	if err := render(w, "submitted.html", nil); err != nil {
		s.logger.Error("render acknowledgement", "error", err, "request_id", requestID(r))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// parseForm never fails: an unreadable or malformed body counts as an empty form.
func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) url.Values {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		s.logger.Warn("malformed submission treated as empty", "error", err, "request_id", requestID(r))
		return url.Values{}
	}
	return r.PostForm
}

// composeSubmission maps option_<i> fields onto the request's options by position and
// feedback_text onto the free text.
func composeSubmission(options []string, form url.Values) string {
	sel := feedback.NewSelectionSet(len(options))
	for i := range options {
		if form.Has(fmt.Sprintf("option_%d", i)) {
			sel.Add(i)
		}
	}
	return feedback.Compose(options, sel, form.Get("feedback_text"))
}

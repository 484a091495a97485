package session

import (
	"github.com/SaiNageswarS/docqa-boot/backend"
	"github.com/SaiNageswarS/docqa-boot/document"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-collection-boot/async"
	"go.uber.org/zap"
)

type pipeline struct {
	phase     Phase
	file      *document.Candidate
	language  document.Language
	summary   *backend.Summary
	lastError string

	// epoch is bumped by every Reset and every dispatched Summarize. A
	// summarize result is applied only if the epoch it was dispatched in is
	// still current.
	epoch uint64
}

func (p *pipeline) documentID() string {
	if p.summary == nil {
		return ""
	}
	return p.summary.DocumentID
}

// SelectFile validates a candidate and makes it the current selection.
// A rejected candidate sets the pipeline error and keeps the previous selection,
// in any phase. A valid candidate is refused while a summary is in flight.
func (c *Controller) SelectFile(candidate document.Candidate) error {
	return c.do(func() error {
		p := &c.pipeline
		if err := document.Validate(candidate); err != nil {
			p.lastError = UnsupportedFileTypeMessage
			c.report(FileRejected)
			return err
		}

		if p.phase == Summarizing {
			return ErrSummarizeInFlight
		}

		file := candidate
		file.Data = append([]byte(nil), candidate.Data...)
		p.file = &file
		p.lastError = ""
		p.phase = Selecting
		c.report(FileSelected)
		return nil
	})
}

// SetLanguage changes the language used by the next summarize and answer calls.
func (c *Controller) SetLanguage(lang document.Language) error {
	if !lang.Valid() {
		return ErrUnsupportedLanguage
	}

	return c.do(func() error {
		c.pipeline.language = lang
		c.report(LanguageChanged)
		return nil
	})
}

// Summarize dispatches one summarize call for the selected file. It is a no-op
// returning ErrSummarizeInFlight while a call is outstanding.
func (c *Controller) Summarize() error {
	return c.do(func() error {
		p := &c.pipeline
		if p.phase == Summarizing {
			return ErrSummarizeInFlight
		}
		if p.file == nil {
			return ErrNoFile
		}

		p.lastError = ""
		p.summary = nil
		p.phase = Summarizing
		p.epoch++

		epoch := p.epoch
		req := backend.SummarizeRequest{
			FileName:  p.file.Name,
			MediaType: p.file.MediaType,
			Data:      p.file.Data,
			Language:  p.language,
		}

		logger.Info("Dispatching summarize request",
			zap.String("file", req.FileName),
			zap.String("lang", string(req.Language)),
			zap.Uint64("epoch", epoch))

		task := async.Go(func() (*backend.Summary, error) {
			return c.backend.Summarize(c.ctx, req)
		})
		go func() {
			summary, err := async.Await(task)
			c.post(func() { c.resolveSummary(epoch, summary, err) })
		}()

		c.report(SummarizeStarted)
		return nil
	})
}

func (c *Controller) resolveSummary(epoch uint64, summary *backend.Summary, err error) {
	p := &c.pipeline
	if epoch != p.epoch || p.phase != Summarizing {
		logger.Info("Discarding stale summarize result", zap.Uint64("epoch", epoch), zap.Uint64("current", p.epoch))
		c.report(SummaryDiscarded)
		return
	}

	if err == nil && (summary == nil || summary.DocumentID == "") {
		err = errMissingDocumentID
	}

	if err != nil {
		logger.Error("Summarize failed", zap.Error(err))
		p.phase = Selecting
		p.lastError = backend.Detail(err, SummarizeFailedMessage)
		c.report(SummaryFailed)
		return
	}

	p.summary = summary.Clone()
	p.lastError = ""
	p.phase = Summarized
	c.report(SummaryReady)
}

// Reset discards the file, the summary and the pipeline error. A summarize
// call still in flight will have its result discarded.
func (c *Controller) Reset() error {
	return c.do(func() error {
		p := &c.pipeline
		p.epoch++
		p.phase = Idle
		p.file = nil
		p.summary = nil
		p.lastError = ""
		c.report(PipelineReset)
		return nil
	})
}

package browser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/browser"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/webgrab/webgrab/internal/model"
)

// Recoverable attempt failures. Both are retried by the run layer.
var (
	ErrButtonNotFound  = errors.New("button not found")
	ErrDownloadTimeout = errors.New("download timeout")
)

// downloadTracker consumes CDP download events for the session. Targets are
// processed one at a time, so at most one download is tracked at once.
type downloadTracker struct {
	mu    sync.Mutex
	armed bool
	guid  string
	name  string
	done  chan downloadResult
}

type downloadResult struct {
	guid     string
	name     string
	canceled bool
}

func newDownloadTracker() *downloadTracker {
	return &downloadTracker{}
}

// arm resets the tracker before a click. The next download to begin is the
// one we wait for.
func (t *downloadTracker) arm() <-chan downloadResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = true
	t.guid = ""
	t.name = ""
	t.done = make(chan downloadResult, 1)
	return t.done
}

// disarm stops tracking, returning the GUID of a download that began but
// never completed, if any.
func (t *downloadTracker) disarm() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.armed = false
	return t.guid
}

// handle is registered with chromedp.ListenBrowser.
func (t *downloadTracker) handle(ev interface{}) {
	switch e := ev.(type) {
	case *browser.EventDownloadWillBegin:
		t.mu.Lock()
		if t.armed && t.guid == "" {
			t.guid = e.GUID
			t.name = e.SuggestedFilename
		}
		t.mu.Unlock()
	case *browser.EventDownloadProgress:
		t.mu.Lock()
		if t.armed && e.GUID == t.guid {
			switch e.State {
			case browser.DownloadProgressStateCompleted:
				t.armed = false
				t.done <- downloadResult{guid: t.guid, name: t.name}
			case browser.DownloadProgressStateCanceled:
				t.armed = false
				t.done <- downloadResult{guid: t.guid, name: t.name, canceled: true}
			}
		}
		t.mu.Unlock()
	}
}

// TriggerDownload locates the elements matching selector on the current
// page, clicks the first match, and waits for the resulting download to
// complete within the configured timeout. On success the file is renamed
// from its transfer GUID to its suggested filename (uniquified on collision)
// inside the download directory.
func (s *Session) TriggerDownload(ctx context.Context, selector string) (model.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return model.FileInfo{}, err
	}

	var count int
	qctx, qcancel := s.boundedPageContext()
	err := chromedp.Run(qctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, selector), &count),
	)
	qcancel()
	if err != nil {
		return model.FileInfo{}, fmt.Errorf("query selector %q: %w", selector, err)
	}
	if count == 0 {
		return model.FileInfo{}, ErrButtonNotFound
	}
	if count > 1 {
		s.log.Debug("selector matched multiple elements, clicking the first",
			zap.String("selector", selector), zap.Int("matches", count))
	}

	done := s.downloads.arm()

	tctx, cancel := context.WithTimeout(s.ctx, s.cfg.DownloadTimeout)
	defer cancel()

	// ByQuery resolves to the first match in document order.
	if err := chromedp.Run(tctx, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		s.abortPending()
		return model.FileInfo{}, fmt.Errorf("click %q: %w", selector, err)
	}

	select {
	case res := <-done:
		if res.canceled {
			s.removePartial(res.guid)
			return model.FileInfo{}, fmt.Errorf("download canceled by browser")
		}
		return s.finishDownload(res)
	case <-tctx.Done():
		s.abortPending()
		return model.FileInfo{}, ErrDownloadTimeout
	}
}

// finishDownload moves the completed transfer from its GUID name to the
// suggested filename and records its size.
func (s *Session) finishDownload(res downloadResult) (model.FileInfo, error) {
	src := filepath.Join(s.cfg.DownloadDir, res.guid)
	name := res.name
	if name == "" {
		name = res.guid
	}
	dst := uniquePath(s.cfg.DownloadDir, name)

	if err := os.Rename(src, dst); err != nil {
		return model.FileInfo{}, fmt.Errorf("move download into place: %w", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		return model.FileInfo{}, fmt.Errorf("stat downloaded file: %w", err)
	}

	s.log.Info("download complete",
		zap.String("file", filepath.Base(dst)),
		zap.Int64("bytes", info.Size()))
	return model.FileInfo{
		Name: filepath.Base(dst),
		Path: dst,
		Size: info.Size(),
	}, nil
}

// abortPending cancels an in-flight transfer, if one began, and removes its
// partial file so a failed attempt never leaves data behind.
func (s *Session) abortPending() {
	guid := s.downloads.disarm()
	if guid == "" {
		return
	}
	cctx, cancel := s.boundedPageContext()
	defer cancel()
	if err := chromedp.Run(cctx, browser.CancelDownload(guid)); err != nil {
		s.log.Debug("cancel download", zap.String("guid", guid), zap.Error(err))
	}
	s.removePartial(guid)
}

func (s *Session) removePartial(guid string) {
	for _, p := range []string{
		filepath.Join(s.cfg.DownloadDir, guid),
		filepath.Join(s.cfg.DownloadDir, guid+".crdownload"),
	} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			s.log.Warn("remove partial download", zap.String("path", p), zap.Error(err))
		}
	}
}

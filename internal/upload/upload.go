// Package upload pushes a normalized training plan to intervals.icu, one
// workout at a time.
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/plansync/internal/models"
)

// DefaultDelay is the fixed pause between consecutive uploads. intervals.icu
// has no published rate limit for the events endpoint, so pacing stays
// deliberately conservative.
const DefaultDelay = 200 * time.Millisecond

// ProgressFunc is invoked after every upload attempt with the number of
// completed items and the batch total.
type ProgressFunc func(done, total int)

// Result aggregates the outcome of one plan upload. Items are independent:
// failures do not halt the batch, and succeeded items stay uploaded on the
// remote side.
type Result struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Uploader sends workouts to intervals.icu sequentially with a fixed
// inter-request delay.
type Uploader struct {
	client *Client
	delay  time.Duration
	log    *slog.Logger
}

// New creates an Uploader. A non-positive delay selects DefaultDelay.
func New(client *Client, delay time.Duration, log *slog.Logger) *Uploader {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Uploader{client: client, delay: delay, log: log}
}

// UploadPlan uploads every workout of the plan in list order, strictly one
// in-flight request at a time. A later workout never starts before the
// earlier one's response is observed and the delay has elapsed. The
// returned error is non-nil iff at least one item failed; the Result is
// populated either way. progress may be nil.
func (u *Uploader) UploadPlan(ctx context.Context, plan *models.TrainingPlan, pm models.PaceMapping, progress ProgressFunc) (*Result, error) {
	result := &Result{}
	total := len(plan.Workouts)

	for i, w := range plan.Workouts {
		if i > 0 {
			time.Sleep(u.delay)
		}

		ev := BuildEvent(w, pm)
		if err := u.client.CreateEvent(ctx, ev); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s (%s): %s", w.Name, w.Date, err.Error()))
			u.log.Warn("workout upload failed", "name", w.Name, "date", w.Date, "error", err)
		} else {
			result.Succeeded++
		}

		if progress != nil {
			progress(i+1, total)
		}
	}

	u.log.Info("plan upload finished",
		"plan", plan.Name,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	if result.Failed > 0 {
		return result, fmt.Errorf("%d of %d workouts failed to upload: %s",
			result.Failed, total, strings.Join(result.Errors, "; "))
	}
	return result, nil
}

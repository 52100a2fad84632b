// Package pipeline - oneclick.go runs the end-to-end apply flow for one run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/jonathan/apply-agent/internal/authwall"
	"github.com/jonathan/apply-agent/internal/browser"
	"github.com/jonathan/apply-agent/internal/fill"
	"github.com/jonathan/apply-agent/internal/gate"
	"github.com/jonathan/apply-agent/internal/ingest"
	"github.com/jonathan/apply-agent/internal/runbus"
	"github.com/jonathan/apply-agent/internal/tailor"
	"github.com/jonathan/apply-agent/internal/types"
)

const approvalInstructions = "Review the prefilled application in the browser window. " +
	"Fix anything that looks wrong, then continue the run to capture the final state."

const payloadGateInstructions = "Tailoring produced no usable resume payload. " +
	"The run stopped before filling; review the model output and start a new run."

// Orchestrator wires the run registry to the collaborators a run needs.
type Orchestrator struct {
	Runs     *Registry
	Bus      *runbus.Bus
	Gates    *gate.Registry
	Driver   browser.Driver
	Gateway  *authwall.Gateway
	Tailor   tailor.Client // nil disables tailoring
	FilesDir string
	Scrape   *ingest.Options
}

// Request describes one application attempt.
type Request struct {
	URL         string
	BaseResume  string // resume content handed to the tailoring model
	ResumePath  string // file uploaded into the application form
	Answers     types.ApplicantAnswers
	Constraints map[string]string
}

// Start validates the request, registers a run, and launches its worker.
// The returned run is already observable on the bus and gate registry.
func (o *Orchestrator) Start(ctx context.Context, req Request) (*Run, error) {
	req.Answers = req.Answers.Normalize()
	if err := req.Answers.Validate(); err != nil {
		return nil, fmt.Errorf("invalid applicant answers: %w", err)
	}
	run, runCtx := o.Runs.Create(ctx, req.URL)
	go o.execute(runCtx, run, req)
	return run, nil
}

func (o *Orchestrator) execute(ctx context.Context, run *Run, req Request) {
	defer close(run.done)

	job := o.scrapeJob(ctx, run)
	if !o.runTailoring(ctx, run, req, job) {
		return
	}

	run.setStatus(StatusAuthenticating)
	res, err := o.Gateway.Ensure(ctx, o.Driver, run.URL, run.ID)
	if err != nil {
		o.fail(run, fmt.Errorf("authentication phase failed: %w", err))
		return
	}
	defer func() { _ = res.Context.Close() }()

	o.checkpoint(run, res.Page, run.ID+".png")

	run.setStatus(StatusFilling)
	fill.StrategyFor(run.URL).Prefill(res.Page, req.ResumePath, req.Answers, run.ID, o.Bus)

	run.setStatus(StatusAwaitingApproval)
	o.Bus.Emit(run.ID, runbus.Gate(approvalInstructions))
	if err := o.Gates.For(run.ID).Wait(ctx); err != nil {
		o.fail(run, fmt.Errorf("run cancelled while awaiting approval: %w", err))
		return
	}

	run.setStatus(StatusFinalizing)
	o.checkpoint(run, res.Page, run.ID+"_final.png")
	o.Bus.Emit(run.ID, runbus.Done(true))
	run.setStatus(StatusDone)
}

// scrapeJob builds the job context for tailoring. A nil Scrape disables
// scraping. Scrape failures degrade to a URL-only context; the posting may
// be behind the same wall the gateway will clear later.
func (o *Orchestrator) scrapeJob(ctx context.Context, run *Run) *types.JobContext {
	if o.Scrape == nil {
		return &types.JobContext{URL: run.URL}
	}
	o.Bus.Emit(run.ID, runbus.Log(runbus.LevelInfo, "Scraping job posting..."))
	job, err := ingest.JobContext(ctx, run.URL, o.Scrape)
	if err != nil {
		o.Bus.Emit(run.ID, runbus.Log(runbus.LevelWarn, fmt.Sprintf("Could not scrape posting: %v", err)))
		return &types.JobContext{URL: run.URL}
	}
	o.Bus.Emit(run.ID, runbus.Log(runbus.LevelInfo, fmt.Sprintf("Posting: %s at %s", job.Title, job.Company)))
	return job
}

// runTailoring asks the model for a tailored resume payload and reports
// whether the run may proceed. When no usable payload comes back it emits the
// run's gate event and stops the run before the fill phase; nothing is filled
// without a payload a human could have reviewed.
func (o *Orchestrator) runTailoring(ctx context.Context, run *Run, req Request, job *types.JobContext) bool {
	if o.Tailor == nil || req.BaseResume == "" {
		return true
	}
	o.Bus.Emit(run.ID, runbus.Log(runbus.LevelInfo, "Tailoring resume..."))
	result := o.Tailor.Tailor(ctx, *job, req.BaseResume, req.Constraints)

	payload := tailor.ExtractPayload(result.RawText)
	if payload == nil && !result.Degraded && len(result.TailoredResume) > 0 {
		payload = &tailor.Payload{
			Keywords: result.KeywordIntegration,
			Resume:   result.TailoredResume,
		}
	}
	if payload == nil {
		run.setStatus(StatusAwaitingApproval)
		o.Bus.Emit(run.ID, runbus.Gate(payloadGateInstructions))
		return false
	}

	o.Bus.Emit(run.ID, runbus.Log(runbus.LevelInfo,
		fmt.Sprintf("Tailored resume ready (%d keywords integrated)", len(payload.Keywords))))
	o.saveTailored(run, payload)
	return true
}

// saveTailored writes the tailored payload next to the run's screenshots so
// the reviewer can download it.
func (o *Orchestrator) saveTailored(run *Run, payload *tailor.Payload) {
	if o.FilesDir == "" {
		return
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return
	}
	path := filepath.Join(o.FilesDir, run.ID+"_resume.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Printf("could not save tailored resume for run %s: %v", run.ID, err)
	}
}

// checkpoint captures a screenshot and publishes its file name. Screenshot
// failures are logged on the bus, never fatal.
func (o *Orchestrator) checkpoint(run *Run, page browser.Page, name string) {
	if o.FilesDir == "" {
		return
	}
	path := filepath.Join(o.FilesDir, name)
	if err := page.Screenshot(path); err != nil {
		o.Bus.Emit(run.ID, runbus.Log(runbus.LevelWarn, fmt.Sprintf("Screenshot failed: %v", err)))
		return
	}
	o.Bus.Emit(run.ID, runbus.Screenshot("/files/"+name))
}

func (o *Orchestrator) fail(run *Run, err error) {
	o.Bus.Emit(run.ID, runbus.Log(runbus.LevelError, err.Error()))
	o.Bus.Emit(run.ID, runbus.Done(false))
	run.setStatus(StatusFailed)
}

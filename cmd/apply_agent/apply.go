package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/apply-agent/internal/config"
	"github.com/jonathan/apply-agent/internal/pipeline"
	"github.com/jonathan/apply-agent/internal/runbus"
	"github.com/jonathan/apply-agent/internal/types"
)

var applyFlags struct {
	url        string
	resumeFile string
	baseResume string
	answers    types.ApplicantAnswers
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Run one application end to end from the terminal",
	Long: `Apply to a single posting: tailor the resume, clear any login wall,
prefill the form, then pause so you can review the browser window.
Press Enter at the approval prompt to finalize.`,
	RunE: runApply,
}

func init() {
	f := applyCmd.Flags()
	f.StringVar(&applyFlags.url, "url", "", "Application URL (required)")
	f.StringVar(&applyFlags.resumeFile, "resume-file", "", "Resume file to upload into the form")
	f.StringVar(&applyFlags.baseResume, "base-resume", "", "Resume content file handed to the tailoring model")
	f.StringVar(&applyFlags.answers.FullName, "name", "", "Full name (required)")
	f.StringVar(&applyFlags.answers.Email, "email", "", "Email address (required)")
	f.StringVar(&applyFlags.answers.Phone, "phone", "", "Phone number")
	f.StringVar(&applyFlags.answers.City, "city", "", "City")
	f.StringVar(&applyFlags.answers.State, "state", "", "State or province")
	f.StringVar(&applyFlags.answers.LinkedIn, "linkedin", "", "LinkedIn profile URL")
	f.StringVar(&applyFlags.answers.GitHub, "github", "", "GitHub profile URL")
	f.StringVar(&applyFlags.answers.Website, "website", "", "Personal website URL")
	f.BoolVar(&applyFlags.answers.USCitizen, "us-citizen", false, "Authorized to work in the US")
	f.BoolVar(&applyFlags.answers.NeedsSponsorship, "needs-sponsorship", false, "Requires visa sponsorship")
	f.BoolVar(&applyFlags.answers.ProtectedVeteran, "veteran", false, "Protected veteran")
	f.BoolVar(&applyFlags.answers.HasDisability, "disability", false, "Has a disability (CC-305)")
	_ = applyCmd.MarkFlagRequired("url")
	_ = applyCmd.MarkFlagRequired("name")
	_ = applyCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	ctx := cmd.Context()

	orch, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to wire orchestrator: %w", err)
	}
	defer cleanup()

	req := pipeline.Request{
		URL:        applyFlags.url,
		ResumePath: applyFlags.resumeFile,
		Answers:    applyFlags.answers,
	}
	if applyFlags.baseResume != "" {
		data, err := os.ReadFile(applyFlags.baseResume)
		if err != nil {
			return fmt.Errorf("failed to read base resume: %w", err)
		}
		req.BaseResume = string(data)
	}

	run, err := orch.Start(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("Run %s started for %s\n", run.ID, run.URL)

	streamCtx, stop := context.WithCancel(ctx)
	defer stop()
	stdin := bufio.NewReader(os.Stdin)

	// Runs that stop at a gate emit no done frame; end the stream once the
	// run goroutine exits, after queued frames have had a moment to drain.
	go func() {
		<-run.Done()
		time.Sleep(200 * time.Millisecond)
		stop()
	}()

	for frame := range orch.Bus.Stream(streamCtx, run.ID) {
		env, ok := decodeFrame(frame)
		if !ok {
			continue
		}
		switch env.Type {
		case runbus.TypeLog:
			fmt.Printf("[%s] %s\n", env.Level, env.Message)
		case runbus.TypeScreenshot:
			fmt.Printf("Screenshot: %s\n", env.URL)
		case runbus.TypeAuthGate:
			fmt.Printf("\n== Sign-in needed (%s) ==\n%s\n\n", env.Provider, env.Instructions)
		case runbus.TypeGate:
			fmt.Printf("\n== Action needed ==\n%s\nPress Enter to continue...", env.Instructions)
			_, _ = stdin.ReadString('\n')
			orch.Gates.For(run.ID).Signal()
		case runbus.TypeDone:
			if env.OK != nil && *env.OK {
				fmt.Println("Run finished.")
			} else {
				fmt.Println("Run failed.")
			}
			stop()
		}
	}

	<-run.Done()
	if run.Status() == pipeline.StatusFailed {
		return fmt.Errorf("run %s failed", run.ID)
	}
	return nil
}

// decodeFrame unwraps a bus SSE frame back into its envelope.
func decodeFrame(frame []byte) (runbus.Envelope, bool) {
	var env runbus.Envelope
	data := bytes.TrimSpace(bytes.TrimPrefix(frame, []byte("data: ")))
	if err := json.Unmarshal(data, &env); err != nil {
		return env, false
	}
	return env, true
}

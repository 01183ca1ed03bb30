package model

import (
	"testing"
	"time"
)

func TestJobStatusValid(t *testing.T) {
	tests := []struct {
		status JobStatus
		valid  bool
	}{
		{JobRunning, true},
		{JobCompleted, true},
		{JobFailed, true},
		{"PENDING", false},
		{"completed", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("JobStatus(%q).Valid() = %t, want %t", tt.status, got, tt.valid)
		}
	}
}

func TestJobStatusTerminal(t *testing.T) {
	if JobRunning.Terminal() {
		t.Error("RUNNING reported terminal")
	}
	if !JobCompleted.Terminal() || !JobFailed.Terminal() {
		t.Error("COMPLETED and FAILED must be terminal")
	}
}

func TestParseJobStatus(t *testing.T) {
	got, err := ParseJobStatus("COMPLETED")
	if err != nil {
		t.Fatalf("ParseJobStatus() error = %v", err)
	}
	if got != JobCompleted {
		t.Errorf("ParseJobStatus() = %s, want %s", got, JobCompleted)
	}

	if _, err := ParseJobStatus("DONE"); err == nil {
		t.Error("ParseJobStatus(DONE) error = nil, want failure")
	}
}

func TestJobTransitions(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	job := Job{Status: JobRunning}
	job.Complete(at)
	if job.Status != JobCompleted || job.CompletedAt == nil || !job.CompletedAt.Equal(at) {
		t.Errorf("Complete() left job %+v", job)
	}

	job = Job{Status: JobRunning}
	job.Fail(at)
	if job.Status != JobFailed || job.CompletedAt == nil || !job.CompletedAt.Equal(at) {
		t.Errorf("Fail() left job %+v", job)
	}
}

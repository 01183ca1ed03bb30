//-------------------------------------------------------------------------
//
// riskgen - synthetic financing risk data generator
//
// Portions copyright (c) 2025 - 2026, FO Data Labs
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package model defines the domain entities for the risk-snapshot pipeline.
package model

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle state of a pipeline job. The set is closed:
// a job starts RUNNING and ends in exactly one of COMPLETED or FAILED.
type JobStatus string

const (
	JobRunning   JobStatus = "RUNNING"
	JobCompleted JobStatus = "COMPLETED"
	JobFailed    JobStatus = "FAILED"
)

// Valid reports whether s is one of the defined statuses.
func (s JobStatus) Valid() bool {
	switch s {
	case JobRunning, JobCompleted, JobFailed:
		return true
	}
	return false
}

// Terminal reports whether s is an end state.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobCompleted, JobFailed:
		return true
	case JobRunning:
		return false
	}
	return false
}

func (s JobStatus) String() string {
	return string(s)
}

// ParseJobStatus converts a stored status string back into a JobStatus.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown job status: %q", raw)
	}
	return s, nil
}

// Job records one execution of the risk-snapshot pipeline. Jobs are
// append-only: status transitions are persisted as a fresh row and the
// store's replace-by-key semantics resolve to the latest write.
type Job struct {
	ID              string
	SnapshotID      string
	SnapshotVersion uint64
	JobType         string
	Status          JobStatus
	CreatedAt       time.Time
	CompletedAt     *time.Time // nil while RUNNING
}

// Complete transitions the job to COMPLETED at the given time.
func (j *Job) Complete(at time.Time) {
	j.Status = JobCompleted
	j.CompletedAt = &at
}

// Fail transitions the job to FAILED at the given time.
func (j *Job) Fail(at time.Time) {
	j.Status = JobFailed
	j.CompletedAt = &at
}

package audio

import "time"

// BatchResult records the outcome of one ConversionJob
type BatchResult struct {
	Job       ConversionJob
	Succeeded bool
	Err       error
}

// NewBatchResult builds a result from the error returned by the converter
func NewBatchResult(job ConversionJob, err error) BatchResult {
	return BatchResult{
		Job:       job,
		Succeeded: err == nil,
		Err:       err,
	}
}

// ErrorMessage returns the failure text, or "" for a successful job
func (r BatchResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// BatchReport aggregates the results of a batch run
type BatchReport struct {
	ID        string
	InputDir  string
	OutputDir string
	Results   []BatchResult
	StartedAt time.Time
	Duration  time.Duration
}

// Total returns the number of jobs that ran
func (r *BatchReport) Total() int {
	return len(r.Results)
}

// Succeeded returns the number of successful jobs
func (r *BatchReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Succeeded {
			n++
		}
	}
	return n
}

// Failed returns the number of failed jobs
func (r *BatchReport) Failed() int {
	return r.Total() - r.Succeeded()
}

// FailedResults returns the failed results in run order
func (r *BatchReport) FailedResults() []BatchResult {
	var failed []BatchResult
	for _, res := range r.Results {
		if !res.Succeeded {
			failed = append(failed, res)
		}
	}
	return failed
}

// OK reports whether every job succeeded
func (r *BatchReport) OK() bool {
	return r.Failed() == 0
}

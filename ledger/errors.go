/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package ledger

import (
	"errors"
	"fmt"
)

// ErrPartialWrite marks an apply in which some cell writes committed and
// others failed. The apply result lists the failed cells; committed
// siblings are not rolled back.
var ErrPartialWrite = errors.New("some cell writes failed")

// Step identifies one reconciliation sub-step of an apply.
type Step string

// Apply sub-steps, in execution order.
const (
	StepSheet  Step = "sheet"
	StepRows   Step = "rows"
	StepColumn Step = "column"
	StepValues Step = "values"
)

// StepError reports the sub-step a failed apply stopped at.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the sub-step err stopped at, or an empty Step when
// err did not come from an apply sub-step.
func FailedStep(err error) Step {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}

	return ""
}

// CellWriteError records one analyte value that could not be written
// after the batch write degraded to per-cell writes.
type CellWriteError struct {
	Analyte string
	Cell    string
	Err     error
}

func (e CellWriteError) Error() string {
	return fmt.Sprintf("writing %s for %q: %v", e.Cell, e.Analyte, e.Err)
}

func (e CellWriteError) Unwrap() error {
	return e.Err
}

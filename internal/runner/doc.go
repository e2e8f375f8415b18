// Package runner executes an ordered list of reload stages. The sequence is
// strictly serial: stage N+1 never starts before stage N has completed or
// been skipped. A required stage that cannot run fails the whole run and all
// later stages are marked skipped; an optional stage whose script is missing
// is skipped and the run continues.
package runner

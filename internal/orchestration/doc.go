// Package orchestration runs the scheduling strategies one after another on
// the same input and checks that they agree. It decouples the run loop from
// presentation via the ProgressReporter and ResultPresenter interfaces.
package orchestration

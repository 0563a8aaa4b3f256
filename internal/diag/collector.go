// Package diag collects best-effort diagnostics. Every probe may fail; a
// failed probe leaves its key out of the report and never stops the others.
package diag

import (
	"errors"
	"fmt"

	"devkit/internal/logger"
)

// Probe is one named, independently failing query.
type Probe struct {
	Name string
	Run  func() (any, error)
}

// Outcome is the result of running a Probe.
type Outcome struct {
	Name  string
	Value any
	Err   error
}

// OK reports whether the probe succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Step is one link of a Chain. It sees the entries recorded by the steps
// before it and returns the entries it adds.
type Step func(prev *Report) (*Report, error)

var errEmptyChain = errors.New("no step of the chain succeeded")

// Execute runs p with debug and warning output silenced. The previous
// logger state is restored on every exit path, and a panic in p becomes
// the outcome's error.
func Execute(p Probe) (o Outcome) {
	defer logger.Silence()()
	defer func() {
		if r := recover(); r != nil {
			o = Outcome{Name: p.Name, Err: fmt.Errorf("%s panicked: %v", p.Name, r)}
		}
	}()

	v, err := p.Run()
	if err != nil {
		return Outcome{Name: p.Name, Err: err}
	}
	return Outcome{Name: p.Name, Value: v}
}

// Collect runs the probes in order and folds the successful outcomes into
// a Report. Keys appear in probe order.
func Collect(probes ...Probe) *Report {
	report := NewReport()
	for _, p := range probes {
		o := Execute(p)
		if !o.OK() {
			logger.Debug("[DEBUG] Probe %s failed: %v\n", o.Name, o.Err)
			continue
		}
		report.Set(o.Name, o.Value)
	}
	return report
}

// Chain groups dependent steps under one key. Steps run in order and the
// chain stops at the first failing step, keeping what earlier steps found.
// When the first step fails the whole probe fails.
func Chain(name string, steps ...Step) Probe {
	return Probe{
		Name: name,
		Run: func() (any, error) {
			group := NewReport()
			for i, step := range steps {
				entries, err := step(group)
				if err != nil {
					if i == 0 {
						return nil, err
					}
					logger.Debug("[DEBUG] %s: step %d failed: %v\n", name, i+1, err)
					break
				}
				group.Merge(entries)
			}
			if group.Len() == 0 {
				return nil, errEmptyChain
			}
			return group, nil
		},
	}
}

// Value is a Step recording a single entry.
func Value(key string, fn func(prev *Report) (string, error)) Step {
	return func(prev *Report) (*Report, error) {
		v, err := fn(prev)
		if err != nil {
			return nil, err
		}
		r := NewReport()
		r.Set(key, v)
		return r, nil
	}
}

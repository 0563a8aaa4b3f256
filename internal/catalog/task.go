// Package catalog maps user-supplied selection tokens onto installable tasks.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Task is one selectable component as offered by the installer.
type Task struct {
	Index       int
	Name        string
	Description string
}

// ErrUnresolvable is returned by ResolveOne for tokens that match no task.
var ErrUnresolvable = errors.New("can not find component")

type tokenKind int

const (
	kindInvalid tokenKind = iota
	kindIndex
	kindName
)

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	wordPattern   = regexp.MustCompile(`^\w+$`)
)

// classify decides which key a token is matched against. All-digit tokens
// are indices only, even when a task happens to be named with digits.
func classify(token string) tokenKind {
	switch {
	case digitsPattern.MatchString(token):
		return kindIndex
	case wordPattern.MatchString(token):
		return kindName
	default:
		return kindInvalid
	}
}

func findByIndex(tasks []Task, index int) (Task, bool) {
	for _, t := range tasks {
		if t.Index == index {
			return t, true
		}
	}
	return Task{}, false
}

func findByName(tasks []Task, name string) (Task, bool) {
	for _, t := range tasks {
		if t.Name == name {
			return t, true
		}
	}
	return Task{}, false
}

// ResolveOne looks a single token up in tasks.
func ResolveOne(tasks []Task, token string) (Task, error) {
	var (
		task Task
		ok   bool
	)
	switch classify(token) {
	case kindIndex:
		// Out-of-range numbers can not match any index.
		if index, err := strconv.Atoi(token); err == nil {
			task, ok = findByIndex(tasks, index)
		}
	case kindName:
		task, ok = findByName(tasks, token)
	}
	if !ok {
		return Task{}, fmt.Errorf("%w %q", ErrUnresolvable, token)
	}
	return task, nil
}

// Resolve joins tokens, re-splits them on whitespace and resolves each
// piece in order. Unresolvable pieces are reported on out and skipped;
// a task selected twice is kept at its first position only.
func Resolve(tasks []Task, tokens []string, out io.Writer) []Task {
	red := color.New(color.FgRed)
	seen := make(map[string]bool)

	var resolved []Task
	for _, token := range strings.Fields(strings.Join(tokens, " ")) {
		task, err := ResolveOne(tasks, token)
		if err != nil {
			red.Fprintf(out, "Can not find component %q\n", token)
			continue
		}
		if seen[task.Name] {
			continue
		}
		seen[task.Name] = true
		resolved = append(resolved, task)
	}
	return resolved
}

// Names returns the task names in order.
func Names(tasks []Task) []string {
	names := make([]string, 0, len(tasks))
	for _, t := range tasks {
		names = append(names, t.Name)
	}
	return names
}

// SortedByIndex returns a copy of tasks ordered by Index.
func SortedByIndex(tasks []Task) []Task {
	sorted := append([]Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	return sorted
}

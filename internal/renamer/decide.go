// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package renamer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Question is a yes/no decision the run needs from its user.
type Question struct {
	Prompt     string
	DefaultYes bool
}

var (
	AskBackup                = Question{Prompt: "Do you want to back up files first?", DefaultYes: true}
	AskNewBackupAnyway       = Question{Prompt: "Create new backup anyway?", DefaultYes: false}
	AskContinueWithoutBackup = Question{Prompt: "Continue without backup?", DefaultYes: false}
	AskProceed               = Question{Prompt: "Proceed with renaming?", DefaultYes: true}
)

// Decider answers questions. The run blocks on each call.
type Decider interface {
	Confirm(q Question) (bool, error)
}

// Always answers every question with the same value.
type Always bool

// Confirm implements Decider.
func (a Always) Confirm(Question) (bool, error) { return bool(a), nil }

// Defaults answers every question with its default.
type Defaults struct{}

// Confirm implements Decider.
func (Defaults) Confirm(q Question) (bool, error) { return q.DefaultYes, nil }

// ErrNoAnswer is returned when input ends before a valid answer is read.
var ErrNoAnswer = errors.New("no answer: input closed")

// Prompt asks questions on Out and reads answers from In. An empty answer
// selects the default; anything other than y, yes, n or no is asked again.
type Prompt struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewPrompt returns a Prompt reading from in and writing to out.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{In: bufio.NewReader(in), Out: out}
}

// Confirm implements Decider.
func (p *Prompt) Confirm(q Question) (bool, error) {
	def := "[No]"
	if q.DefaultYes {
		def = "[Yes]"
	}
	for {
		fmt.Fprintf(p.Out, "%s (Y)es/(N)o %s: ", q.Prompt, def)
		line, err := p.In.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			fmt.Fprintln(p.Out)
			if errors.Is(err, io.EOF) {
				return false, ErrNoAnswer
			}
			return false, err
		}
		switch answer {
		case "":
			return q.DefaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.Out, "Please enter 'y' for Yes or 'n' for No")
		if err != nil {
			return false, ErrNoAnswer
		}
	}
}

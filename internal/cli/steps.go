// internal/cli/steps.go
package cli

import (
	"strconv"
)

// Step is one filter of the run plan.
type Step int

const (
	StepScore      Step = iota + 1 // -i / -l
	StepUnique                     // -u
	StepQuery                      // -q
	StepReference                  // -r
	StepGlobal                     // -g
	StepOneToOne                   // -1
	StepManyToMany                 // -m
)

var stepNames = map[Step]string{
	StepScore:      "score",
	StepUnique:     "unique",
	StepQuery:      "query",
	StepReference:  "reference",
	StepGlobal:     "global",
	StepOneToOne:   "one-to-one",
	StepManyToMany: "many-to-many",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// plan records steps in the order their flags first appear.
type plan struct {
	steps []Step
}

func (p *plan) add(s Step) {
	for _, have := range p.steps {
		if have == s {
			return
		}
	}
	p.steps = append(p.steps, s)
}

// stepBool is a boolean flag that schedules its step when set true.
type stepBool struct {
	p    *plan
	step Step
	on   bool
}

func (b *stepBool) IsBoolFlag() bool { return true }
func (b *stepBool) String() string {
	if b == nil {
		return "false"
	}
	return strconv.FormatBool(b.on)
}
func (b *stepBool) Set(v string) error {
	on, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	b.on = on
	if on {
		b.p.add(b.step)
	}
	return nil
}

// stepFloat is a numeric threshold that schedules its step when given.
type stepFloat struct {
	p    *plan
	step Step
	dst  *float64
}

func (f *stepFloat) String() string {
	if f == nil || f.dst == nil {
		return "0"
	}
	return strconv.FormatFloat(*f.dst, 'g', -1, 64)
}
func (f *stepFloat) Set(v string) error {
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*f.dst = x
	f.p.add(f.step)
	return nil
}

// stepInt is stepFloat for integer thresholds.
type stepInt struct {
	p    *plan
	step Step
	dst  *int64
}

func (f *stepInt) String() string {
	if f == nil || f.dst == nil {
		return "0"
	}
	return strconv.FormatInt(*f.dst, 10)
}
func (f *stepInt) Set(v string) error {
	x, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*f.dst = x
	f.p.add(f.step)
	return nil
}

// sliceValue appends each value to a *[]string (for --ref-fasta/--qry-fasta).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s == nil || s.dst == nil {
		return ""
	}
	return strconv.Itoa(len(*s.dst)) + " file(s)"
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

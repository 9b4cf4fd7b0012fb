package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Step is one line of a pad script: either a command to broadcast or a pause.
type Step struct {
	Line string
	Wait time.Duration
}

// ReadScript parses a pad script. Every line is a command such as "RIGHT 3",
// except "WAIT <duration>"; blank lines and lines starting with '#' are skipped.
func ReadScript(reader io.Reader) ([]Step, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	steps := make([]Step, 0)
	row := 0
	for scanner.Scan() {
		row++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if strings.EqualFold(fields[0], "WAIT") {
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: WAIT needs one duration", row)
			}
			d, err := time.ParseDuration(fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", row, err)
			}
			steps = append(steps, Step{Wait: d})
			continue
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: %w: %q", row, ErrBadArgument, s)
		}
		n := ""
		if len(fields) == 2 {
			n = fields[1]
		}
		line, err := FormatCommand(fields[0], n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row, err)
		}
		steps = append(steps, Step{Line: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return steps, nil
}

// Play broadcasts the script in order until it ends or ctx is done.
func (s *PadServer) Play(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if step.Wait > 0 {
			select {
			case <-time.After(step.Wait):
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}
		log.Debugf("script <<< %s", step.Line)
		if err := s.Send(step.Line); err != nil {
			return err
		}
	}
	return nil
}

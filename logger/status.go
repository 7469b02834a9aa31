package logger

import (
	"fmt"
	"strings"
)

// Status is the error value used throughout this repository. A nil
// *Status means success. The Status code follows HTTP conventions:
// 400 for bad input, 500 for internal or external failures.
type Status struct {
	Status  int
	Message string
	Trace   string
	Err     error
}

func (s *Status) Error() string {
	return s.String()
}

func (s *Status) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("status %d", s.Status))
	if s.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(s.Message)
	}
	if s.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(s.Err.Error())
	}
	if s.Trace != "" {
		sb.WriteString(" (")
		sb.WriteString(s.Trace)
		sb.WriteString(")")
	}
	return sb.String()
}

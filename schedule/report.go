package schedule

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/meenmo/fischedule/utils"
)

func writeLabel(b *strings.Builder, label string, value any) {
	fmt.Fprintf(b, "%s: %v\n", label, value)
}

// String renders the inputs followed by the PCD and the remaining coupon
// dates, one per line, aligned under the first:
//
//	START DATE: 2020-01-01
//	...
//	DATEGENRULE: BACKWARD
//	STRATEGY: ADJUST_AFTER_STEP
//
//	PCD: 2020-01-01
//	NCD: 2020-04-01
//	     2020-07-01
func (s *Schedule) String() string {
	var b strings.Builder
	writeLabel(&b, "START DATE", s.startDate.Format(utils.DateLayout))
	writeLabel(&b, "END DATE", s.endDate.Format(utils.DateLayout))
	writeLabel(&b, "FREQUENCY", s.frequency)
	writeLabel(&b, "CALENDAR", s.calendarID)
	writeLabel(&b, "BUSDAYRULE", s.busDayAdjust)
	writeLabel(&b, "DATEGENRULE", s.dateGenRule)
	writeLabel(&b, "STRATEGY", s.strategy)

	if len(s.adjustedDates) > 0 {
		b.WriteString("\n")
		writeLabel(&b, "PCD", s.adjustedDates[0].Format(utils.DateLayout))
	}
	if len(s.adjustedDates) > 1 {
		writeDateList(&b, "NCD", s.adjustedDates[1:])
	}
	return b.String()
}

func writeDateList(b *strings.Builder, label string, dates []time.Time) {
	prefix := label + ": "
	pad := strings.Repeat(" ", len(prefix))
	for i, d := range dates {
		if i == 0 {
			b.WriteString(prefix)
		} else {
			b.WriteString(pad)
		}
		b.WriteString(d.Format(utils.DateLayout))
		b.WriteString("\n")
	}
}

// Print writes String() to w, or to standard output when w is nil.
func (s *Schedule) Print(w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}
	_, err := io.WriteString(w, s.String())
	return err
}

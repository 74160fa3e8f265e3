package main

import (
	"fmt"
	"os"

	"github.com/meenmo/fischedule/calendar"
	"github.com/meenmo/fischedule/schedule"
	"github.com/meenmo/fischedule/utils"
)

func main() {
	params := schedule.Params{
		StartDate:    utils.DateParser("2024-01-25"),
		EndDate:      utils.DateParser("2034-01-25"),
		Frequency:    schedule.SemiAnnual,
		Calendar:     calendar.TARGET,
		BusDayAdjust: calendar.ModifiedFollowing,
	}

	for _, rule := range []schedule.DateGenRule{schedule.Backward, schedule.Forward} {
		for _, strategy := range []schedule.Strategy{schedule.AdjustAfterStep, schedule.AdjustBeforeStep} {
			params.DateGenRule = rule
			params.Strategy = strategy

			s, err := schedule.New(params)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if err := s.Print(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Println()
		}
	}
}

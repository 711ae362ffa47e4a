package cli

import (
	"fmt"

	"github.com/studyflowhq/studyflow/internal/timeutil"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running health checks...")

	checks := 0
	failures := 0

	check := func(name string, err error) {
		checks++
		if err != nil {
			failures++
			fmt.Printf("  ✗ %s: %v\n", name, err)
			return
		}
		fmt.Printf("  ✓ %s\n", name)
	}

	check("storage reachable", ctx.Store.Load())

	settings, err := ctx.Store.GetSettings()
	check("settings readable", err)
	if err == nil {
		check("slot window valid", func() error {
			_, derr := timeutil.DurationMinutes(settings.SlotStart, settings.SlotEnd)
			return derr
		}())
		check("timezone valid", func() error {
			_, lerr := timeutil.LoadLocation(settings.Timezone)
			return lerr
		}())
		check("max adjust end valid", func() error {
			if !timeutil.IsValidTimeFormat(settings.MaxAdjustEnd) {
				return fmt.Errorf("invalid time %q", settings.MaxAdjustEnd)
			}
			return nil
		}())
	}

	fmt.Printf("\n%d check(s), %d failure(s)\n", checks, failures)
	if failures > 0 {
		return fmt.Errorf("%d health check(s) failed", failures)
	}
	return nil
}

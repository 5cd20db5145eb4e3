package main

import "fmt"

// Run executes the watch command.
func (c *WatchCmd) Run(deps *Dependencies) error {
	result, err := fixTree(deps, false)
	if err != nil {
		return err
	}
	printSummary(deps, result, false)

	fmt.Fprintf(deps.Stdout, "Watching %s\n", c.Dir)

	err = deps.Watcher.Watch(deps.Ctx, func(paths []string) {
		result, err := deps.Runner.Run(deps.Ctx, paths, reportProgress(deps, false))
		if err != nil {
			if deps.Ctx.Err() == nil {
				fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			}
			return
		}
		if result.Fixed > 0 || result.Failed > 0 {
			printSummary(deps, result, false)
		}
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", c.Dir, err)
	}
	return nil
}

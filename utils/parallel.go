package utils

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

type (
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int) error
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) MemberWorkFunc
)

// GroupWorkParallel splits totalSize work items into contiguous groups, one goroutine per group. The last
// group takes the remainder. A group stops at its first error, or once ctx is done; the errors of all groups
// are combined.
func GroupWorkParallel(ctx context.Context, totalSize int, groupWork GroupWorkFunc) error {
	numGroups := ParallelFactor
	if totalSize < numGroups {
		numGroups = totalSize
	}
	if numGroups <= 0 {
		return nil
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	var wait sync.WaitGroup
	var errMu sync.Mutex
	var bigError error
	storeError := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		bigError = multierr.Append(bigError, err)
	}

	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		utils.PanicCapturingGo(func() {
			defer wait.Done()
			from := groupSize * groupNum
			to := from + groupSize
			if groupNum == numGroups-1 {
				to += extra
			}
			memberWork := groupWork(groupNum, to-from, from, to)
			if memberWork == nil {
				return
			}
			for workNum := from; workNum < to; workNum++ {
				if err := ctx.Err(); err != nil {
					storeError(err)
					return
				}
				if err := memberWork(workNum-from, workNum); err != nil {
					storeError(err)
					return
				}
			}
		})
	}
	wait.Wait()
	return bigError
}

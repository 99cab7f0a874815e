/*
   Copyright 2022 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package hgn

import (
	"fmt"

	bt "github.com/joeycumines/go-behaviortree"
)

// Node adapts a computed plan into a behavior tree node, for callers acting
// on plans through a bt-based executor. Each tick applies the next
// primitive action to an internal state threaded from initial, returning
// Running while steps remain, Success once the plan is drained, and Failure
// if an action's preconditions no longer hold, which indicates the world
// diverged from the planned trajectory. Ticking after a terminal status is
// a no-op returning that status, so the node composes with retry and
// memorize decorators.
func Node(domain *Domain, initial State, plan []Action) bt.Node {
	var (
		i    int
		st   = initial
		done bt.Status
	)
	return bt.New(func([]bt.Node) (bt.Status, error) {
		if done != 0 {
			return done, nil
		}
		if domain == nil {
			return bt.Failure, fmt.Errorf(`hgn: nil domain`)
		}
		if i >= len(plan) {
			done = bt.Success
			return done, nil
		}
		step := plan[i]
		fn, ok := domain.ActionFunc(step.Name)
		if !ok {
			return bt.Failure, fmt.Errorf(`hgn: %w: %s`, ErrUnknownAction, step.Name)
		}
		next, ok := fn(st, step.Args)
		if !ok {
			done = bt.Failure
			return done, nil
		}
		st = next
		i++
		if i == len(plan) {
			done = bt.Success
			return done, nil
		}
		return bt.Running, nil
	})
}

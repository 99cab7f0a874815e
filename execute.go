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

import "fmt"

// Execute replays a plan's primitive actions against initial, in order,
// returning the final state. A step whose action is unregistered or whose
// preconditions fail yields an error naming the step; for a plan produced
// by Plan against the same domain and initial state that indicates a
// planner bug, or impure action functions.
func Execute(domain *Domain, initial State, plan []Action) (State, error) {
	if domain == nil {
		return State{}, fmt.Errorf(`hgn: nil domain`)
	}
	st := initial
	for i, step := range plan {
		fn, ok := domain.ActionFunc(step.Name)
		if !ok {
			return State{}, fmt.Errorf(`hgn: step %d: %w: %s`, i, ErrUnknownAction, step.Name)
		}
		next, ok := fn(st, step.Args)
		if !ok {
			return State{}, fmt.Errorf(`hgn: step %d: %w: %s`, i, ErrActionPrecondition, step)
		}
		st = next
	}
	return st, nil
}

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
	"log"
)

type solver struct {
	config
	domain *Domain
	tree   *Tree
	logger *log.Logger
	// reason is the most recent local failure, wrapped into the final error
	// when the search exhausts.
	reason error
}

func newSolver(c config, domain *Domain) *solver {
	return &solver{
		config: c,
		domain: domain,
		tree:   newTree(),
		logger: log.New(c.output, `hgn: `, 0),
	}
}

func (s *solver) tracef(level int, format string, args ...any) {
	if s.verbose >= level {
		s.logger.Printf(format, args...)
	}
}

// run drives refinement of the todo list to completion, leaving the plan in
// s.tree on success.
func (s *solver) run(initial State, todos []Item) error {
	ids := make([]int, 0, len(todos))
	for _, item := range todos {
		if item == nil {
			return fmt.Errorf(`hgn: nil todo item`)
		}
		ids = append(ids, s.tree.add(0, s.normalize(item)))
	}
	cur := initial
	for _, id := range ids {
		s.reason = nil
		next, ok, err := s.refine(id, cur, 0)
		if err != nil {
			return err
		}
		if !ok {
			s.tree.markFailed(0)
			reason := s.reason
			if reason == nil {
				reason = ErrNoApplicableMethod
			}
			return fmt.Errorf(`hgn: cannot resolve %s: %w`, s.tree.node(id).item, reason)
		}
		cur = next
	}
	s.tree.markSucceeded(0)
	s.tracef(1, `plan found: %v`, s.tree.Plan())
	if s.verbose >= 3 {
		s.logger.Printf("solution tree:\n%s", s.tree)
	}
	return nil
}

// refine expands a single node depth-first, returning the successor state.
// A false second return value with a nil error is expected search failure,
// which drives backtracking in the caller; a non-nil error is a structural
// error, which aborts planning outright.
func (s *solver) refine(id int, st State, depth int) (State, bool, error) {
	n := s.tree.node(id)
	n.state = st
	if depth > s.maxDepth {
		s.tracef(2, `depth %d exceeds %d at %s`, depth, s.maxDepth, n.item)
		s.fail(n, fmt.Errorf(`%w at %s`, ErrDepthExceeded, n.item))
		return State{}, false, nil
	}
	s.tracef(3, `node #%d %s depth=%d state=%s`, n.id, n.item, depth, st)
	switch item := n.item.(type) {
	case Action:
		return s.refineAction(n, item, st)
	case Task:
		return s.refineTask(n, item, st, depth)
	case Goal:
		return s.refineGoal(n, item, st, depth)
	case Multigoal:
		return s.refineMultigoal(n, item, st, depth)
	default:
		return State{}, false, fmt.Errorf(`hgn: invalid todo item (%T): %v`, n.item, n.item)
	}
}

func (s *solver) refineAction(n *treeNode, item Action, st State) (State, bool, error) {
	fn, ok := s.domain.ActionFunc(item.Name)
	if !ok {
		return State{}, false, fmt.Errorf(`hgn: %w: %s`, ErrUnknownAction, item.Name)
	}
	next, ok := fn(st, item.Args)
	if !ok {
		s.tracef(2, `action %s inapplicable`, item)
		s.fail(n, fmt.Errorf(`%w: %s`, ErrActionPrecondition, item))
		return State{}, false, nil
	}
	s.tree.markSucceeded(n.id)
	s.tracef(3, `action %s applied`, item)
	return next, true, nil
}

func (s *solver) refineTask(n *treeNode, item Task, st State, depth int) (State, bool, error) {
	methods := s.domain.TaskMethods(item.Name)
	return s.refineCompound(n, st, depth, len(methods), func(i int) ([]Item, bool) {
		return methods[i](st, item.Args)
	}, nil)
}

func (s *solver) refineGoal(n *treeNode, item Goal, st State, depth int) (State, bool, error) {
	if st.Holds(item) {
		s.tree.markSucceeded(n.id)
		s.tracef(1, `goal %s already satisfied`, item)
		return st, true, nil
	}
	s.tracef(1, `achieving goal %s`, item)
	methods := s.domain.UnigoalMethods(item.Predicate)
	return s.refineCompound(n, st, depth, len(methods), func(i int) ([]Item, bool) {
		return methods[i](st, item.Subject, item.Object)
	}, func(after State) bool {
		return after.Holds(item)
	})
}

func (s *solver) refineMultigoal(n *treeNode, item Multigoal, st State, depth int) (State, bool, error) {
	holds := func(after State) bool {
		for _, g := range item.Goals {
			if !after.Holds(g) {
				return false
			}
		}
		return true
	}
	if holds(st) {
		s.tree.markSucceeded(n.id)
		s.tracef(1, `multigoal %s already satisfied`, item)
		return st, true, nil
	}
	s.tracef(1, `achieving multigoal %s`, item)
	methods := s.domain.MultigoalMethods()
	if len(methods) == 0 {
		// implicit fallback, expand each member goal as a unit goal in order
		return s.refineCompound(n, st, depth, 1, func(int) ([]Item, bool) {
			items := make([]Item, 0, len(item.Goals))
			for _, g := range item.Goals {
				items = append(items, g)
			}
			return items, true
		}, holds)
	}
	return s.refineCompound(n, st, depth, len(methods), func(i int) ([]Item, bool) {
		return methods[i](st, item)
	}, holds)
}

// refineCompound drives the shared method-iteration discipline for tasks,
// goals, and multigoals: try methods in registration order, skipping the
// node's blacklist, recursing into the expansion's children left to right
// with the state threaded through, and on any failure clear the subtree,
// blacklist the method, and advance. verify, when non-nil, is the mandatory
// post-expansion goal re-check, applied to the state the subtree produced.
func (s *solver) refineCompound(n *treeNode, st State, depth, count int, call func(int) ([]Item, bool), verify func(State) bool) (State, bool, error) {
	for i := 0; i < count; i++ {
		if s.tree.blacklisted(n.id, i) {
			continue
		}
		items, ok := call(i)
		if !ok {
			s.tracef(2, `method %d inapplicable for %s`, i, n.item)
			s.tree.blacklist(n.id, i)
			continue
		}
		s.tracef(2, `method %d expands %s into %d item(s)`, i, n.item, len(items))
		if len(items) == 0 {
			if verify != nil && !verify(st) {
				s.tracef(2, `method %d of %s verified false`, i, n.item)
				s.reason = fmt.Errorf(`%w: %s`, ErrGoalUnverified, n.item)
				s.tree.blacklist(n.id, i)
				continue
			}
			s.tree.markSucceeded(n.id)
			return st, true, nil
		}
		children := s.tree.setExpansion(n.id, i, s.normalizeAll(items))
		cur, failed := st, false
		for _, child := range children {
			next, ok, err := s.refine(child, cur, depth+1)
			if err != nil {
				return State{}, false, err
			}
			if !ok {
				failed = true
				break
			}
			cur = next
		}
		if !failed && verify != nil && !verify(cur) {
			s.tracef(2, `method %d of %s verified false`, i, n.item)
			s.reason = fmt.Errorf(`%w: %s`, ErrGoalUnverified, n.item)
			failed = true
		}
		if failed {
			s.tree.clearSubtree(n.id)
			s.tree.blacklist(n.id, i)
			continue
		}
		s.tree.markSucceeded(n.id)
		return cur, true, nil
	}
	reason := s.reason
	if reason == nil || count == 0 {
		reason = fmt.Errorf(`%w for %s`, ErrNoApplicableMethod, n.item)
	}
	s.fail(n, reason)
	return State{}, false, nil
}

func (s *solver) fail(n *treeNode, reason error) {
	s.tree.markFailed(n.id)
	s.reason = reason
}

// normalize applies the boundary dispatch rule: a task whose name is a
// registered action, with no task methods under that name, is a primitive
// action. Items of other kinds pass through unchanged, as do the arguments.
func (s *solver) normalize(item Item) Item {
	if t, ok := item.(Task); ok {
		if _, isAction := s.domain.ActionFunc(t.Name); isAction && len(s.domain.TaskMethods(t.Name)) == 0 {
			return Action{Name: t.Name, Args: t.Args}
		}
	}
	return item
}

func (s *solver) normalizeAll(items []Item) []Item {
	normalized := make([]Item, 0, len(items))
	for _, item := range items {
		normalized = append(normalized, s.normalize(item))
	}
	return normalized
}

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

func Example_travel() {
	var (
		domain  = travelDomain()
		initial = travelInitial()
	)
	plan, err := Plan(domain, initial, []Item{Goal{`loc`, `alice`, `park`}})
	if err != nil {
		panic(err)
	}
	for _, step := range plan {
		fmt.Println(step)
	}
	final, err := Execute(domain, initial, plan)
	if err != nil {
		panic(err)
	}
	fmt.Printf("loc = %v, cash = %v\n", final.Get(`loc`, `alice`), final.Get(`cash`, `alice`))

	// output:
	// (:call_taxi [alice home_a])
	// (:ride_taxi [alice home_a park])
	// (:pay_driver [alice])
	// loc = park, cash = 14.5
}

func Example_blocks() {
	var (
		domain  = blocksDomain()
		initial = blocksInitial()
	)
	plan, err := Plan(domain, initial, []Item{
		Multigoal{Goals: []Goal{{`on`, `a`, `b`}, {`on`, `b`, `c`}}},
	})
	if err != nil {
		panic(err)
	}
	for _, step := range plan {
		fmt.Println(step)
	}

	// output:
	// (:pickup [b])
	// (:stack [b c])
	// (:pickup [a])
	// (:stack [a b])
}

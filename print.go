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

	"github.com/xlab/treeprint"
)

// String renders the reachable solution tree, one branch per refinement
// child, labelled with node id, status, item, and the method index that
// produced its children.
func (t *Tree) String() string {
	root := treeprint.NewWithRoot(`todos`)
	var walk func(id int, branch treeprint.Tree)
	walk = func(id int, branch treeprint.Tree) {
		for _, c := range t.node(id).children {
			n := t.node(c)
			label := fmt.Sprintf(`#%d %s %s`, n.id, n.status, n.item)
			if n.method >= 0 {
				label += fmt.Sprintf(` method=%d`, n.method)
			}
			walk(c, branch.AddBranch(label))
		}
	}
	walk(0, root)
	return root.String()
}

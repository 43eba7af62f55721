package semant

// heritageNode is a class name plus its direct subclasses. Nodes are built
// for a single check and thrown away.
type heritageNode struct {
	name     string
	children []*heritageNode
}

func (n *heritageNode) addChild(child *heritageNode) {
	n.children = append(n.children, child)
}

// HeritageGraph is the parent-to-children view of a populated Context.
type HeritageGraph struct {
	nodes []*heritageNode // registry order, root first
}

// NewHeritageGraph inverts the parent links of ctx. Object is the root and
// gets no parent edge of its own; edges hanging from Int and Bool are left
// out since those classes cannot be inherited from anyway.
func NewHeritageGraph(ctx *Context) *HeritageGraph {
	g := &HeritageGraph{}
	byName := make(map[string]*heritageNode)
	node := func(name string) *heritageNode {
		if n, ok := byName[name]; ok {
			return n
		}
		n := &heritageNode{name: name}
		byName[name] = n
		g.nodes = append(g.nodes, n)
		return n
	}

	node(ObjectClass)
	for _, t := range ctx.Types() {
		if t.Name == ObjectClass {
			continue
		}
		child := node(t.Name)
		parent := ctx.Parent(t)
		if parent == nil || heritageSkippedParents[parent.Name] {
			continue
		}
		node(parent.Name).addChild(child)
	}
	return g
}

// HasCycle reports whether some class is its own ancestor.
func (g *HeritageGraph) HasCycle() bool {
	_, cyclic := g.FindCycle()
	return cyclic
}

// FindCycle runs an explicit-stack traversal from every node not reached by
// an earlier traversal. With single parent links each node is reached at
// most once per traversal, so reaching one twice means a cycle; the name of
// that node is returned.
func (g *HeritageGraph) FindCycle() (string, bool) {
	visited := make(map[*heritageNode]bool, len(g.nodes))

	for _, root := range g.nodes {
		if visited[root] {
			continue
		}

		local := make(map[*heritageNode]bool)
		pending := []*heritageNode{root}
		for len(pending) > 0 {
			n := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			if local[n] {
				return n.name, true
			}
			local[n] = true
			pending = append(pending, n.children...)
		}

		for n := range local {
			visited[n] = true
		}
	}
	return "", false
}

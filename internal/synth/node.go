package synth

// Node is a processing stage in a Context graph.
type Node interface {
	// Connect routes this node's output into dst.
	Connect(dst Node)
	// ConnectParam routes this node's output into a parameter, where it is
	// summed onto the automated value sample by sample.
	ConnectParam(p *Param)
	// Disconnect removes every outgoing connection.
	Disconnect()
	// Outputs returns the nodes this node feeds.
	Outputs() []Node

	graph() *graphNode
}

type graphNode struct {
	ctx    *Context
	self   Node
	inputs []Node
	outs   []Node
	params []*Param

	sum  []float64
	buf  []float64
	seen uint64
	proc func(q *quantum, in, out []float64)
}

func (n *graphNode) init(ctx *Context, self Node, proc func(q *quantum, in, out []float64)) {
	n.ctx = ctx
	n.self = self
	n.sum = make([]float64, Quantum)
	n.buf = make([]float64, Quantum)
	n.proc = proc
}

func (n *graphNode) graph() *graphNode { return n }

func (n *graphNode) Connect(dst Node) {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	d := dst.graph()
	d.inputs = append(d.inputs, n.self)
	n.outs = append(n.outs, dst)
}

func (n *graphNode) ConnectParam(p *Param) {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	p.inputs = append(p.inputs, n.self)
	n.params = append(n.params, p)
}

func (n *graphNode) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, dst := range n.outs {
		d := dst.graph()
		d.inputs = removeNode(d.inputs, n.self)
	}
	for _, p := range n.params {
		p.inputs = removeNode(p.inputs, n.self)
	}
	n.outs = nil
	n.params = nil
}

func (n *graphNode) Outputs() []Node {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	out := make([]Node, len(n.outs))
	copy(out, n.outs)
	return out
}

// pull renders the node for quantum q at most once, summing its inputs.
func (n *graphNode) pull(q *quantum) []float64 {
	if n.seen == q.id {
		return n.buf
	}
	n.seen = q.id

	clear(n.sum)
	for _, in := range n.inputs {
		b := in.graph().pull(q)
		for i := range n.sum {
			n.sum[i] += b[i]
		}
	}
	if n.proc == nil {
		copy(n.buf, n.sum)
	} else {
		n.proc(q, n.sum, n.buf)
	}
	return n.buf
}

func removeNode(nodes []Node, target Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		if n != target {
			out = append(out, n)
		}
	}
	for i := len(out); i < len(nodes); i++ {
		nodes[i] = nil
	}
	return out
}

// Gain scales its input by an automatable gain parameter.
type Gain struct {
	graphNode
	gain *Param
}

// NewGain creates a unity gain stage.
func (c *Context) NewGain() *Gain {
	g := &Gain{gain: newParam(c, 1)}
	g.init(c, g, g.process)
	return g
}

// Gain returns the gain parameter.
func (g *Gain) Gain() *Param { return g.gain }

func (g *Gain) process(q *quantum, in, out []float64) {
	gain := g.gain.values(q)
	for i := range out {
		out[i] = in[i] * gain[i]
	}
}

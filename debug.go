package weather

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("weather debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		log.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		log.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}

// debugStatsInterval is how many rain frames pass between stat records.
const debugStatsInterval = 120

// debugLogRain records a rain simulation's frame stats at debug level every
// debugStatsInterval frames. No-op unless the document is in debug mode.
func (d *Document) debugLogRain(st RainStats) {
	if !d.debug || st.Frame%debugStatsInterval != 0 {
		return
	}
	d.logger.Debug("rain",
		"frame", st.Frame,
		"back", st.BackDrops,
		"front", st.FrontDrops,
		"splashes", st.Splashes,
		"zones", st.Zones,
		"step", st.StepTime,
		"draw", st.DrawTime,
	)
}

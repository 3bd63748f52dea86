package diagram

// The board is organized as four fixed horizontal lanes, one per node
// category. Layout is pure data so repeated syncs converge to the same
// positions.

type lane struct {
	title    string
	color    string
	x        float64
	maxNodes int
}

var lanes = []lane{
	{title: "📋 Topics", color: "light_yellow", x: 0, maxNodes: 6},
	{title: "🧠 Insights", color: "light_blue", x: 800, maxNodes: 6},
	{title: "✅ Decisions", color: "light_green", x: 1600, maxNodes: 5},
	{title: "📝 Actions", color: "red", x: 2400, maxNodes: 6},
}

const (
	laneTopics = iota
	laneInsights
	laneDecisions
	laneActions
)

const (
	headerY   = -200
	baseY     = 100
	rowHeight = 220

	nodeThreshold   = 0.7
	headerThreshold = 0.9

	maxConnectors = 20

	// connectors at or above this strength render solid and thick
	strongLinkThreshold = 0.5
)

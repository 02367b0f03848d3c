// Package graphsource is the graph source collaborator: it reads patch and
// link documents and hands (patches, links, cost definition) to core.Build.
//
// A document is YAML (JSON, being a YAML subset, decodes the same way):
//
//	name: forest
//	cost:
//	  kind: leastcost      # leastcost | euclidean
//	  topology: threshold  # complete | threshold | mst
//	  threshold: 500
//	patches:
//	  - {id: 1, x: 0, y: 0, area: 12.5}
//	  - {id: 2, x: 300, y: 40, area: 3, capacity: 6}
//	links:
//	  - {from: 1, to: 2, cost: 410, length: 304}
//
// Unknown fields are rejected. Structural checks (ids, costs, endpoints) are
// left to core.Build, which reports them as *core.TopologyError.
package graphsource

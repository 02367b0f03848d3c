// Package metric is the connectivity metric framework: local metrics score a
// patch, global metrics summarise a whole graph, and both are configured
// through a detail name that encodes their parameters.
//
// Catalog:
//
//	Global  PC       probability of connectivity (d, p, beta)
//	        EC       equivalent connectivity (d, p, beta)
//	        PCintra  PC over same-cluster pairs, cluster-aware (d, p, beta)
//	        IIC      integral index of connectivity (beta)
//	        H        Harary index
//	        NC       number of components
//	        GD       graph diameter
//	        Q        modularity of a partition, cluster-aware
//	        Sum<L>   any local metric L summed over all patches
//	Local   Dg       degree
//	        CC       clustering coefficient
//	        F        flux (d, p, beta)
//	        Nr       patches within least-cost radius (r)
//
// Distance decay uses α = −ln(p)/d, so a pair at least-cost distance d is
// joined with probability p. Pairwise sums run over ordered pairs with the
// self term included; H is the only symmetric half-sum.
//
// Detail names:
//
//	Short, or Short_<key><value>_… with keys in declared order and values in
//	strconv 'g' shortest form: "PC_d1000_p0.05_beta1", "Nr_r250", "SumDg".
//	SetParamsFromDetailName accepts exactly the names DetailName produces;
//	anything else is ErrInvalidParameter and leaves the metric unchanged.
//	Values are range-checked with go-playground/validator.
//
// Concurrency:
//
//	Metric values are not safe for concurrent mutation. Workers clone a
//	configured metric (CloneGlobal, CloneLocal, Launcher.Clone); the clones
//	share nothing mutable. Table is safe for concurrent use.
package metric

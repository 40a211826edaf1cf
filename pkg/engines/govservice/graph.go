package govservice

import (
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/graph"
)

// conclusionEdge is one rule-to-conclusion edge of the wiring table.
type conclusionEdge struct {
	target   string
	relation graph.Relation
}

// ruleWiring maps each rule to the premises it reads and the conclusions
// it writes. Both lists are ordered so graph construction stays
// deterministic.
var ruleWiring = map[string]struct {
	premises    []string
	conclusions []conclusionEdge
}{
	"G1":  {[]string{"prior_fraud"}, []conclusionEdge{{"determination", graph.RelationDetermines}, {"fraud_bar", graph.RelationEntails}}},
	"G2":  {[]string{"income_ratio"}, []conclusionEdge{{"determination", graph.RelationDetermines}}},
	"G3":  {[]string{"residency_verified"}, []conclusionEdge{{"determination", graph.RelationDetermines}, {"residency_unverified", graph.RelationEntails}}},
	"G4":  {[]string{"documentation_score"}, []conclusionEdge{{"determination", graph.RelationInfluences}}},
	"G5":  {[]string{"eligibility_score"}, []conclusionEdge{{"determination", graph.RelationDetermines}}},
	"G6":  {[]string{"urgent_need", "residency_verified", "eligibility_score"}, []conclusionEdge{{"determination", graph.RelationEntails}, {"expedited", graph.RelationEntails}}},
	"G7":  {[]string{"eligibility_score", "income_ratio", "documentation_score"}, []conclusionEdge{{"entitlement_score", graph.RelationDetermines}}},
	"G8":  {[]string{"household_size"}, []conclusionEdge{{"large_household", graph.RelationEntails}}},
	"G9":  {[]string{"eligibility_score", "documentation_score", "residency_verified"}, []conclusionEdge{{"determination", graph.RelationEntails}}},
	"G10": {nil, []conclusionEdge{{"determination", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	b := graph.NewBuilder()
	b.Premise("premise:eligibility_score", "eligibility_score input")
	b.Premise("premise:residency_verified", "residency_verified input")
	b.Premise("premise:income_ratio", "income_ratio input")
	b.Premise("premise:documentation_score", "documentation_score input")
	b.Premise("premise:household_size", "household_size input")
	if in.BoolOr("prior_fraud", false) {
		b.Premise("premise:prior_fraud", "prior fraud finding")
	}
	if in.BoolOr("urgent_need", false) {
		b.Premise("premise:urgent_need", "urgent need declaration")
	}

	b.Conclusion("concl:determination", "determination = "+d.Outcome)
	b.Conclusion("concl:entitlement_score", "entitlement_score")
	if d.Flags["fraud_bar"] {
		b.Conclusion("concl:fraud_bar", "fraud_bar = true")
	}
	if d.Flags["residency_unverified"] {
		b.Conclusion("concl:residency_unverified", "residency_unverified = true")
	}
	if d.Flags["expedited"] {
		b.Conclusion("concl:expedited", "expedited = true")
	}
	if d.Flags["large_household"] {
		b.Conclusion("concl:large_household", "large_household = true")
	}

	for _, audit := range d.AllRules {
		if !audit.Triggered {
			continue
		}
		wiring, ok := ruleWiring[audit.ID]
		if !ok {
			continue
		}

		ruleID := "rule:" + audit.ID
		b.Rule(ruleID, audit.Rule)

		for _, premise := range wiring.premises {
			b.Connect("premise:"+premise, ruleID, graph.RelationInput)
		}
		for _, edge := range wiring.conclusions {
			b.Connect(ruleID, "concl:"+edge.target, edge.relation)
		}
	}

	// The composite entitlement score mathematically derives the band.
	b.Connect("concl:entitlement_score", "concl:determination", graph.RelationProduces)

	return b.Graph()
}

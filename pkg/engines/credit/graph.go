package credit

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
	"F1":  {[]string{"credit_score"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"hard_denial", graph.RelationEntails}}},
	"C2":  {[]string{"debt_to_income"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"hard_denial", graph.RelationEntails}}},
	"C3":  {[]string{"prior_defaults"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"hard_denial", graph.RelationEntails}}},
	"C4":  {[]string{"loan_amount", "annual_income"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"C5":  {[]string{"employment_years"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"C6":  {[]string{"credit_score", "debt_to_income"}, []conclusionEdge{{"recommendation", graph.RelationEntails}}},
	"C7":  {[]string{"credit_score", "annual_income", "loan_amount", "debt_to_income", "employment_years"}, []conclusionEdge{{"approval_score", graph.RelationDetermines}}},
	"C8":  {[]string{"collateral"}, []conclusionEdge{{"collateral_backed", graph.RelationEntails}}},
	"C9":  {[]string{"credit_score"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"C10": {nil, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	b := graph.NewBuilder()
	b.Premise("premise:credit_score", "credit_score input")
	b.Premise("premise:annual_income", "annual_income input")
	b.Premise("premise:debt_to_income", "debt_to_income input")
	b.Premise("premise:loan_amount", "loan_amount input")
	b.Premise("premise:employment_years", "employment_years input")
	b.Premise("premise:prior_defaults", "prior_defaults input")
	b.Premise("premise:collateral", "collateral input")

	b.Conclusion("concl:recommendation", "recommendation = "+d.Outcome)
	b.Conclusion("concl:approval_score", "approval_score")
	if d.Flags["hard_denial"] {
		b.Conclusion("concl:hard_denial", "hard_denial = true")
	}
	if d.Flags["collateral_backed"] {
		b.Conclusion("concl:collateral_backed", "collateral_backed = true")
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

	// The composite approval score mathematically derives the band.
	b.Connect("concl:approval_score", "concl:recommendation", graph.RelationProduces)

	return b.Graph()
}

package permit

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
	"P1":  {[]string{"zoning_compliance"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"code_violation", graph.RelationEntails}}},
	"P2":  {[]string{"structural_safety"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"code_violation", graph.RelationEntails}}},
	"P3":  {[]string{"fire_safety_score"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"code_violation", graph.RelationEntails}}},
	"P4":  {[]string{"environmental_impact"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}}},
	"P5":  {[]string{"plot_coverage_ratio"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"P6":  {[]string{"heritage_zone"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}, {"heritage_review", graph.RelationEntails}}},
	"P7":  {[]string{"zoning_compliance", "structural_safety", "environmental_impact", "fire_safety_score", "plot_coverage_ratio"}, []conclusionEdge{{"compliance_score", graph.RelationDetermines}}},
	"P8":  {[]string{"floodplain"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}, {"flood_mitigation", graph.RelationEntails}}},
	"P9":  {[]string{"structural_safety", "fire_safety_score"}, []conclusionEdge{{"exemplary_safety", graph.RelationEntails}}},
	"P10": {nil, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	b := graph.NewBuilder()
	b.Premise("premise:zoning_compliance", "zoning_compliance input")
	b.Premise("premise:structural_safety", "structural_safety input")
	b.Premise("premise:environmental_impact", "environmental_impact input")
	b.Premise("premise:plot_coverage_ratio", "plot_coverage_ratio input")
	b.Premise("premise:fire_safety_score", "fire_safety_score input")
	if in.BoolOr("heritage_zone", false) {
		b.Premise("premise:heritage_zone", "heritage zone designation")
	}
	if in.BoolOr("floodplain", false) {
		b.Premise("premise:floodplain", "floodplain designation")
	}

	b.Conclusion("concl:recommendation", "recommendation = "+d.Outcome)
	b.Conclusion("concl:compliance_score", "compliance_score")
	if d.Flags["code_violation"] {
		b.Conclusion("concl:code_violation", "code_violation = true")
	}
	if d.Flags["heritage_review"] {
		b.Conclusion("concl:heritage_review", "heritage_review = true")
	}
	if d.Flags["flood_mitigation"] {
		b.Conclusion("concl:flood_mitigation", "flood_mitigation = true")
	}
	if d.Flags["exemplary_safety"] {
		b.Conclusion("concl:exemplary_safety", "exemplary_safety = true")
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

	// The composite compliance score mathematically derives the band.
	b.Connect("concl:compliance_score", "concl:recommendation", graph.RelationProduces)

	return b.Graph()
}

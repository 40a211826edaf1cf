package legal

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
	"L1":  {[]string{"sanctions_match"}, []conclusionEdge{{"status", graph.RelationDetermines}, {"sanctions", graph.RelationEntails}}},
	"L2":  {[]string{"regulatory_violations"}, []conclusionEdge{{"status", graph.RelationDetermines}}},
	"L3":  {[]string{"disclosure_completeness"}, []conclusionEdge{{"status", graph.RelationDetermines}, {"material_nondisclosure", graph.RelationEntails}}},
	"L4":  {[]string{"contract_risk_score"}, []conclusionEdge{{"status", graph.RelationInfluences}}},
	"L5":  {[]string{"litigation_history"}, []conclusionEdge{{"status", graph.RelationInfluences}}},
	"L6":  {[]string{"jurisdiction_complexity"}, []conclusionEdge{{"status", graph.RelationInfluences}, {"multi_jurisdiction", graph.RelationEntails}}},
	"L7":  {[]string{"regulatory_violations", "contract_risk_score", "litigation_history", "disclosure_completeness"}, []conclusionEdge{{"compliance_score", graph.RelationDetermines}}},
	"L8":  {[]string{"regulatory_violations"}, []conclusionEdge{{"status", graph.RelationInfluences}, {"minor_violations", graph.RelationEntails}}},
	"L9":  {[]string{"disclosure_completeness", "regulatory_violations"}, []conclusionEdge{{"clean_record", graph.RelationEntails}}},
	"L10": {nil, []conclusionEdge{{"status", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	b := graph.NewBuilder()
	b.Premise("premise:regulatory_violations", "regulatory_violations input")
	b.Premise("premise:contract_risk_score", "contract_risk_score input")
	b.Premise("premise:litigation_history", "litigation_history input")
	b.Premise("premise:disclosure_completeness", "disclosure_completeness input")
	b.Premise("premise:jurisdiction_complexity", "jurisdiction_complexity input")
	if in.BoolOr("sanctions_match", false) {
		b.Premise("premise:sanctions_match", "sanctions list match")
	}

	b.Conclusion("concl:status", "status = "+d.Outcome)
	b.Conclusion("concl:compliance_score", "compliance_score")
	if d.Flags["sanctions"] {
		b.Conclusion("concl:sanctions", "sanctions = true")
	}
	if d.Flags["material_nondisclosure"] {
		b.Conclusion("concl:material_nondisclosure", "material_nondisclosure = true")
	}
	if d.Flags["multi_jurisdiction"] {
		b.Conclusion("concl:multi_jurisdiction", "multi_jurisdiction = true")
	}
	if d.Flags["minor_violations"] {
		b.Conclusion("concl:minor_violations", "minor_violations = true")
	}
	if d.Flags["clean_record"] {
		b.Conclusion("concl:clean_record", "clean_record = true")
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
	b.Connect("concl:compliance_score", "concl:status", graph.RelationProduces)

	return b.Graph()
}

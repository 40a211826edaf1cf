package triage

import (
	"attestor-hq/attestor/pkg/engine"
	"attestor-hq/attestor/pkg/graph"
)

// Patient categories detected before graph construction. Category
// detection is a pure lookup over input fields; trauma and maternal
// branches add their own premises to the graph.
const (
	categoryStandard = "standard"
	categoryTrauma   = "trauma"
	categoryMaternal = "maternal"
)

func detectCategory(in engine.Record) string {
	switch {
	case in.BoolOr("trauma_case", false):
		return categoryTrauma
	case in.BoolOr("maternal_case", false):
		return categoryMaternal
	default:
		return categoryStandard
	}
}

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
	"H1":  {[]string{"vital_score"}, []conclusionEdge{{"priority", graph.RelationDetermines}, {"critical", graph.RelationEntails}}},
	"H2":  {[]string{"age", "comorbidity_index"}, []conclusionEdge{{"priority", graph.RelationEntails}}},
	"H3":  {[]string{"wait_time"}, []conclusionEdge{{"priority", graph.RelationInfluences}}},
	"H4":  {[]string{"trauma_case"}, []conclusionEdge{{"priority", graph.RelationDetermines}, {"critical", graph.RelationEntails}}},
	"H5":  {[]string{"maternal_case"}, []conclusionEdge{{"priority", graph.RelationDetermines}}},
	"H6":  {[]string{"comorbidity_index"}, []conclusionEdge{{"priority", graph.RelationInfluences}}},
	"H7":  {[]string{"vital_score", "comorbidity_index"}, []conclusionEdge{{"priority", graph.RelationInfluences}}},
	"H8":  {[]string{"resource_score"}, []conclusionEdge{{"resource_constrained", graph.RelationEntails}}},
	"H9":  {[]string{"vital_score", "comorbidity_index", "wait_time", "age"}, []conclusionEdge{{"urgency_score", graph.RelationDetermines}}},
	"H10": {nil, []conclusionEdge{{"priority", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	category := detectCategory(in)

	b := graph.NewBuilder()
	b.Premise("premise:vital_score", "vital_score input")
	b.Premise("premise:age", "age input")
	b.Premise("premise:comorbidity_index", "comorbidity_index input")
	b.Premise("premise:wait_time", "wait_time input")
	b.Premise("premise:resource_score", "resource_score input")
	if category == categoryTrauma {
		b.Premise("premise:trauma_case", "trauma presentation")
	}
	if category == categoryMaternal {
		b.Premise("premise:maternal_case", "maternal presentation")
	}

	b.Conclusion("concl:priority", "priority = "+d.Outcome)
	b.Conclusion("concl:urgency_score", "urgency_score")
	if d.Flags["critical"] {
		b.Conclusion("concl:critical", "critical = true")
	}
	if d.Flags["resource_constrained"] {
		b.Conclusion("concl:resource_constrained", "resource_constrained = true")
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

	// The composite urgency score mathematically derives the tier.
	b.Connect("concl:urgency_score", "concl:priority", graph.RelationProduces)

	return b.Graph()
}

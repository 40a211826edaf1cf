package screening

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
	"E1":  {[]string{"skill_match_score"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"disqualified", graph.RelationEntails}}},
	"E2":  {[]string{"background_check_failed"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}, {"disqualified", graph.RelationEntails}}},
	"E3":  {[]string{"interview_score"}, []conclusionEdge{{"recommendation", graph.RelationDetermines}}},
	"E4":  {[]string{"reference_score"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"E5":  {[]string{"experience_years"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
	"E6":  {[]string{"skill_match_score", "interview_score"}, []conclusionEdge{{"recommendation", graph.RelationEntails}}},
	"E7":  {[]string{"skill_match_score", "interview_score", "reference_score", "experience_years", "education_level"}, []conclusionEdge{{"fit_score", graph.RelationDetermines}}},
	"E8":  {[]string{"education_level"}, []conclusionEdge{{"advanced_education", graph.RelationEntails}}},
	"E9":  {[]string{"education_level", "skill_match_score"}, []conclusionEdge{{"recommendation", graph.RelationInfluences}, {"underqualified", graph.RelationEntails}}},
	"E10": {nil, []conclusionEdge{{"recommendation", graph.RelationInfluences}}},
}

// buildGraph constructs the reason graph mirroring the decision's rule
// firings. Vertices and edges are added in fixed rule order, so the graph
// is deterministic for a fixed (input, decision) pair.
func buildGraph(in engine.Record, d *engine.Decision) *graph.Graph {
	b := graph.NewBuilder()
	b.Premise("premise:skill_match_score", "skill_match_score input")
	b.Premise("premise:experience_years", "experience_years input")
	b.Premise("premise:interview_score", "interview_score input")
	b.Premise("premise:reference_score", "reference_score input")
	b.Premise("premise:education_level", "education_level input")
	b.Premise("premise:background_check_failed", "background_check_failed input")

	b.Conclusion("concl:recommendation", "recommendation = "+d.Outcome)
	b.Conclusion("concl:fit_score", "fit_score")
	if d.Flags["disqualified"] {
		b.Conclusion("concl:disqualified", "disqualified = true")
	}
	if d.Flags["advanced_education"] {
		b.Conclusion("concl:advanced_education", "advanced_education = true")
	}
	if d.Flags["underqualified"] {
		b.Conclusion("concl:underqualified", "underqualified = true")
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

	// The composite fit score mathematically derives the band.
	b.Connect("concl:fit_score", "concl:recommendation", graph.RelationProduces)

	return b.Graph()
}

// Package intake watches a directory for dropped request files and runs
// them through the decision engines.
//
// A request file is a JSON document naming an engine and its input:
//
//	{
//	    "engine": "credit_assessment",
//	    "request_id": "req-2024-0091",
//	    "input": {
//	        "credit_score": 720,
//	        "annual_income": 85000
//	    }
//	}
//
// The watcher debounces write bursts per file, evaluates the request,
// persists the result to the ledger, and moves the file to the
// processed or failed directory. Files already present at startup are
// swept before watching begins.
package intake

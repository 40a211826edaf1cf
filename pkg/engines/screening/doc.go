// Package screening implements the employment screening decision engine.
//
// # Input Fields
//
//   - skill_match_score        [0,1], default 0.5
//   - experience_years         years, default 3
//   - interview_score          [0,1], default 0.5
//   - reference_score          [0,1], default 0.5
//   - education_level          [1,5], default 3
//   - background_check_failed  bool, default false
//
// # Rule Table
//
//	E1  skill_match_score < 0.3            -> NOT_RECOMMENDED (hard)
//	E2  background_check_failed            -> NOT_RECOMMENDED (hard)
//	E3  interview_score < 0.3              -> NOT_RECOMMENDED
//	E4  reference_score < 0.4              -> FURTHER_REVIEW
//	E5  experience_years < 1               -> FURTHER_REVIEW
//	E6  skill >= 0.8 and interview >= 0.8  -> RECOMMENDED
//	E7  fit composite                      -> band by thresholds
//	E8  education_level >= 5               -> advanced_education flag
//	E9  education < 2 and skill < 0.5      -> FURTHER_REVIEW
//	E10 >= 3 prior triggers                -> at least FURTHER_REVIEW
//
// NOT_RECOMMENDED is terminal. E10 escalates only from RECOMMENDED; a
// candidate rejected by a hard rule stays rejected regardless of later
// positive findings.
package screening

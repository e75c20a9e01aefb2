package prompts

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "name": "<contract title>",
  "budget": "<budget as written>",
  "scoringSystem": "<award criteria summary>",
  "tenderPageUrl": "<url>",
  "adminUrl": "<url>",
  "techUrl": "<url>"
}

Field constraints:
- name: Required. The contract title, without the file number prefix.
- budget, scoringSystem: Empty string when the sheet does not state them.
- tenderPageUrl, adminUrl, techUrl: Absolute URLs copied from the
  document, or empty string when absent.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Do not add fields beyond those listed`

const analyzeSpec = `Respond with a JSON object matching this exact structure:

{
  "decision": "<KEEP|DISCARD|REVIEW>",
  "summaryReasoning": "<two or three sentences>",
  "economic":  {"summary": "", "highlights": [""], "concerns": [""]},
  "scope":     {"summary": "", "highlights": [""], "concerns": [""]},
  "resources": {"summary": "", "highlights": [""], "concerns": [""]},
  "solvency":  {"summary": "", "highlights": [""], "concerns": [""]},
  "strategy":  {"summary": "", "highlights": [""], "concerns": [""]},
  "scoring": {
    "price": 0,
    "formula": 0,
    "value": 0,
    "subCriteria": [{"label": "", "weight": 0, "category": "<PRICE|FORMULA|VALUE>"}]
  }
}

Field constraints:
- decision: KEEP, DISCARD, or REVIEW.
- scoring.price: Weight (0-100) of the economic offer.
- scoring.formula: Weight (0-100) of other criteria scored by formula.
- scoring.value: Weight (0-100) of criteria scored by value judgement.
- subCriteria: Every award criterion with its weight and category.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Write summaries, highlights, and concerns in Spanish
- Use empty lists rather than omitting highlights or concerns`

var specs = map[Stage]string{
	StageExtract: extractSpec,
	StageAnalyze: analyzeSpec,
}

// Spec returns the response specification for a stage. Specifications are
// not overridable because response parsing depends on them.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}

package resume

import "fmt"

func buildRoleExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`Analyze this resume and determine the single job role the candidate
should be interviewed for, based on their most recent and prominent
experience.

Resume:
%s

Return ONLY a JSON object with this exact shape:
{"role": "<job title>", "seniority": "<Junior|Mid|Senior|Lead>", "summary": "<one sentence about the candidate>"}`, resumeText)
}

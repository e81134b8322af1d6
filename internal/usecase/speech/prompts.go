package speech

import "fmt"

func buildTranscriptCorrectionPrompt(raw string) string {
	return fmt.Sprintf(`You are cleaning up an automatic transcript of a spoken interview answer.
Fix casing, punctuation and obvious mis-hearings of technical terms
(for example "sequel" for "SQL", "java script" for "JavaScript").
Do not change the meaning, do not add or remove sentences, do not
answer the question yourself. Return ONLY the corrected transcript.

Transcript:
%s`, raw)
}

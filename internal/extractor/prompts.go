package extractor

import (
	"fmt"

	"vocab-annotator-go/internal/types"
)

const vocabSystemPrompt = `You are an expert lexicographer and linguist. A user has provided a video transcript.
Identify ONLY genuinely difficult, uncommon, or technical English words.

RULES:
1. Do NOT explain simple, common, or conversational words.
2. Do NOT include names or proper nouns.
3. Do NOT include typos or invented words.
4. Include only advanced, technical, or rarely used real English words.

For EACH selected word, respond in JSON format with:
{
  "explanations": [
    {
      "term": "word",
      "explanation": "definition in 15-30 words",
      "synonyms": ["easier_word1", "easier_word2", "easier_word3"]
    }
  ]
}

Guidelines:
- Provide 2-4 short synonyms or simpler equivalents in "synonyms".
- If no synonyms exist, return an empty array.
- If no valid difficult words are found, return {"explanations": []}.
- Return ONLY valid JSON. Do not wrap it in backticks.`

const contextSystemPrompt = `You are a knowledgeable research assistant. A user has provided an excerpt of a video transcript.
Identify the named entities a viewer might want background on.

RULES:
1. Return at most 5 entities.
2. Each entity must be a person, event, organization, or concept that is actually discussed.
3. Skip generic words, pronouns, and the video's own host or channel.
4. Estimate the timestamp (in seconds from the start of the video) where the entity is first mentioned,
   using the excerpt's start and end times as bounds.

Respond in JSON format with:
{
  "context_entities": [
    {
      "entity": "name as mentioned",
      "type": "person | event | organization | concept",
      "timestamp": 0.0
    }
  ]
}

If nothing qualifies, return {"context_entities": []}.
Return ONLY valid JSON. Do not wrap it in backticks.`

func vocabUserPrompt(transcript string) string {
	return fmt.Sprintf("Transcript:\n\n%s\n\nIdentify difficult or technical words with their meanings and synonyms.", transcript)
}

func contextUserPrompt(transcript string, w types.TimeWindow) string {
	return fmt.Sprintf("The excerpt covers %.2f to %.2f seconds of the video.\n\nTranscript:\n\n%s\n\nIdentify the key people, events, organizations, and concepts with approximate timestamps.",
		w.Start, w.End, transcript)
}

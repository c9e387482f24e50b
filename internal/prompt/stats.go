package prompt

import "fmt"

// BuildStatsExtractionPrompt builds the fixed-contract prompt that turns a
// profile page text dump into the structured stats schema. The contract
// forbids fabrication: anything the model cannot find in the text must come
// back as JSON null, never a guess.
func BuildStatsExtractionPrompt(game, pageText string) string {
	return fmt.Sprintf(`You are a data extraction service for game profile pages.
The text below was captured from a %s player statistics page.

## Task

Extract the player's statistics into EXACTLY this JSON object:

{
  "username": string or null,
  "rank": string or null,
  "kills": string or null,
  "matchesPlayed": string or null,
  "winRate": string or null
}

## Rules

1. Respond with the JSON object ONLY. No markdown, no commentary.
2. Use EXACTLY the five keys above. Never add extra keys.
3. A field you cannot find in the text MUST be null. NEVER guess,
   estimate, or fabricate a value.
4. Keep values as they appear on the page (e.g. "2,341" stays "2,341",
   "54.2%%" stays "54.2%%").

## Page Text

%s`, game, pageText)
}

package factcheck

import (
	"fmt"
	"strings"
	"time"

	"newswatch/sources"
	"newswatch/types"
)

// buildPrompt asks the model for a structured JSON verdict on one article.
func buildPrompt(article *types.Article, content string) string {
	reputable := strings.Join(sources.ReputableNames(0.85), ", ")

	return fmt.Sprintf(`
As an expert fact-checker specializing in Middle East news and Palestine-Israel coverage, please analyze this news article:

**Article Title:** %s
**Source:** %s
**URL:** %s
**Content:** %s

Please provide a comprehensive fact-check analysis in JSON format with the following structure:

{
    "credibilityScore": <number between 0-1>,
    "overallAssessment": "<VERIFIED/PARTIALLY_VERIFIED/DISPUTED/MISLEADING/UNVERIFIED>",
    "keyFindings": [
        {
            "claim": "<specific claim from article>",
            "verification": "<VERIFIED/DISPUTED/UNVERIFIED>",
            "evidence": "<supporting or contradicting evidence>",
            "sources": ["<reputable source 1>", "<reputable source 2>"]
        }
    ],
    "sourceAnalysis": {
        "reputation": "<assessment of source credibility>",
        "bias": "<detected bias if any>",
        "previousAccuracy": "<historical accuracy of source>",
        "groundTruthAlignment": "<whether the claims align with or contradict independently sourced ground evidence>"
    },
    "contextualFactors": [
        "<important context or background information>"
    ],
    "redFlags": [
        "<any concerning elements like sensationalism, lack of sources, etc.>"
    ],
    "crossReference": {
        "similarReporting": "<whether other reputable sources report similar information>",
        "conflictingReports": "<any contradictory reporting from reliable sources>"
    },
    "recommendations": "<advice for readers on how to interpret this information>",
    "analysisDate": "%s"
}

**Important Guidelines:**
1. Focus on factual accuracy and verifiable information
2. Consider the source's track record and potential bias
3. Look for corroboration from multiple reputable sources: %s
4. Be especially careful with emotionally charged content
5. Note any missing context or important background information
6. Identify specific claims that can be fact-checked
7. Distinguish between opinion/analysis and factual reporting
8. Consider the timeliness and relevance of the information

Please be thorough but concise in your analysis.`,
		article.Title, article.SourceName, article.URL, content,
		time.Now().UTC().Format(time.RFC3339), reputable)
}

// Package chat builds prompts for and orchestrates the conversational
// editing flow: section rewrites, whole-document rewrites and advice
// replies that never touch the document.
package chat

import (
	"fmt"
	"strings"
)

// sectionEditSystemPrompt frames the model as a LaTeX section editor that
// returns only LaTeX.
const sectionEditSystemPrompt = `You are an expert LaTeX resume editor. Your job is to modify resume sections based on user instructions.

RULES:
1. ONLY modify the section content provided. Do not add new sections.
2. Keep the LaTeX syntax valid and properly formatted.
3. Maintain consistent style with the original content.
4. Use professional, action-oriented language for resume bullets.
5. Include metrics and quantifiable achievements where appropriate.
6. Return ONLY the modified LaTeX code, no explanations.

FORMATTING GUIDELINES:
- Use \textbf{} for bold text (job titles, company names)
- Use \textit{} for italic text (dates)
- Use \begin{itemize} ... \end{itemize} for bullet lists
- Use \item for each bullet point
- Escape special characters: % -> \%, $ -> \$, & -> \&
- Keep section headers as \section*{Name}`

// documentEditSystemPrompt frames the model as a whole-resume editor that
// returns a complete document.
const documentEditSystemPrompt = `You are an expert LaTeX resume editor. Your job is to help users improve their entire resume based on their instructions.

RULES:
1. Make targeted changes based on user requests.
2. Keep the LaTeX syntax valid and properly formatted.
3. Maintain the overall structure and style.
4. Return the COMPLETE updated LaTeX document.
5. Preserve all preamble, packages, and document structure.`

// adviceSystemPrompt frames the model as an advisor. Replies built on this
// prompt are conversational only and are never applied to the document.
const adviceSystemPrompt = `You are a resume expert assistant. Answer the user's questions about their resume with specific, actionable advice. Be concise and practical. Do not return LaTeX code unless the user explicitly asks for an example.`

// jdContextBlock appends job-description tailoring guidance to a system
// prompt when a job description is present.
func jdContextBlock(jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		return ""
	}
	return fmt.Sprintf(`

TARGET JOB DESCRIPTION:
%s

IMPORTANT: Tailor the resume content to match this job description. Emphasize relevant skills, experiences, and keywords that align with the job requirements.`, jobDescription)
}

// BuildSectionEditPrompt assembles the full prompt for rewriting one
// section. It is a pure function of its inputs: the same section, request
// and job description always yield the same prompt.
func BuildSectionEditPrompt(sectionName, sectionContent, instruction, jobDescription string) string {
	var b strings.Builder
	b.WriteString(sectionEditSystemPrompt)
	b.WriteString(jdContextBlock(jobDescription))
	fmt.Fprintf(&b, `

SECTION: %s

CURRENT CONTENT:
`+"```latex\n%s\n```"+`

USER REQUEST: %s

Please modify the section according to the user's request. Return ONLY the modified LaTeX code.`, sectionName, sectionContent, instruction)
	return b.String()
}

// BuildDocumentEditPrompt assembles the full prompt for rewriting the whole
// document. Pure function of its inputs.
func BuildDocumentEditPrompt(source, instruction, jobDescription string) string {
	var b strings.Builder
	b.WriteString(documentEditSystemPrompt)
	b.WriteString(jdContextBlock(jobDescription))
	fmt.Fprintf(&b, `

CURRENT RESUME:
`+"```latex\n%s\n```"+`

USER REQUEST: %s

Please modify the resume according to the user's request. Return the COMPLETE updated LaTeX document.`, source, instruction)
	return b.String()
}

// BuildChatPrompt assembles the advice prompt for a conversational turn.
// When a section is selected its content is included so the model can give
// targeted feedback; the reply is never written back to the document.
func BuildChatPrompt(question, selectedSection, selectedContent, jobDescription string) string {
	var b strings.Builder
	b.WriteString(adviceSystemPrompt)
	b.WriteString(jdContextBlock(jobDescription))
	if selectedSection != "" {
		fmt.Fprintf(&b, `

The user is currently looking at the "%s" section:
`+"```latex\n%s\n```", selectedSection, selectedContent)
	}
	fmt.Fprintf(&b, "\n\nUSER QUESTION: %s", question)
	return b.String()
}

// CleanResponse strips markdown code fences the model sometimes wraps
// around LaTeX output.
func CleanResponse(response string) string {
	response = strings.TrimSpace(response)
	for _, prefix := range []string{"```latex\n", "```latex", "```tex\n", "```tex", "```\n", "```"} {
		if strings.HasPrefix(response, prefix) {
			response = response[len(prefix):]
			break
		}
	}
	response = strings.TrimSuffix(strings.TrimRight(response, " \n"), "```")
	return strings.TrimSpace(response)
}

package assistant

// AuthoringGuide describes the note conventions that LLM assistants should
// follow when creating or updating notes in the garden.
const AuthoringGuide = `# Verdant Note Authoring Guide

Notes in Verdant are plain Markdown with wiki-style references.

## Conventions

1. **Titles** are free text and become the note's display name. The URL slug
   is derived automatically (lower-case, punctuation collapsed to dashes).
2. **References** use double brackets: ` + "`" + `[[Other Note Title]]` + "`" + `. The text
   between the brackets is a note title, not a slug. Referencing a title that
   does not exist yet creates an empty placeholder note at the SEEDLING stage.
3. **Growth stages** classify maturity: SEEDLING (rough idea), BUDDING
   (developing), EVERGREEN (polished). New notes default to SEEDLING.
4. **Tags** are short lower-case labels attached to notes, not written inline.
5. A note never links to itself; self-references are ignored.

## Example

` + "```" + `markdown
Evergreen notes grow out of [[Seedling Ideas]] through repeated revision.
See also [[Note Taking Systems]].
` + "```" + `
`

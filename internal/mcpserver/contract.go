package mcpserver

// NoteFormatContract describes the canonical note file format that
// LLM consumers should follow when creating notes.
const NoteFormatContract = `# Quill Note Format Contract

Every note stored in Quill follows this structure.

## Structure

` + "```" + `
Title: Human-readable title
Created: 05Mar25 14:30 +01:00
Updated: 05Mar25 14:30 +01:00
Tags: #tag-one, #tag-two
---
Body text in standard Markdown.
` + "```" + `

## Rules

1. **The header block comes first.** A ` + "`" + `---` + "`" + ` line separates it from the
   body; everything after that line is body, verbatim.
2. **` + "`" + `Title:` + "`" + `, ` + "`" + `Created:` + "`" + ` and ` + "`" + `Updated:` + "`" + ` are always present**, in that
   order. ` + "`" + `Tags:` + "`" + ` is written only when the note carries tags.
3. **Timestamps** look like ` + "`" + `05Mar25 14:30 +01:00` + "`" + ` (day, abbreviated
   month, two-digit year, 24-hour time, UTC offset).
4. **Tags** are comma-separated and normalized to lowercase with a
   leading ` + "`" + `#` + "`" + ` (e.g. ` + "`" + `#todo, #project-x` + "`" + `).
5. **` + "`" + `Deleted:` + "`" + ` and ` + "`" + `Archived:` + "`" + ` are lifecycle markers** managed by
   Quill when notes move to the trash or archive. Never set them yourself.
6. **Note ids are minted by Quill.** Create notes via the ` + "`" + `create_note` + "`" + `
   tool and refer to the id it returns; do not invent ids or paths.
7. **Unknown header lines are ignored** on read and dropped on rewrite,
   so only the keys above survive a round trip.
8. **Encoding** is UTF-8; the body is stored with exactly one trailing
   newline.

## Example

` + "```" + `
Title: Weekly standup
Created: 20Jan25 09:00 +01:00
Updated: 20Jan25 09:12 +01:00
Tags: #meeting, #project-x
---
Attendees: Alice, Bob.

## Action items

- Alice to review the design doc
- Bob to update the roadmap
` + "```" + `
`

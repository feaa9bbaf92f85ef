package formatter

import (
	"fmt"
	"html"
	"strings"

	"github.com/thiru0454/time-sub001/models"
)

// RenderHTML menghasilkan dokumen printable: grid 6x7 lalu tabel detail
// faculty assignment. Murni, tanpa side effect.
func RenderHTML(grid Grid, subjects SubjectIndex, faculty FacultyIndex, meta Metadata, opts models.ExportOptions) (string, error) {
	if grid.Empty() {
		return "", ErrEmptyTimetable
	}

	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<title>Timetable - %s %s Section %s</title>\n",
		esc(meta.Department), esc(meta.Year), esc(meta.Section))
	b.WriteString(`<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1, h2 { text-align: center; margin: 4px 0; }
table { border-collapse: collapse; width: 100%; margin-top: 16px; }
th, td { border: 1px solid #333; padding: 6px; text-align: center; }
th { background: #f0f0f0; }
td.lab { background: #ede9fe; font-weight: bold; }
td.empty { color: #999; }
.faculty-name { font-size: 0.85em; color: #444; }
.footer { margin-top: 24px; font-size: 0.8em; text-align: right; color: #666; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
`)

	if opts.IncludeHeader {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(meta.Department))
		fmt.Fprintf(&b, "<h2>%s - Section %s", esc(meta.Year), esc(meta.Section))
		if meta.Semester != "" {
			fmt.Fprintf(&b, " (%s)", esc(meta.Semester))
		}
		b.WriteString("</h2>\n")
	}

	// Grid utama
	b.WriteString("<table>\n<tr><th>Time Slot</th>")
	for _, day := range models.Days {
		fmt.Fprintf(&b, "<th>%s</th>", day)
	}
	b.WriteString("</tr>\n")

	for _, slot := range models.TimeSlots {
		fmt.Fprintf(&b, "<tr><th>%s</th>", esc(slot))
		for _, day := range models.Days {
			a := grid[day][slot]
			if a == nil {
				b.WriteString(`<td class="empty">-</td>`)
				continue
			}
			class := "entry"
			if a.Type == models.TypeLab {
				class = "lab"
			}
			cell := fmt.Sprintf("%s<br><span class=\"faculty-name\">%s</span>",
				esc(a.SubjectCode), esc(a.FacultyName))
			if opts.IncludeRoomAssignments && a.Room != "" {
				cell += fmt.Sprintf("<br><span class=\"faculty-name\">%s</span>", esc(a.Room))
			}
			fmt.Fprintf(&b, "<td class=%q>%s</td>", class, cell)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")

	// Tabel detail faculty assignment
	if opts.IncludeFacultyInfo {
		b.WriteString("<h2>Faculty Assignment Details</h2>\n")
		b.WriteString("<table>\n<tr><th>Subject Code</th><th>Subject Name</th><th>Faculty</th><th>Type</th></tr>\n")
		for _, row := range CrossReference(grid) {
			name := row.SubjectName
			if s, ok := subjects.Lookup(row.SubjectCode); ok {
				name = s.Name
			}
			var cells []string
			for _, fn := range row.Faculties {
				if f, ok := faculty.Lookup(fn); ok && f.Email != nil && *f.Email != "" {
					cells = append(cells, fmt.Sprintf("%s (%s)", fn, *f.Email))
					continue
				}
				cells = append(cells, fn)
			}
			fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				esc(row.SubjectCode), esc(name), esc(strings.Join(cells, ", ")), esc(row.Type))
		}
		b.WriteString("</table>\n")
	}

	if opts.IncludeFooter {
		fmt.Fprintf(&b, "<div class=\"footer\">Generated on %s</div>\n",
			meta.GeneratedAt.Format("02 Jan 2006 15:04"))
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func esc(s string) string {
	return html.EscapeString(s)
}

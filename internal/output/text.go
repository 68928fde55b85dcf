package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/salmonumbrella/notion-sdk-go/internal/model"
)

// renderText writes the human-readable form of data. Known entities get a
// dedicated layout; anything else falls back to YAML.
func renderText(w io.Writer, data any) error {
	switch v := data.(type) {
	case model.Block:
		writeBlockTree(w, []model.Block{v}, 0)
		return nil
	case []model.Block:
		writeBlockTree(w, v, 0)
		return nil
	case model.List[model.Block]:
		writeBlockTree(w, v.Results, 0)
		return writeMore(w, v.HasMore, v.NextCursor)
	case model.User:
		return writeUsers(w, []model.User{v})
	case []model.User:
		return writeUsers(w, v)
	case model.List[model.User]:
		if err := writeUsers(w, v.Results); err != nil {
			return err
		}
		return writeMore(w, v.HasMore, v.NextCursor)
	case model.Page:
		return writePage(w, v)
	case []model.Page:
		return writeResults(w, pagesAsResults(v))
	case model.List[model.Page]:
		if err := writeResults(w, pagesAsResults(v.Results)); err != nil {
			return err
		}
		return writeMore(w, v.HasMore, v.NextCursor)
	case model.Database:
		return writeDatabase(w, v)
	case []model.Database:
		return writeResults(w, databasesAsResults(v))
	case model.List[model.Database]:
		if err := writeResults(w, databasesAsResults(v.Results)); err != nil {
			return err
		}
		return writeMore(w, v.HasMore, v.NextCursor)
	case []model.SearchResult:
		return writeResults(w, v)
	case model.List[model.SearchResult]:
		if err := writeResults(w, v.Results); err != nil {
			return err
		}
		return writeMore(w, v.HasMore, v.NextCursor)
	default:
		generic, err := toGeneric(data)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
}

func writeMore(w io.Writer, hasMore bool, cursor *string) error {
	if hasMore && cursor != nil {
		_, err := fmt.Fprintf(w, "\n(more results: --cursor %s)\n", *cursor)
		return err
	}
	return nil
}

func writeBlockTree(w io.Writer, blocks []model.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	for i, b := range blocks {
		_, _ = fmt.Fprintln(w, indent+BlockLine(b, i+1))
		writeBlockTree(w, model.ChildrenOf(b), depth+1)
	}
}

// BlockLine renders one block as a single markdown-like line. ordinal is the
// 1-based position used for numbered list items.
func BlockLine(b model.Block, ordinal int) string {
	text := model.PlainText(model.TextOf(b))
	switch v := b.(type) {
	case model.ParagraphBlock:
		return text
	case model.HeadingBlock:
		return strings.Repeat("#", v.Level) + " " + text
	case model.BulletedListItemBlock:
		return "- " + text
	case model.NumberedListItemBlock:
		return fmt.Sprintf("%d. %s", ordinal, text)
	case model.ToDoBlock:
		if v.ToDo.Checked {
			return "[x] " + text
		}
		return "[ ] " + text
	case model.ToggleBlock:
		return "> " + text
	case model.ChildPageBlock:
		return fmt.Sprintf("[page] %s (%s)", v.ChildPage.Title, v.ID)
	case model.UnsupportedBlock:
		return fmt.Sprintf("[%s] (%s)", v.Type, v.ID)
	default:
		return fmt.Sprintf("[%s]", b.Base().Type)
	}
}

func writeUsers(w io.Writer, users []model.User) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tNAME\tEMAIL")
	for _, u := range users {
		c := u.Base()
		email := ""
		if p, ok := u.(model.PersonUser); ok && p.Person != nil {
			email = p.Person.Email
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ID, c.Type, c.Name, email)
	}
	return tw.Flush()
}

func pagesAsResults(pages []model.Page) []model.SearchResult {
	out := make([]model.SearchResult, len(pages))
	for i, p := range pages {
		out[i] = p
	}
	return out
}

func databasesAsResults(dbs []model.Database) []model.SearchResult {
	out := make([]model.SearchResult, len(dbs))
	for i, d := range dbs {
		out[i] = d
	}
	return out
}

func writeResults(w io.Writer, results []model.SearchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "OBJECT\tID\tTITLE")
	for _, r := range results {
		switch v := r.(type) {
		case model.Page:
			_, _ = fmt.Fprintf(tw, "page\t%s\t%s\n", v.ID, v.Title())
		case model.Database:
			_, _ = fmt.Fprintf(tw, "database\t%s\t%s\n", v.ID, model.PlainText(v.Title))
		}
	}
	return tw.Flush()
}

func writePage(w io.Writer, p model.Page) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "id\t%s\n", p.ID)
	_, _ = fmt.Fprintf(tw, "title\t%s\n", p.Title())
	_, _ = fmt.Fprintf(tw, "url\t%s\n", p.URL)
	_, _ = fmt.Fprintf(tw, "parent\t%s\n", ParentString(p.Parent))
	_, _ = fmt.Fprintf(tw, "archived\t%v\n", p.Archived)
	for _, name := range sortedNames(p.Properties) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, ValueString(p.Properties[name]))
	}
	return tw.Flush()
}

func writeDatabase(w io.Writer, d model.Database) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "id\t%s\n", d.ID)
	_, _ = fmt.Fprintf(tw, "title\t%s\n", model.PlainText(d.Title))
	_, _ = fmt.Fprintf(tw, "parent\t%s\n", ParentString(d.Parent))
	for _, name := range sortedNames(d.Properties) {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, d.Properties[name].Base().Type)
	}
	return tw.Flush()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ParentString renders a parent as "type:id".
func ParentString(p model.Parent) string {
	switch v := p.(type) {
	case model.DatabaseParent:
		return "database:" + v.DatabaseID
	case model.PageParent:
		return "page:" + v.PageID
	case model.WorkspaceParent:
		return "workspace"
	default:
		return ""
	}
}

// ValueString renders a property value for display.
func ValueString(v model.PropertyValue) string {
	switch x := v.(type) {
	case model.TitleValue:
		return model.PlainText(x.Title)
	case model.RichTextValue:
		return model.PlainText(x.RichText)
	case model.NumberValue:
		return numberString(x.Number)
	case model.SelectValue:
		if x.Select == nil {
			return ""
		}
		return x.Select.Name
	case model.MultiSelectValue:
		names := make([]string, len(x.MultiSelect))
		for i, o := range x.MultiSelect {
			names[i] = o.Name
		}
		return strings.Join(names, ", ")
	case model.DateValue:
		return dateString(x.Date)
	case model.FormulaValue:
		return formulaString(x.Formula)
	case model.RollupValue:
		return rollupString(x.Rollup)
	case model.PeopleValue:
		names := make([]string, len(x.People))
		for i, u := range x.People {
			names[i] = u.Base().Name
		}
		return strings.Join(names, ", ")
	case model.FilesValue:
		names := make([]string, len(x.Files))
		for i, f := range x.Files {
			names[i] = f.Name
		}
		return strings.Join(names, ", ")
	case model.CheckboxValue:
		return fmt.Sprint(x.Checkbox)
	case model.URLValue:
		return deref(x.URL)
	case model.EmailValue:
		return deref(x.Email)
	case model.PhoneNumberValue:
		return deref(x.PhoneNumber)
	case model.CreatedTimeValue:
		return x.CreatedTime.Format("2006-01-02T15:04:05Z07:00")
	case model.CreatedByValue:
		return x.CreatedBy.Base().Name
	case model.LastEditedTimeValue:
		return x.LastEditedTime.Format("2006-01-02T15:04:05Z07:00")
	case model.LastEditedByValue:
		return x.LastEditedBy.Base().Name
	case model.RelationValue:
		ids := make([]string, len(x.Relation))
		for i, r := range x.Relation {
			ids[i] = r.ID
		}
		return strings.Join(ids, ", ")
	default:
		return ""
	}
}

func formulaString(r model.FormulaResult) string {
	switch f := r.(type) {
	case model.StringFormula:
		return deref(f.String)
	case model.NumberFormula:
		return numberString(f.Number)
	case model.BooleanFormula:
		return fmt.Sprint(f.Boolean)
	case model.DateFormula:
		return dateString(f.Date)
	default:
		return ""
	}
}

func rollupString(r model.RollupResult) string {
	switch x := r.(type) {
	case model.NumberRollup:
		return numberString(x.Number)
	case model.DateRollup:
		return dateString(x.Date)
	case model.ArrayRollup:
		parts := make([]string, len(x.Array))
		for i, v := range x.Array {
			parts[i] = ValueString(v)
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func numberString(n *model.Number) string {
	if n == nil {
		return ""
	}
	return n.String()
}

func dateString(d *model.DateRange) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

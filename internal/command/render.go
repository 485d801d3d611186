package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/medibook/medibook-cli/internal/model"
)

// table renders rows with aligned columns on the app's output stream.
func (a *App) table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// formatWhen renders a server timestamp for humans, falling back to the
// raw string when it does not parse.
func formatWhen(s string) string {
	t, err := model.ParseAppointmentTime(s)
	if err != nil {
		return s
	}
	return t.Format("Mon, 02 Jan 2006 15:04")
}

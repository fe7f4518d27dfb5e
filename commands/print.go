package commands

import (
	"fmt"
	"io"

	"tasktracker/storage"
)

// pastTense maps each status verb to its success form
var pastTense = map[string]string{
	"update": "updated",
	"delete": "deleted",
	"mark":   "marked",
}

func printTask(w io.Writer, t storage.Task) {
	fmt.Fprintf(w, "### %d ###\n", t.ID)
	fmt.Fprintf(w, "State: %s\n", t.State)
	fmt.Fprintln(w, t.Text)
	fmt.Fprintln(w)
}

func printStatus(w io.Writer, ok bool, verb string, id uint8) {
	if ok {
		fmt.Fprintf(w, "Successfully %s task #%d\n", pastTense[verb], id)
		return
	}
	fmt.Fprintf(w, "Can not %s task #%d\n", verb, id)
}

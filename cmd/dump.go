package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/vwid-io/vwid/api"
	"github.com/vwid-io/vwid/core/entity"
	"github.com/vwid-io/vwid/server"
)

type dumper struct {
	out io.Writer
}

func (d *dumper) format(e entity.Entity, val interface{}) string {
	if val == nil {
		return "-"
	}

	res := server.Encode(val)
	if e.Unit != "" {
		res += " " + e.Unit
	}

	return res
}

// Dump renders all stateful entities of the vehicle
func (d *dumper) Dump(v *api.Vehicle) {
	fmt.Fprintf(d.out, "%s (%s)\n", v.Name, strings.Join([]string{v.VIN, v.Model}, ", "))
	fmt.Fprintln(d.out, strings.Repeat("-", len(v.Name)))

	table := tablewriter.NewWriter(d.out)
	table.SetHeader([]string{"Entity", "Key", "Value"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	values := entity.Values(v)
	for _, e := range entity.Stateful() {
		table.Append([]string{e.Name, e.Key, d.format(e, values[e.Key])})
	}

	table.Render()
	fmt.Fprintln(d.out)
}
